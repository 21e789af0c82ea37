package value

import "sync/atomic"

// Resource is the abstract interface a host object implements to be
// wrapped in a Value (spec §3): Close is idempotent, IsAvailable reports
// whether it has been closed. Concrete resources (file handles, sockets,
// database connections) implement whatever typed operations the host
// offers in addition to this interface.
type Resource interface {
	Close() error
	IsAvailable() bool
}

// ResourceRef is the shared, reference-counted handle a Resource-tagged
// Value holds. Every Copy() of such a Value calls Retain; the underlying
// Resource is Closed when the count reaches zero or Close is called
// explicitly, whichever happens first (spec §5: "no atomicity required"
// in the source's single-threaded model, but the refcount itself uses
// atomics here since a host function may hold a ResourceRef across calls
// without the interpreter being able to prove no other goroutine —
// e.g. a host-spawned background reader — touches it).
type ResourceRef struct {
	resource Resource
	count    int32
	closed   int32
}

// NewResourceRef wraps r with an initial reference count of one.
func NewResourceRef(r Resource) *ResourceRef {
	return &ResourceRef{resource: r, count: 1}
}

// Retain increments the reference count; called from Value.Copy.
func (r *ResourceRef) Retain() {
	if r == nil {
		return
	}
	atomic.AddInt32(&r.count, 1)
}

// Release decrements the reference count, closing the underlying Resource
// exactly once when it reaches zero.
func (r *ResourceRef) Release() error {
	if r == nil {
		return nil
	}
	if atomic.AddInt32(&r.count, -1) <= 0 {
		return r.Close()
	}
	return nil
}

// Close explicitly releases the underlying handle regardless of the
// refcount; idempotent (spec §3: "release their underlying handle exactly
// once, either via explicit Close ... or upon the last reference being
// dropped").
func (r *ResourceRef) Close() error {
	if r == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&r.closed, 0, 1) {
		return nil
	}
	return r.resource.Close()
}

func (r *ResourceRef) IsAvailable() bool {
	if r == nil {
		return false
	}
	return atomic.LoadInt32(&r.closed) == 0 && r.resource.IsAvailable()
}

// Unwrap returns the underlying Resource for type assertion by host
// functions that need the concrete type (e.g. *sql.DB, *websocket.Conn).
func (r *ResourceRef) Unwrap() Resource { return r.resource }
