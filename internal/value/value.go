// Package value implements the dynamic value model: a tagged sum over
// null, integer, float, string, bytes, array, map, and resource, with
// eager copy semantics everywhere except resource (spec §3–§4.1).
package value

import (
	"fmt"
	"sort"
	"strings"

	"graphscript/internal/gerrors"
)

// Tag identifies which variant a Value holds.
type Tag uint8

const (
	Null Tag = iota
	Integer
	Float
	String
	Bytes
	Array
	Map
	ResourceTag
)

func (t Tag) String() string {
	switch t {
	case Null:
		return "nil"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Array:
		return "array"
	case Map:
		return "map"
	case ResourceTag:
		return "resource"
	default:
		return "unknown"
	}
}

// mapEntry is one ordered (key, value) pair backing a Value of tag Map.
// Keys are kept ordered by Less so that ForIn and ToString observe the
// ascending order spec §5 requires.
type mapEntry struct {
	key Value
	val Value
}

// Value is the tagged union. Only one payload field is meaningful at a
// time, selected by Tag. Arrays and maps are deep-copied on Copy(); a
// Resource payload is a shared, reference-counted handle (spec §3: "copies
// observe the same underlying resource").
type Value struct {
	tag   Tag
	i     int64
	f     float64
	bytes []byte // backs String and Bytes
	arr   []Value
	m     []mapEntry
	res   *ResourceRef
}

// ---- constructors ----

func Nil() Value { return Value{tag: Null} }

func Int(i int64) Value { return Value{tag: Integer, i: i} }

func Flt(f float64) Value { return Value{tag: Float, f: f} }

func Str(s string) Value { return Value{tag: String, bytes: []byte(s)} }

func Byt(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{tag: Bytes, bytes: cp}
}

func Arr(elems []Value) Value {
	cp := make([]Value, len(elems))
	for i, e := range elems {
		cp[i] = e.Copy()
	}
	return Value{tag: Array, arr: cp}
}

func EmptyArr() Value { return Value{tag: Array, arr: []Value{}} }

func EmptyMap() Value { return Value{tag: Map, m: []mapEntry{}} }

func Res(r *ResourceRef) Value { return Value{tag: ResourceTag, res: r} }

// ---- accessors ----

func (v Value) Tag() Tag { return v.tag }

func (v Value) TypeName() string { return v.tag.String() }

func (v Value) IsNull() bool { return v.tag == Null }

// AsInt returns the Integer payload; it does not check the tag.
func (v Value) AsInt() int64 { return v.i }

func (v Value) AsFloat() float64 { return v.f }

// AsBytes returns the raw byte payload shared by String and Bytes. The
// caller must not mutate the returned slice.
func (v Value) AsBytes() []byte { return v.bytes }

func (v Value) AsString() string { return string(v.bytes) }

// AsArray returns the live backing slice (not a copy); used by the
// executor's for-in and append to read elements without an extra copy.
func (v Value) AsArray() []Value { return v.arr }

func (v Value) AsResource() *ResourceRef { return v.res }

// Copy performs the eager copy spec §3 mandates: Array and Map are
// deep-copied, Resource shares its underlying handle, everything else is
// copied by value already (Go struct assignment).
func (v Value) Copy() Value {
	switch v.tag {
	case Array:
		cp := make([]Value, len(v.arr))
		for i, e := range v.arr {
			cp[i] = e.Copy()
		}
		return Value{tag: Array, arr: cp}
	case Map:
		cp := make([]mapEntry, len(v.m))
		for i, e := range v.m {
			cp[i] = mapEntry{key: e.key.Copy(), val: e.val.Copy()}
		}
		return Value{tag: Map, m: cp}
	case String, Bytes:
		b := make([]byte, len(v.bytes))
		copy(b, v.bytes)
		return Value{tag: v.tag, bytes: b}
	case ResourceTag:
		if v.res != nil {
			v.res.Retain()
		}
		return v
	default:
		return v
	}
}

// ---- truthiness (spec §4.1: null and numeric zero are false, everything
// else — including "" [] {} — is true) ----

func (v Value) Truthy() bool {
	switch v.tag {
	case Null:
		return false
	case Integer:
		return v.i != 0
	case Float:
		return v.f != 0
	default:
		return true
	}
}

// TruthyInt renders Truthy as the Integer 0/1 the `!` operator returns.
func TruthyInt(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// ---- formatting ----

func (v Value) ToString() string {
	switch v.tag {
	case Null:
		return "nil"
	case Integer:
		return fmt.Sprintf("%d", v.i)
	case Float:
		return fmt.Sprintf("%g", v.f)
	case String:
		return string(v.bytes)
	case Bytes:
		var sb strings.Builder
		for _, b := range v.bytes {
			fmt.Fprintf(&sb, "%02x", b)
		}
		return sb.String()
	case Array:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.ToString()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case Map:
		parts := make([]string, len(v.m))
		for i, e := range v.m {
			parts[i] = e.key.ToString() + ":" + e.val.ToString()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case ResourceTag:
		return "<resource>"
	default:
		return "<unknown>"
	}
}

func (v Value) Length() (int, error) {
	switch v.tag {
	case String, Bytes:
		return len(v.bytes), nil
	case Array:
		return len(v.arr), nil
	case Map:
		return len(v.m), nil
	default:
		return 0, gerrors.New(gerrors.TypeMismatch, "len() not defined for %s", v.tag)
	}
}

// rank assigns the relative rank used by map-key total order: nil first,
// then numeric values (ordered by numeric value), then string, then bytes,
// then everything else. Arrays/maps/resources share the last rank and are
// not ordered among themselves.
func rank(t Tag) int {
	switch t {
	case Null:
		return 0
	case Integer, Float:
		return 1
	case String:
		return 2
	case Bytes:
		return 3
	default:
		return 4
	}
}

// Less implements the deterministic total order map keys need (spec §9
// open question, resolved as tag-then-payload for non-numeric tags,
// numeric comparison across Integer/Float).
func Less(a, b Value) bool {
	ra, rb := rank(a.tag), rank(b.tag)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		return false
	case 1:
		return numeric(a) < numeric(b)
	case 2, 3:
		return string(a.bytes) < string(b.bytes)
	default:
		return false
	}
}

func numeric(v Value) float64 {
	if v.tag == Integer {
		return float64(v.i)
	}
	return v.f
}

// sortedEntries returns a fresh copy of m's entries in ascending key order
// (stable, so equal-ranked keys keep their order); used by mapInsert, Equal
// and MapEntries.
func sortedEntries(m []mapEntry) []mapEntry {
	cp := make([]mapEntry, len(m))
	copy(cp, m)
	sort.SliceStable(cp, func(i, j int) bool { return Less(cp[i].key, cp[j].key) })
	return cp
}
