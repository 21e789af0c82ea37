// Package hostfn defines the host-function ABI (spec §6.2) and the
// name-keyed registry the executor consults after user-defined functions.
package hostfn

import (
	"graphscript/internal/context"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// VM is the slice of executor capability a host function may need: calling
// back into a user-defined function or triggering require (the Exit flag is
// set through the Context argument instead). Defined here (not imported from the executor's package) to
// avoid a hostfn<->interp import cycle, the same reason the teacher keeps
// its `DebugHook` interface in the vm package rather than importing a
// concrete debugger type.
type VM interface {
	// CallUserFunction invokes a script-defined function with already
	// evaluated args, returning its captured return value.
	CallUserFunction(fn *script.Instruction, args []value.Value, callerCtx *context.Context) (value.Value, error)
	// Require implements require(name): loads, relocates (if needed), and
	// executes another script's top-level declarations into ctx.
	Require(name string, ctx *context.Context) error
}

// Fn is the host-function ABI (spec §6.2): evaluated actuals, the calling
// context (inspectable/mutable, e.g. by require/exit), and the VM
// callback surface. It returns a Value or an error treated as a runtime
// exception surfacing to the caller.
type Fn func(args []value.Value, ctx *context.Context, vm VM) (value.Value, error)

// Registry is a table of name -> host function entries (spec §6.2,
// §1's "HostFn registry" component). Consulted only after the
// user-defined function table, so user definitions shadow host functions
// of the same name (spec §4.4).
type Registry struct {
	fns map[string]Fn
}

func NewRegistry() *Registry {
	return &Registry{fns: map[string]Fn{}}
}

// Register adds or replaces the entry for name. Extension modules
// (internal/hostext/*) call this the way the teacher's
// internal/stdlib/database_funcs.go calls vm.RegisterBuiltin.
func (r *Registry) Register(name string, fn Fn) {
	r.fns[name] = fn
}

func (r *Registry) Lookup(name string) (Fn, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}
