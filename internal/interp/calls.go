package interp

import (
	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// evalCallFunction implements CallFunction(name)(actuals): user-defined
// functions are consulted first, so a script's own declaration shadows a
// host function of the same name (spec §4.4).
func (e *Executor) evalCallFunction(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	args, err := e.evalList(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}

	if fn, ok := ctx.GetFunction(ins.Name); ok {
		return e.CallUserFunction(fn, args, ctx)
	}
	if hostFn, ok := e.registry.Lookup(ins.Name); ok {
		return hostFn(args, ctx, e)
	}
	return value.Nil(), gerrors.New(gerrors.NameError, "undefined function %q", ins.Name)
}

// CallUserFunction implements hostfn.VM: a script-defined function's
// context is a fresh Function frame whose parent is the *caller's*
// context (spec §4.4: "dynamic scoping" — not the definition site).
func (e *Executor) CallUserFunction(fn *script.Instruction, args []value.Value, callerCtx *context.Context) (value.Value, error) {
	formals, err := e.resolveInstruction(fn.Refs[0])
	if err != nil {
		return value.Nil(), err
	}
	if len(args) != len(formals.Refs) {
		return value.Nil(), gerrors.New(gerrors.ArityMismatch, "function %q expects %d argument(s), got %d", fn.Name, len(formals.Refs), len(args))
	}

	fnCtx := callerCtx.NewChild(context.Function)
	// Formals are bound via Copy(), which Retains a Resource argument; drop
	// exactly those references when the call returns, the one place in this
	// tree-walker a Value binding's lifetime is unambiguous. Locals declared
	// inside the body were never retained here and are not released.
	bound := make([]value.Value, 0, len(formals.Refs))
	defer func() {
		for _, v := range bound {
			if v.Tag() == value.ResourceTag {
				_ = v.AsResource().Release()
			}
		}
	}()
	for i, formalKey := range formals.Refs {
		formalIns, err := e.resolveInstruction(formalKey)
		if err != nil {
			return value.Nil(), err
		}
		arg := args[i].Copy()
		bound = append(bound, arg)
		if err := fnCtx.Add(formalIns.Name, arg); err != nil {
			return value.Nil(), err
		}
	}

	if _, err := e.eval(fn.Refs[1], fnCtx); err != nil {
		return value.Nil(), err
	}

	if fnCtx.Exit() {
		callerCtx.SetExit(fnCtx.ReturnValue())
		return fnCtx.ReturnValue(), nil
	}
	if v, had := fnCtx.ConsumeReturn(); had {
		return v, nil
	}
	return value.Nil(), nil
}

// Require implements hostfn.VM and the `require(name)` baseline host
// function: loads and relocates the named script at most once (dedup by
// Origin, spec §4.4's "idempotent" requirement), then executes its
// top-level declarations directly into ctx so functions/vars it defines
// become visible to the caller.
func (e *Executor) Require(name string, ctx *context.Context) error {
	if !ctx.IsTop() {
		return gerrors.New(gerrors.StructuralError, "require must be called in top context")
	}
	for _, s := range e.scripts {
		if s.Origin == name {
			return nil
		}
	}
	if e.loader == nil {
		return gerrors.New(gerrors.LoaderError, "require(%q): no script loader configured", name)
	}
	s, err := e.loader.LoadScript(name)
	if err != nil {
		return gerrors.Wrap(err, gerrors.LoaderError, "require(%q)", name)
	}
	if s == nil {
		return gerrors.New(gerrors.LoaderError, "require(%q): script not found", name)
	}
	if err := e.load(s); err != nil {
		return err
	}
	_, err = e.eval(s.EntryKey, ctx)
	return err
}
