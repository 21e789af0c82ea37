// Package interp implements the recursive evaluator over the instruction
// graph (spec §4.4): opcode dispatch, the host-function registry, and the
// multi-script require/relocation linker.
package interp

import (
	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// ScriptLoader is the executor's injected callback for require (spec
// §6.3): LoadScript returns a freshly parsed, not-yet-relocated Script.
// When no script with that name exists it returns either (nil, nil) or an
// error (FileLoader does the latter); Require reports both as a
// LoaderError.
type ScriptLoader interface {
	LoadScript(name string) (*script.Script, error)
}

// Executor owns the loaded script list and host-function registry (spec
// §1's Executor component, §4.2's "Lookup" walk, §4.4's Require).
type Executor struct {
	scripts  []*script.Script
	registry *hostfn.Registry
	loader   ScriptLoader
}

// New creates an Executor with the baseline host functions registered
// (spec §6.2's required set: Println, len, typeof, ToString, append,
// bytes, string, BytesFromHexString, close, exit, require).
func New(loader ScriptLoader) *Executor {
	e := &Executor{registry: hostfn.NewRegistry(), loader: loader}
	registerBaseline(e.registry)
	return e
}

// Registry exposes the host-function table so extension modules
// (internal/hostext/*) can register additional entries before Run.
func (e *Executor) Registry() *hostfn.Registry { return e.registry }

// load appends s to the script list, relocating it to sit past every
// already-loaded script's key space (spec §4.2, §4.4 Require).
func (e *Executor) load(s *script.Script) error {
	var instrBase, constBase script.Key
	if len(e.scripts) > 0 {
		last := e.scripts[len(e.scripts)-1]
		_, instrBase = last.InstructionSpan()
		_, constBase = last.ConstSpan()
	}
	if err := s.Relocate(instrBase, constBase); err != nil {
		return err
	}
	e.scripts = append(e.scripts, s)
	return nil
}

// Run loads s as the first script, creates a root Context, and executes
// its entry point, catching any runtime error at the boundary (spec §6.4:
// "caught at the root Execute(script, errmsg) call, returned via an
// out-parameter along with a boolean success flag").
func (e *Executor) Run(s *script.Script) (result value.Value, ok bool, err error) {
	if err := e.load(s); err != nil {
		return value.Nil(), false, err
	}
	ctx := context.NewRoot()
	return e.executeRoot(s, ctx)
}

func (e *Executor) executeRoot(s *script.Script, ctx *context.Context) (result value.Value, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, isErr := r.(error); isErr {
				err = se
			} else {
				err = gerrors.New(gerrors.HostError, "panic during execution: %v", r)
			}
			ok = false
		}
	}()
	v, evalErr := e.eval(s.EntryKey, ctx)
	if evalErr != nil {
		return value.Nil(), false, evalErr
	}
	if ctx.Exit() {
		return ctx.ReturnValue(), true, nil
	}
	return v, true, nil
}

// resolveInstruction walks the script list to find the script owning a
// (possibly relocated) instruction key (spec §4.2 Lookup).
func (e *Executor) resolveInstruction(k script.Key) (*script.Instruction, error) {
	for _, s := range e.scripts {
		if s.Contains(k) {
			ins, ok := s.Lookup(k)
			if !ok {
				break
			}
			return ins, nil
		}
	}
	return nil, gerrors.New(gerrors.NameError, "no instruction at key %d", k)
}

// resolveConstant walks the script list to find the script owning a
// constant-pool key (spec §4.2's symmetrical constant lookup).
func (e *Executor) resolveConstant(k script.Key) (value.Value, error) {
	for _, s := range e.scripts {
		if s.ContainsConst(k) {
			v, ok := s.LookupConst(k)
			if !ok {
				break
			}
			return v, nil
		}
	}
	return value.Nil(), gerrors.New(gerrors.NameError, "no constant at key %d", k)
}

// isAbsent reports whether the instruction at k is the NULL placeholder,
// used where "present vs. absent" changes control flow rather than just
// evaluating to a harmless Nil (spec §3, §4.4 For's condition).
func (e *Executor) isAbsent(k script.Key) (bool, error) {
	ins, err := e.resolveInstruction(k)
	if err != nil {
		return false, err
	}
	return ins.IsNop(), nil
}

// evalList evaluates a Group instruction's children left to right and
// returns their values, short-circuiting if the context becomes
// interrupted partway through (spec §5 ordering, §4.4 Group).
func (e *Executor) evalList(groupKey script.Key, ctx *context.Context) ([]value.Value, error) {
	group, err := e.resolveInstruction(groupKey)
	if err != nil {
		return nil, err
	}
	if group.IsNop() {
		return nil, nil
	}
	vals := make([]value.Value, 0, len(group.Refs))
	for _, r := range group.Refs {
		if ctx.IsInterrupted() {
			break
		}
		v, err := e.eval(r, ctx)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// eval dispatches one instruction under ctx, in the order spec §4.4
// mandates: interrupt check, then binary, then compound-assignment, then
// the full opcode switch.
func (e *Executor) eval(k script.Key, ctx *context.Context) (value.Value, error) {
	if ctx.IsInterrupted() {
		return ctx.ReturnValue(), nil
	}
	ins, err := e.resolveInstruction(k)
	if err != nil {
		return value.Nil(), err
	}

	if ins.OpCode.IsBinary() {
		return e.evalBinary(ins, ctx)
	}
	if ins.OpCode.IsCompoundAssign() {
		return e.evalUpdate(ins, ctx)
	}
	return e.evalOpcode(ins, ctx)
}

// Eval is the public recursive-evaluation entry point extension host
// modules use to invoke a callback instruction (e.g. a script-supplied
// comparator or event handler) under a given context.
func (e *Executor) Eval(k script.Key, ctx *context.Context) (value.Value, error) {
	return e.eval(k, ctx)
}
