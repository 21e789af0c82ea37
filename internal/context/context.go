// Package context implements the lexically nested evaluation frame spec
// §3 and §4.3 describe: a stack of File/Function/For/Switch scopes carrying
// variable bindings, function bindings (File scope only), and non-local
// control-flow flags.
package context

import (
	"graphscript/internal/gerrors"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// Kind identifies what kind of frame a Context is, which governs which
// control-flow signals it may consume (spec §4.3's consumption table).
type Kind uint8

const (
	File Kind = iota
	Function
	ForLoop
	SwitchBlock
)

// reserved holds the built-in variables every context pre-populates;
// writes to these names are silently ignored and reads always see the
// fixed value (spec §4.3).
var reserved = map[string]value.Value{
	"true":  value.Int(1),
	"false": value.Int(0),
}

// Context is one lexical frame (spec §3). Parent is nil only for the root
// File frame. Vars and Funcs are local to this frame; GetFunction walks to
// the root File frame regardless of where the call originates.
type Context struct {
	Kind   Kind
	Parent *Context

	vars  map[string]value.Value
	funcs map[string]*script.Instruction

	continueFlag bool
	breakFlag    bool
	returnFlag   bool
	exitFlag     bool
	returnValue  value.Value

	strict bool // stored and reported by Strict(); Set does not consult it
}

// NewRoot creates the root File context for a script.
func NewRoot() *Context {
	return &Context{Kind: File, vars: map[string]value.Value{}, funcs: map[string]*script.Instruction{}}
}

// NewChild creates a nested frame of the given kind whose parent is ctx.
// Function frames are created by the executor with the *caller's* context
// as parent (spec §4.4: "dynamic scoping").
func (ctx *Context) NewChild(kind Kind) *Context {
	c := &Context{Kind: kind, Parent: ctx, vars: map[string]value.Value{}}
	if kind == File {
		c.funcs = map[string]*script.Instruction{}
	}
	return c
}

// SetStrict records the "strict" flag on this frame only (child frames do
// not inherit it), and Strict reports it. Nothing in the interpreter reads
// it: Set declares implicitly without emitting a warning either way.
func (ctx *Context) SetStrict(strict bool) { ctx.strict = strict }
func (ctx *Context) Strict() bool          { return ctx.strict }

// rootFile walks to this context's enclosing File frame, used by function
// registration/lookup which always operate at File scope (spec §4.3).
func (ctx *Context) rootFile() *Context {
	c := ctx
	for c.Parent != nil {
		if c.Kind == File {
			return c
		}
		c = c.Parent
	}
	return c
}

// ---- variables ----

// Get searches this frame then its parent chain (spec §4.3).
func (ctx *Context) Get(name string) (value.Value, error) {
	if v, ok := reserved[name]; ok {
		return v, nil
	}
	for c := ctx; c != nil; c = c.Parent {
		if v, ok := c.vars[name]; ok {
			return v, nil
		}
	}
	return value.Nil(), gerrors.New(gerrors.NameError, "undefined variable %q", name)
}

// Add declares name in the current frame; duplicate declaration in the
// same frame is an error. Declaring a reserved name is silently ignored.
func (ctx *Context) Add(name string, v value.Value) error {
	if _, ok := reserved[name]; ok {
		return nil
	}
	if _, exists := ctx.vars[name]; exists {
		return gerrors.New(gerrors.NameError, "variable %q already declared in this scope", name)
	}
	ctx.vars[name] = v
	return nil
}

// Set writes to the nearest existing binding in the chain, or declares it
// implicitly in the current frame if none exists (spec §4.3). Assigning a
// reserved name is silently ignored.
func (ctx *Context) Set(name string, v value.Value) {
	if _, ok := reserved[name]; ok {
		return
	}
	for c := ctx; c != nil; c = c.Parent {
		if _, exists := c.vars[name]; exists {
			c.vars[name] = v
			return
		}
	}
	ctx.vars[name] = v
}

// ---- functions (File scope only) ----

func (ctx *Context) AddFunction(name string, fn *script.Instruction) error {
	root := ctx.rootFile()
	if root.funcs == nil {
		root.funcs = map[string]*script.Instruction{}
	}
	if _, exists := root.funcs[name]; exists {
		return gerrors.New(gerrors.NameError, "function %q already declared", name)
	}
	root.funcs[name] = fn
	return nil
}

func (ctx *Context) GetFunction(name string) (*script.Instruction, bool) {
	root := ctx.rootFile()
	fn, ok := root.funcs[name]
	return fn, ok
}

// ReleaseLocals drops one reference from every Resource-tagged value bound
// directly in this frame, closing it if this was its last reference (spec
// §3: "released ... upon the last reference being dropped"). It releases
// every such binding, whether or not a reference was retained for this
// frame, so a binding that was never Retained (e.g. one declared by NewVar)
// loses a reference that some other holder owns. The executor does not call
// it; CallUserFunction releases only the argument copies it made.
func (ctx *Context) ReleaseLocals() {
	for _, v := range ctx.vars {
		if v.Tag() == value.ResourceTag {
			_ = v.AsResource().Release()
		}
	}
}

// IsTop reports whether ctx is the root File frame a script starts
// execution in, as opposed to a frame nested inside a function call or a
// for/switch block. require() is only valid here (spec §7).
func (ctx *Context) IsTop() bool {
	return ctx.Kind == File && ctx.Parent == nil
}

// ---- control-flow availability predicates (spec §4.3) ----

func (ctx *Context) ReturnAvailable() bool {
	for c := ctx; c != nil; c = c.Parent {
		if c.Kind == Function {
			return true
		}
	}
	return false
}

func (ctx *Context) BreakAvailable() bool {
	return ctx.Kind == ForLoop || ctx.Kind == SwitchBlock
}

func (ctx *Context) ContinueAvailable() bool {
	return ctx.Kind == ForLoop
}

// ---- control-flow flags ----

func (ctx *Context) SetContinue()           { ctx.continueFlag = true }
func (ctx *Context) SetBreak()              { ctx.breakFlag = true }
func (ctx *Context) SetReturn(v value.Value) {
	ctx.returnFlag = true
	ctx.returnValue = v
}
func (ctx *Context) SetExit(v value.Value) {
	ctx.exitFlag = true
	ctx.returnValue = v
}

func (ctx *Context) Continue() bool { return ctx.continueFlag }
func (ctx *Context) Break() bool    { return ctx.breakFlag }
func (ctx *Context) Return() bool   { return ctx.returnFlag }
func (ctx *Context) Exit() bool     { return ctx.exitFlag }

func (ctx *Context) ReturnValue() value.Value { return ctx.returnValue }

// IsInterrupted is true iff any control flag is set (spec §4.3).
func (ctx *Context) IsInterrupted() bool {
	return ctx.continueFlag || ctx.breakFlag || ctx.returnFlag || ctx.exitFlag
}

// CleanContinue clears Continue only, used between for-loop iterations.
func (ctx *Context) CleanContinue() { ctx.continueFlag = false }

// ConsumeBreak clears Break and reports whether it had been set; used by
// for-loop and switch frames, the only two that may consume it.
func (ctx *Context) ConsumeBreak() bool {
	had := ctx.breakFlag
	ctx.breakFlag = false
	return had
}

// ConsumeContinue clears Continue and reports whether it had been set.
func (ctx *Context) ConsumeContinue() bool {
	had := ctx.continueFlag
	ctx.continueFlag = false
	return had
}

// ConsumeReturn clears Return and reports whether it had been set, along
// with the captured value; used by Function frames only.
func (ctx *Context) ConsumeReturn() (value.Value, bool) {
	had := ctx.returnFlag
	ctx.returnFlag = false
	return ctx.returnValue, had
}

// PropagateFrom copies interrupt state (other than what the frame kind
// consumes) from a child frame up into ctx, modeling the flag-bubbling
// spec §4.4's state-machine table requires. Break/Continue are expected to
// already have been consumed by the appropriate frame before this is
// called on a Function/File/ForLoop/Switch boundary.
func (ctx *Context) PropagateFrom(child *Context) {
	if child.returnFlag {
		ctx.returnFlag = true
		ctx.returnValue = child.returnValue
	}
	if child.exitFlag {
		ctx.exitFlag = true
		ctx.returnValue = child.returnValue
	}
	if child.breakFlag {
		ctx.breakFlag = true
	}
	if child.continueFlag {
		ctx.continueFlag = true
	}
}
