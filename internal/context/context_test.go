package context

import (
	"testing"

	"graphscript/internal/value"
)

func TestShadowing(t *testing.T) {
	parent := NewRoot()
	if err := parent.Add("x", value.Int(1)); err != nil {
		t.Fatal(err)
	}
	child := parent.NewChild(ForLoop)
	if err := child.Add("x", value.Int(2)); err != nil {
		t.Fatal(err)
	}

	v, err := child.Get("x")
	if err != nil || v.AsInt() != 2 {
		t.Fatalf("child should see its own x=2, got %v err=%v", v, err)
	}
	v, err = parent.Get("x")
	if err != nil || v.AsInt() != 1 {
		t.Fatalf("parent's x must be unaffected by child's shadow, got %v err=%v", v, err)
	}
}

func TestSetWritesToNearestAncestor(t *testing.T) {
	parent := NewRoot()
	_ = parent.Add("x", value.Int(1))
	child := parent.NewChild(ForLoop)

	child.Set("x", value.Int(42))

	v, _ := parent.Get("x")
	if v.AsInt() != 42 {
		t.Fatalf("Set with no local binding should write to nearest ancestor, got %d", v.AsInt())
	}
	if _, ok := child.vars["x"]; ok {
		t.Fatal("Set must not create a local binding when an ancestor binding exists")
	}
}

func TestSetImplicitlyDeclaresInCurrentFrame(t *testing.T) {
	root := NewRoot()
	root.Set("y", value.Int(9))
	v, err := root.Get("y")
	if err != nil || v.AsInt() != 9 {
		t.Fatalf("expected implicit declaration of y, got %v err=%v", v, err)
	}
}

func TestDuplicateDeclarationErrors(t *testing.T) {
	ctx := NewRoot()
	if err := ctx.Add("x", value.Int(1)); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Add("x", value.Int(2)); err == nil {
		t.Fatal("expected error declaring x twice in the same frame")
	}
}

func TestUndefinedVariableErrors(t *testing.T) {
	ctx := NewRoot()
	if _, err := ctx.Get("nope"); err == nil {
		t.Fatal("expected error reading an undefined variable")
	}
}

func TestReservedNames(t *testing.T) {
	ctx := NewRoot()
	v, err := ctx.Get("true")
	if err != nil || v.AsInt() != 1 {
		t.Fatalf("expected true=1, got %v err=%v", v, err)
	}
	v, err = ctx.Get("false")
	if err != nil || v.AsInt() != 0 {
		t.Fatalf("expected false=0, got %v err=%v", v, err)
	}

	// Declaring or assigning a reserved name is silently ignored.
	_ = ctx.Add("true", value.Int(100))
	ctx.Set("false", value.Int(100))
	v, _ = ctx.Get("true")
	if v.AsInt() != 1 {
		t.Fatal("declaring 'true' must be silently ignored")
	}
}

func TestGetFunctionSearchesRootFile(t *testing.T) {
	root := NewRoot()
	forCtx := root.NewChild(ForLoop)
	funcCtx := forCtx.NewChild(Function)

	if err := funcCtx.AddFunction("helper", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := funcCtx.GetFunction("helper"); !ok {
		t.Fatal("GetFunction must find a function registered from a nested frame at the root File scope")
	}
	if _, ok := root.funcs["helper"]; !ok {
		t.Fatal("AddFunction from a nested frame must register at the root File frame")
	}
}

func TestDuplicateFunctionNameErrors(t *testing.T) {
	root := NewRoot()
	if err := root.AddFunction("f", nil); err != nil {
		t.Fatal(err)
	}
	if err := root.AddFunction("f", nil); err == nil {
		t.Fatal("expected error registering duplicate function name")
	}
}

func TestControlFlowAvailability(t *testing.T) {
	root := NewRoot()
	fn := root.NewChild(Function)
	loop := fn.NewChild(ForLoop)
	sw := loop.NewChild(SwitchBlock)

	if root.ReturnAvailable() {
		t.Fatal("return should not be available at file scope")
	}
	if !fn.ReturnAvailable() || !loop.ReturnAvailable() || !sw.ReturnAvailable() {
		t.Fatal("return should be available once any ancestor is a function frame")
	}
	if !loop.ContinueAvailable() {
		t.Fatal("continue should be available in a for frame")
	}
	if sw.ContinueAvailable() {
		t.Fatal("continue should not be available directly in a switch frame")
	}
	if !sw.BreakAvailable() || !loop.BreakAvailable() {
		t.Fatal("break should be available in for and switch frames")
	}
}

func TestIsInterruptedAndCleanContinue(t *testing.T) {
	ctx := NewRoot().NewChild(ForLoop)
	if ctx.IsInterrupted() {
		t.Fatal("fresh context should not be interrupted")
	}
	ctx.SetContinue()
	if !ctx.IsInterrupted() {
		t.Fatal("expected interrupted after SetContinue")
	}
	ctx.CleanContinue()
	if ctx.IsInterrupted() {
		t.Fatal("CleanContinue should clear the interrupt")
	}
}

func TestConsumeReturn(t *testing.T) {
	ctx := NewRoot().NewChild(Function)
	ctx.SetReturn(value.Int(7))
	v, had := ctx.ConsumeReturn()
	if !had || v.AsInt() != 7 {
		t.Fatalf("expected consumed return value 7, got %v had=%v", v, had)
	}
	if ctx.Return() {
		t.Fatal("Return flag should be cleared after consumption")
	}
}
