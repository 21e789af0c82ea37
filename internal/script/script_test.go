package script

import (
	"testing"

	"graphscript/internal/value"
)

func TestBuilderBuildsAddition(t *testing.T) {
	b := NewBuilder("main")
	lhs := b.Const(value.Int(1))
	rhs := b.Const(value.Int(2))
	add := b.Emit(ADD, "", lhs, rhs)
	b.SetEntry(add)
	s := b.Build()

	ins, ok := s.Lookup(add)
	if !ok || ins.OpCode != ADD {
		t.Fatalf("expected ADD instruction at entry, got %v ok=%v", ins, ok)
	}
	if len(ins.Refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(ins.Refs))
	}
}

func TestNullInstructionIsNop(t *testing.T) {
	s := New("main")
	ins, ok := s.Lookup(NullKey)
	if !ok || !ins.IsNop() {
		t.Fatal("expected NULL instruction at key 0")
	}
}

func TestRelocationShiftsKeysAndRefs(t *testing.T) {
	b := NewBuilder("mod")
	c := b.Const(value.Int(42))
	b.SetEntry(c)
	s := b.Build()

	loBefore, hiBefore := s.InstructionSpan()
	if loBefore != 0 {
		t.Fatalf("expected base 0 before relocation, got %d", loBefore)
	}

	if err := s.Relocate(100, 1000); err != nil {
		t.Fatal(err)
	}

	ins, ok := s.Lookup(s.EntryKey)
	if !ok {
		t.Fatalf("entry key %d not found after relocation", s.EntryKey)
	}
	if ins.OpCode != Const {
		t.Fatalf("expected Const opcode, got %v", ins.OpCode)
	}
	if ins.Refs[0] < 1000 {
		t.Fatalf("const ref not shifted by constBase: got %d", ins.Refs[0])
	}
	v, ok := s.LookupConst(ins.Refs[0])
	if !ok || v.AsInt() != 42 {
		t.Fatalf("expected relocated constant 42, got %v ok=%v", v, ok)
	}

	lo, hi := s.InstructionSpan()
	if lo != 100 {
		t.Fatalf("expected instruction base 100, got %d", lo)
	}
	if hi != 100+hiBefore {
		t.Fatalf("expected span width preserved after relocation")
	}
}

func TestRelocationIsAtMostOnce(t *testing.T) {
	s := New("mod")
	if err := s.Relocate(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := s.Relocate(20, 20); err == nil {
		t.Fatal("expected error relocating a script twice")
	}
}

func TestRelocationInvariance(t *testing.T) {
	build := func() *Script {
		b := NewBuilder("s")
		x := b.Const(value.Int(7))
		y := b.Const(value.Int(8))
		add := b.Emit(ADD, "", x, y)
		b.SetEntry(add)
		return b.Build()
	}

	alone := build()
	afterOther := build()
	if err := afterOther.Relocate(500, 500); err != nil {
		t.Fatal(err)
	}

	aloneEntry, _ := alone.Lookup(alone.EntryKey)
	shiftedEntry, _ := afterOther.Lookup(afterOther.EntryKey)
	if aloneEntry.OpCode != shiftedEntry.OpCode {
		t.Fatal("relocation must not change opcode shape")
	}
	av, _ := alone.LookupConst(aloneEntry.Refs[0])
	sv, _ := afterOther.LookupConst(shiftedEntry.Refs[0])
	if av.AsInt() != sv.AsInt() {
		t.Fatal("relocation must not change observable constant values")
	}
}
