package script

// Key addresses either an instruction or a constant-pool slot, scoped to
// the owning Script until relocation makes it globally unique across the
// executor's loaded script list (spec §3, §4.2).
type Key uint32

// Instruction is one node in the flat program graph (spec §3). Name holds
// an identifier — a variable/function name, or "key,val" for ForIn's
// binding pair. Refs holds ordered child keys; for Const, Refs[0] is a
// constant-pool key instead of an instruction key.
type Instruction struct {
	OpCode OpCode
	Name   string
	Refs   []Key
	Key    Key
}

// NullKey is the key of the reusable NULL instruction every Script builds
// at construction time (spec §3: "represents 'no sub-expression'").
const NullKey Key = 0

// IsNop reports whether ins is the NULL placeholder, the idiomatic check
// used instead of comparing against NullKey directly since relocation
// shifts every key including the NULL instruction's.
func (ins *Instruction) IsNop() bool { return ins == nil || ins.OpCode == Nop }
