package script

import (
	"graphscript/internal/gerrors"
	"graphscript/internal/value"
)

// Script owns one compiled source file: its instruction table, constant
// pool (restricted to String/Integer/Float per spec §3), entry-point key,
// an origin name used for require-deduplication, and the pair of base
// offsets relocation assigns (spec §4.2).
type Script struct {
	Origin       string
	Instructions map[Key]*Instruction
	Constants    map[Key]value.Value
	EntryKey     Key

	nextInstrKey Key
	nextConstKey Key

	instructionBase Key
	constBase       Key
	relocated       bool
}

// New creates an empty Script with its NULL instruction pre-populated at
// local key 0, ready for a Builder to assemble a graph into.
func New(origin string) *Script {
	s := &Script{
		Origin:       origin,
		Instructions: map[Key]*Instruction{},
		Constants:    map[Key]value.Value{},
	}
	s.Instructions[NullKey] = &Instruction{OpCode: Nop, Key: NullKey}
	s.nextInstrKey = NullKey + 1
	return s
}

// FromWire constructs a Script directly from a fully-formed instruction
// and constant table, the entry point for deserializers (internal/scriptio)
// that don't build through a Builder. The NULL instruction is added if
// missing, and the next-key counters are derived from the highest key
// present so the script can still be relocated correctly.
func FromWire(origin string, instructions map[Key]*Instruction, constants map[Key]value.Value, entry Key) *Script {
	s := &Script{Origin: origin, Instructions: instructions, Constants: constants, EntryKey: entry}
	if _, ok := s.Instructions[NullKey]; !ok {
		s.Instructions[NullKey] = &Instruction{OpCode: Nop, Key: NullKey}
	}
	var maxInstr Key
	for k := range s.Instructions {
		if k+1 > maxInstr {
			maxInstr = k + 1
		}
	}
	s.nextInstrKey = maxInstr
	var maxConst Key
	for k := range s.Constants {
		if k+1 > maxConst {
			maxConst = k + 1
		}
	}
	s.nextConstKey = maxConst
	return s
}

// Lookup resolves a (possibly relocated) key to its Instruction. It does
// not itself walk a multi-script list — that's the executor's job (spec
// §4.2 "Lookup") — this is the single-script half of that contract.
func (s *Script) Lookup(k Key) (*Instruction, bool) {
	ins, ok := s.Instructions[k]
	return ins, ok
}

func (s *Script) LookupConst(k Key) (value.Value, bool) {
	v, ok := s.Constants[k]
	return v, ok
}

// Contains reports whether k falls in this script's instruction-key
// interval post-relocation: [instructionBase, instructionBase+nextInstrKey).
func (s *Script) Contains(k Key) bool {
	return k >= s.instructionBase && k < s.instructionBase+s.nextInstrKey
}

func (s *Script) ContainsConst(k Key) bool {
	return k >= s.constBase && k < s.constBase+s.nextConstKey
}

// InstructionSpan and ConstSpan report the half-open key intervals this
// script currently occupies, used by the executor to pick the next
// script's relocation bases "comfortably past" this one (spec §4.4
// Require).
func (s *Script) InstructionSpan() (lo, hi Key) {
	return s.instructionBase, s.instructionBase + s.nextInstrKey
}

func (s *Script) ConstSpan() (lo, hi Key) {
	return s.constBase, s.constBase + s.nextConstKey
}

// Relocate shifts every instruction key, every Refs entry, and every
// Const opcode's constant-pool reference by the given bases, recording
// them on the script. A script may be relocated at most once (spec §4.2).
func (s *Script) Relocate(instructionBase, constBase Key) error {
	if s.relocated {
		return gerrors.New(gerrors.StructuralError, "script %q already relocated", s.Origin)
	}
	s.relocated = true

	newInstructions := make(map[Key]*Instruction, len(s.Instructions))
	for k, ins := range s.Instructions {
		shifted := &Instruction{
			OpCode: ins.OpCode,
			Name:   ins.Name,
			Key:    k + instructionBase,
		}
		shifted.Refs = make([]Key, len(ins.Refs))
		for i, r := range ins.Refs {
			if ins.OpCode == Const {
				shifted.Refs[i] = r + constBase
			} else {
				shifted.Refs[i] = r + instructionBase
			}
		}
		newInstructions[shifted.Key] = shifted
	}
	s.Instructions = newInstructions

	newConstants := make(map[Key]value.Value, len(s.Constants))
	for k, v := range s.Constants {
		newConstants[k+constBase] = v
	}
	s.Constants = newConstants

	s.EntryKey += instructionBase
	s.instructionBase = instructionBase
	s.constBase = constBase
	return nil
}
