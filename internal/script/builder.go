package script

import "graphscript/internal/value"

// Builder is the parser-facing contract (spec §4.2, §6.3's "external
// parser interface"): a monotonically-increasing allocator for instruction
// and constant-pool keys, used to assemble a Script's graph bottom-up.
type Builder struct {
	script *Script
}

// NewBuilder starts building a fresh Script with the given origin name
// (used later for require-deduplication).
func NewBuilder(origin string) *Builder {
	return &Builder{script: New(origin)}
}

// Null returns the key of the shared NULL instruction, reused wherever an
// optional slot (e.g. a for-loop's absent init/cond/post) is absent.
func (b *Builder) Null() Key { return NullKey }

// Emit allocates a new key, stores an Instruction with the given opcode,
// name, and child refs, and returns its key.
func (b *Builder) Emit(op OpCode, name string, refs ...Key) Key {
	k := b.script.nextInstrKey
	b.script.nextInstrKey++
	cp := make([]Key, len(refs))
	copy(cp, refs)
	b.script.Instructions[k] = &Instruction{OpCode: op, Name: name, Refs: cp, Key: k}
	return k
}

// AppendRef appends an additional child key to refs of an existing
// Group instruction, supporting "appendable at either end" lists (spec
// §4.2). Appending at the front is equally supported via PrependRef.
func (b *Builder) AppendRef(group Key, ref Key) {
	ins := b.script.Instructions[group]
	ins.Refs = append(ins.Refs, ref)
}

func (b *Builder) PrependRef(group Key, ref Key) {
	ins := b.script.Instructions[group]
	ins.Refs = append([]Key{ref}, ins.Refs...)
}

// Const allocates a constant-pool slot holding v (restricted by the spec
// to String/Integer/Float) and emits a Const instruction referencing it.
func (b *Builder) Const(v value.Value) Key {
	ck := b.script.nextConstKey
	b.script.nextConstKey++
	b.script.Constants[ck] = v
	return b.Emit(Const, "", ck)
}

// SetEntry marks k as the script's entry-point instruction.
func (b *Builder) SetEntry(k Key) { b.script.EntryKey = k }

// Build finalizes and returns the assembled Script.
func (b *Builder) Build() *Script { return b.script }

// NewIf assembles an IfStatement node: primaryCond/primaryAction become a
// ConditionExpression wrapping the `if` branch, elseifConds/elseifActions
// (parallel slices, same length) become the elseif chain tried in order,
// and elseBody (or b.Null()) is the final else.
func (b *Builder) NewIf(primaryCond, primaryAction Key, elseifConds, elseifActions []Key, elseBody Key) Key {
	primary := b.Emit(ConditionExpression, "", primaryCond, primaryAction)
	branches := make([]Key, len(elseifConds))
	for i := range elseifConds {
		branches[i] = b.Emit(ConditionExpression, "", elseifConds[i], elseifActions[i])
	}
	chain := b.Emit(Group, "", branches...)
	return b.Emit(IfStatement, "", primary, chain, elseBody)
}

// NewSwitchCase assembles one Switch case: condList is compared to the
// switch's subject with == in order; actions runs on the first match.
func (b *Builder) NewSwitchCase(condList []Key, actions Key) Key {
	conds := b.Emit(Group, "", condList...)
	return b.Emit(Group, "", conds, actions)
}

// NewFormal marks a NewFunction parameter slot: its Name is the bound
// identifier, and it is never itself evaluated as an expression.
func (b *Builder) NewFormal(name string) Key {
	return b.Emit(ReadVar, name)
}

// NewMapPair assembles one CreateMap (key, value) entry.
func (b *Builder) NewMapPair(keyExpr, valExpr Key) Key {
	return b.Emit(Group, "", keyExpr, valExpr)
}
