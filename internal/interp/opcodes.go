package interp

import (
	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// evalOpcode is the catch-all switch for every opcode not already claimed
// by evalBinary/evalUpdate (spec §4.4 dispatch step 4).
func (e *Executor) evalOpcode(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	switch ins.OpCode {
	case script.Nop:
		return value.Nil(), nil

	case script.Const:
		return e.resolveConstant(ins.Refs[0])

	case script.NewVar:
		var v value.Value
		if len(ins.Refs) > 0 {
			var err error
			v, err = e.eval(ins.Refs[0], ctx)
			if err != nil {
				return value.Nil(), err
			}
		} else {
			v = value.Nil()
		}
		if err := ctx.Add(ins.Name, v); err != nil {
			return value.Nil(), err
		}
		return v, nil

	case script.ReadVar:
		return ctx.Get(ins.Name)

	case script.WriteVar:
		v, err := e.eval(ins.Refs[0], ctx)
		if err != nil {
			return value.Nil(), err
		}
		ctx.Set(ins.Name, v)
		return v, nil

	case script.NewFunction:
		if err := ctx.AddFunction(ins.Name, ins); err != nil {
			return value.Nil(), err
		}
		return value.Nil(), nil

	case script.CallFunction:
		return e.evalCallFunction(ins, ctx)

	case script.Group:
		return e.evalGroup(ins, ctx)

	case script.ConditionExpression:
		return e.evalConditionExpression(ins, ctx)

	case script.IfStatement:
		return e.evalIfStatement(ins, ctx)

	case script.Return:
		if !ctx.ReturnAvailable() {
			return value.Nil(), gerrors.New(gerrors.StructuralError, "return outside function")
		}
		var v value.Value
		if len(ins.Refs) > 0 {
			var err error
			v, err = e.eval(ins.Refs[0], ctx)
			if err != nil {
				return value.Nil(), err
			}
		} else {
			v = value.Nil()
		}
		ctx.SetReturn(v)
		return v, nil

	case script.Break:
		if !ctx.BreakAvailable() {
			return value.Nil(), gerrors.New(gerrors.StructuralError, "break outside for/switch")
		}
		ctx.SetBreak()
		return value.Nil(), nil

	case script.Continue:
		if !ctx.ContinueAvailable() {
			return value.Nil(), gerrors.New(gerrors.StructuralError, "continue outside for")
		}
		ctx.SetContinue()
		return value.Nil(), nil

	case script.For:
		return e.evalFor(ins, ctx)

	case script.ForIn:
		return e.evalForIn(ins, ctx)

	case script.Switch:
		return e.evalSwitch(ins, ctx)

	case script.CreateArray:
		listAbsent, err := e.isAbsent(ins.Refs[0])
		if err != nil {
			return value.Nil(), err
		}
		if listAbsent {
			return value.EmptyArr(), nil
		}
		vals, err := e.evalList(ins.Refs[0], ctx)
		if err != nil {
			return value.Nil(), err
		}
		return value.Arr(vals), nil

	case script.CreateMap:
		return e.evalCreateMap(ins, ctx)

	case script.ReadAt:
		container, err := ctx.Get(ins.Name)
		if err != nil {
			return value.Nil(), err
		}
		idx, err := e.eval(ins.Refs[0], ctx)
		if err != nil {
			return value.Nil(), err
		}
		return value.IndexGet(container, idx)

	case script.WriteAt:
		container, err := ctx.Get(ins.Name)
		if err != nil {
			return value.Nil(), err
		}
		idx, err := e.eval(ins.Refs[0], ctx)
		if err != nil {
			return value.Nil(), err
		}
		newVal, err := e.eval(ins.Refs[1], ctx)
		if err != nil {
			return value.Nil(), err
		}
		updated, err := value.IndexSet(container, idx, newVal)
		if err != nil {
			return value.Nil(), err
		}
		ctx.Set(ins.Name, updated)
		return newVal, nil

	case script.Slice:
		container, err := ctx.Get(ins.Name)
		if err != nil {
			return value.Nil(), err
		}
		from, err := e.eval(ins.Refs[0], ctx)
		if err != nil {
			return value.Nil(), err
		}
		to, err := e.eval(ins.Refs[1], ctx)
		if err != nil {
			return value.Nil(), err
		}
		return value.Slice(container, from, to)

	case script.NOT, script.BNG, script.Minus:
		return e.evalUnary(ins, ctx)

	default:
		return value.Nil(), gerrors.New(gerrors.StructuralError, "unhandled opcode %s", ins.OpCode)
	}
}

// evalGroup evaluates a Group's children in order and returns the last
// one's value (Nil if empty), the way a statement block's value is the
// value of its final statement.
func (e *Executor) evalGroup(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	result := value.Nil()
	for _, r := range ins.Refs {
		if ctx.IsInterrupted() {
			break
		}
		v, err := e.eval(r, ctx)
		if err != nil {
			return value.Nil(), err
		}
		result = v
	}
	return result, nil
}

// evalCreateMap implements CreateMap(list?): list is a Group whose
// children are each a 2-ref Group (keyExpr, valExpr); absent list yields
// an empty map.
func (e *Executor) evalCreateMap(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	listAbsent, err := e.isAbsent(ins.Refs[0])
	if err != nil {
		return value.Nil(), err
	}
	if listAbsent {
		return value.EmptyMap(), nil
	}
	list, err := e.resolveInstruction(ins.Refs[0])
	if err != nil {
		return value.Nil(), err
	}
	keys := make([]value.Value, 0, len(list.Refs))
	vals := make([]value.Value, 0, len(list.Refs))
	for _, pairKey := range list.Refs {
		pair, err := e.resolveInstruction(pairKey)
		if err != nil {
			return value.Nil(), err
		}
		k, err := e.eval(pair.Refs[0], ctx)
		if err != nil {
			return value.Nil(), err
		}
		v, err := e.eval(pair.Refs[1], ctx)
		if err != nil {
			return value.Nil(), err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return value.MapFromPairs(keys, vals), nil
}
