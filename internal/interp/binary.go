package interp

import (
	"graphscript/internal/context"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// evalBinary dispatches the binary arithmetic/comparison/logical opcodes
// (spec §4.4 dispatch step 2). Logical AND/OR short-circuit the right-hand
// evaluation; every other operator evaluates both sides first.
func (e *Executor) evalBinary(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	lhs, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}

	switch ins.OpCode {
	case script.AND:
		if !lhs.Truthy() {
			return value.TruthyInt(false), nil
		}
		rhs, err := e.eval(ins.Refs[1], ctx)
		if err != nil {
			return value.Nil(), err
		}
		return value.TruthyInt(rhs.Truthy()), nil
	case script.OR:
		if lhs.Truthy() {
			return value.TruthyInt(true), nil
		}
		rhs, err := e.eval(ins.Refs[1], ctx)
		if err != nil {
			return value.Nil(), err
		}
		return value.TruthyInt(rhs.Truthy()), nil
	}

	rhs, err := e.eval(ins.Refs[1], ctx)
	if err != nil {
		return value.Nil(), err
	}

	switch ins.OpCode {
	case script.ADD:
		return value.Add(lhs, rhs)
	case script.SUB:
		return value.Sub(lhs, rhs)
	case script.MUL:
		return value.Mul(lhs, rhs)
	case script.DIV:
		return value.Div(lhs, rhs)
	case script.MOD:
		return value.Mod(lhs, rhs)
	case script.GT:
		return value.Compare(">", lhs, rhs)
	case script.GE:
		return value.Compare(">=", lhs, rhs)
	case script.LT:
		return value.Compare("<", lhs, rhs)
	case script.LE:
		return value.Compare("<=", lhs, rhs)
	case script.EQ:
		return value.TruthyInt(value.Equal(lhs, rhs)), nil
	case script.NE:
		return value.TruthyInt(!value.Equal(lhs, rhs)), nil
	case script.BAND:
		return value.BAnd(lhs, rhs)
	case script.BOR:
		return value.BOr(lhs, rhs)
	case script.BXOR:
		return value.BXor(lhs, rhs)
	case script.LSHIFT:
		return value.LShift(lhs, rhs)
	case script.RSHIFT:
		return value.RShift(lhs, rhs)
	default:
		return value.Nil(), nil
	}
}

// evalUnary handles NOT/BNG/Minus, the three unary opcodes the spec groups
// alongside the binary arithmetic set but which are arity-1.
func (e *Executor) evalUnary(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	operand, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}
	switch ins.OpCode {
	case script.NOT:
		return value.Not(operand), nil
	case script.BNG:
		return value.BNot(operand)
	case script.Minus:
		return value.Neg(operand)
	default:
		return value.Nil(), nil
	}
}

// evalUpdate dispatches compound-assignment opcodes (spec §4.4 dispatch
// step 3): Write is a plain assignment; ADDWrite..RSHIFTWrite apply the
// named binary op to the variable's current value and the evaluated
// right-hand side; INCWrite/DECWrite take no right-hand operand.
func (e *Executor) evalUpdate(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	name := ins.Name
	current, err := ctx.Get(name)
	if err != nil {
		current = value.Nil()
	}

	var next value.Value
	switch ins.OpCode {
	case script.Write:
		next, err = e.eval(ins.Refs[0], ctx)
	case script.ADDWrite:
		var rhs value.Value
		rhs, err = e.eval(ins.Refs[0], ctx)
		if err == nil {
			next, err = value.UpdateAdd(current, rhs)
		}
	case script.SUBWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.Sub)
	case script.MULWrite:
		// DIVWrite/MULWrite keep the conventional (non-swapped) mapping:
		// MULWrite multiplies, DIVWrite divides.
		next, err = e.updateNumeric(ins, ctx, current, value.Mul)
	case script.DIVWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.Div)
	case script.BORWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.BOr)
	case script.BANDWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.BAnd)
	case script.BXORWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.BXor)
	case script.LSHIFTWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.LShift)
	case script.RSHIFTWrite:
		next, err = e.updateNumeric(ins, ctx, current, value.RShift)
	case script.INCWrite:
		next, err = value.Add(current, value.Int(1))
	case script.DECWrite:
		// DECWrite decrements; the pair is symmetric with INCWrite.
		next, err = value.Sub(current, value.Int(1))
	}
	if err != nil {
		return value.Nil(), err
	}
	ctx.Set(name, next)
	return next, nil
}

func (e *Executor) updateNumeric(ins *script.Instruction, ctx *context.Context, current value.Value, op func(a, b value.Value) (value.Value, error)) (value.Value, error) {
	rhs, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}
	return op(current, rhs)
}
