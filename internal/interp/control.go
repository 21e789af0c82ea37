package interp

import (
	"strings"

	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

// evalConditionExpression implements ConditionExpression(cond, action):
// evaluate cond; if truthy, evaluate action as a side effect; return cond's
// own truthiness, not action's value (spec §4.4 — this is the building
// block If/else-if chains compose from).
func (e *Executor) evalConditionExpression(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	cond, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}
	if cond.Truthy() {
		if _, err := e.eval(ins.Refs[1], ctx); err != nil {
			return value.Nil(), err
		}
	}
	return value.TruthyInt(cond.Truthy()), nil
}

// evalIfStatement implements IfStatement(primary, elseifChain, else?).
// Refs[0] is itself a ConditionExpression pairing the primary condition
// with its then-action, so evaluating it performs the primary branch as a
// side effect when truthy. If it didn't fire, each elseif in Refs[1]'s
// Group is tried in order; if none fire, Refs[2] (possibly NULL) runs.
func (e *Executor) evalIfStatement(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	primary, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}
	if primary.Truthy() {
		return value.Nil(), nil
	}

	chain, err := e.resolveInstruction(ins.Refs[1])
	if err != nil {
		return value.Nil(), err
	}
	if !chain.IsNop() {
		for _, branch := range chain.Refs {
			if ctx.IsInterrupted() {
				return value.Nil(), nil
			}
			v, err := e.eval(branch, ctx)
			if err != nil {
				return value.Nil(), err
			}
			if v.Truthy() {
				return value.Nil(), nil
			}
		}
	}

	elseAbsent, err := e.isAbsent(ins.Refs[2])
	if err != nil {
		return value.Nil(), err
	}
	if !elseAbsent {
		if _, err := e.eval(ins.Refs[2], ctx); err != nil {
			return value.Nil(), err
		}
	}
	return value.Nil(), nil
}

// evalFor implements For(init, cond, post, body): arity 4, init/cond/post
// may be the NULL instruction (spec §4.4). An absent cond loops until
// break/return/exit fires; a present cond that evaluates falsy ends the
// loop normally.
func (e *Executor) evalFor(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	loopCtx := ctx.NewChild(context.ForLoop)

	initAbsent, err := e.isAbsent(ins.Refs[0])
	if err != nil {
		return value.Nil(), err
	}
	if !initAbsent {
		if _, err := e.eval(ins.Refs[0], loopCtx); err != nil {
			return value.Nil(), err
		}
	}

	condAbsent, err := e.isAbsent(ins.Refs[1])
	if err != nil {
		return value.Nil(), err
	}

	for {
		if !condAbsent {
			cv, err := e.eval(ins.Refs[1], loopCtx)
			if err != nil {
				return value.Nil(), err
			}
			if !cv.Truthy() {
				break
			}
		}

		if _, err := e.eval(ins.Refs[3], loopCtx); err != nil {
			return value.Nil(), err
		}
		if loopCtx.ConsumeBreak() {
			break
		}
		if loopCtx.Return() || loopCtx.Exit() {
			ctx.PropagateFrom(loopCtx)
			return value.Nil(), nil
		}
		loopCtx.CleanContinue()

		postAbsent, err := e.isAbsent(ins.Refs[2])
		if err != nil {
			return value.Nil(), err
		}
		if !postAbsent {
			if _, err := e.eval(ins.Refs[2], loopCtx); err != nil {
				return value.Nil(), err
			}
		}
	}
	ctx.PropagateFrom(loopCtx)
	return value.Nil(), nil
}

// evalForIn implements ForIn(name)(iter, body): name is "key,val" or just
// "val" (no key binding) (spec §4.4, §3 ForIn binding). Arrays bind val to
// each element with key as the ascending index; maps walk entries in
// ascending key order (spec §5).
func (e *Executor) evalForIn(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	iter, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}

	keyName, valName, hasKey := parseBinding(ins.Name)

	bindAndRun := func(key, val value.Value) (stop bool, err error) {
		loopCtx := ctx.NewChild(context.ForLoop)
		if hasKey {
			_ = loopCtx.Add(keyName, key)
		}
		_ = loopCtx.Add(valName, val)
		if _, err := e.eval(ins.Refs[1], loopCtx); err != nil {
			return false, err
		}
		if loopCtx.ConsumeBreak() {
			return true, nil
		}
		if loopCtx.Return() || loopCtx.Exit() {
			ctx.PropagateFrom(loopCtx)
			return true, nil
		}
		return false, nil
	}

	switch iter.Tag() {
	case value.Array:
		for i, elem := range iter.AsArray() {
			stop, err := bindAndRun(value.Int(int64(i)), elem)
			if err != nil {
				return value.Nil(), err
			}
			if stop {
				break
			}
		}
	case value.Map:
		for _, entry := range value.MapEntries(iter) {
			stop, err := bindAndRun(entry.Key, entry.Val)
			if err != nil {
				return value.Nil(), err
			}
			if stop {
				break
			}
		}
	default:
		return value.Nil(), gerrors.New(gerrors.TypeMismatch, "for-in requires an array or map, got %s", iter.TypeName())
	}
	return value.Nil(), nil
}

// parseBinding splits ForIn's "key,val" Name convention; a Name with no
// comma binds only the value.
func parseBinding(name string) (key, val string, hasKey bool) {
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		return name[:idx], name[idx+1:], true
	}
	return "", name, false
}

// evalSwitch implements Switch(value, cases, default?): cases is a Group
// whose children are each a 2-element Group (condList, actions); condList
// is itself a Group of expressions compared to value by == in order, and
// the first match's actions run. If none match and default is present
// (not NULL), it runs instead (spec §4.4).
func (e *Executor) evalSwitch(ins *script.Instruction, ctx *context.Context) (value.Value, error) {
	subject, err := e.eval(ins.Refs[0], ctx)
	if err != nil {
		return value.Nil(), err
	}
	swCtx := ctx.NewChild(context.SwitchBlock)

	cases, err := e.resolveInstruction(ins.Refs[1])
	if err != nil {
		return value.Nil(), err
	}

	matched := false
	for _, caseKey := range cases.Refs {
		if swCtx.IsInterrupted() {
			break
		}
		caseIns, err := e.resolveInstruction(caseKey)
		if err != nil {
			return value.Nil(), err
		}
		condList, err := e.resolveInstruction(caseIns.Refs[0])
		if err != nil {
			return value.Nil(), err
		}
		hit := false
		for _, condKey := range condList.Refs {
			cv, err := e.eval(condKey, swCtx)
			if err != nil {
				return value.Nil(), err
			}
			if value.Equal(subject, cv) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		matched = true
		if _, err := e.eval(caseIns.Refs[1], swCtx); err != nil {
			return value.Nil(), err
		}
		break
	}

	if !matched {
		defaultAbsent, err := e.isAbsent(ins.Refs[2])
		if err != nil {
			return value.Nil(), err
		}
		if !defaultAbsent {
			if _, err := e.eval(ins.Refs[2], swCtx); err != nil {
				return value.Nil(), err
			}
		}
	}

	swCtx.ConsumeBreak()
	ctx.PropagateFrom(swCtx)
	return value.Nil(), nil
}
