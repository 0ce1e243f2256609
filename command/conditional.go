package command

import (
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// truthy evaluates cond (a script or a pre-computed Boolean/value) and
// reports whether it is true. A non-OK, non-YIELD result (notably RETURN)
// surfaces unchanged rather than being coerced to a boolean
// (SPEC_FULL.md §9, the "Recommended" resolution for a test that RETURNs).
func truthy(cond value.Value, scope engine.Scope) (bool, result.Result) {
	var res result.Result
	if script, ok := cond.(*value.Script); ok {
		res = runScript(script, scope)
	} else {
		res = result.Ok(cond)
	}
	if res.Code != result.OK {
		return false, res
	}
	b, ok := res.Value.(*value.Boolean)
	if !ok {
		return false, result.Errorf("condition must evaluate to a boolean, got %s", res.Value.Kind())
	}
	return b.Value, result.Ok(nil)
}

// ifCmd implements `if cond body ?elseif cond body ...? ?else body?`.
func ifCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 3 {
		return result.Error("wrong # args: should be \"if cond body ?elseif cond body ...? ?else body?\"")
	}

	i := 1
	for i+1 < len(args) {
		cond := args[i]
		bodyVal := args[i+1]
		i += 2

		ok, res := truthy(cond, scope)
		if res.Code != result.OK {
			return res
		}
		if ok {
			body, errRes := asScript("if", bodyVal)
			if errRes.Code != result.OK {
				return errRes
			}
			return runScript(body, scope.NewChild())
		}

		if i < len(args) && args[i].Display() == "elseif" {
			i++
			continue
		}
		if i < len(args) && args[i].Display() == "else" {
			i++
			if i >= len(args) {
				return result.Error("missing body after \"else\"")
			}
			body, errRes := asScript("else", args[i])
			if errRes.Code != result.OK {
				return errRes
			}
			return runScript(body, scope.NewChild())
		}
		break
	}
	return result.Ok(nil)
}

// whenCmd implements `when ?command? {cond1 body1 cond2 body2 ... ?default?}`:
// the first condition in the tuple that is true (or the trailing lone
// default, if no condition matches) has its body run. When the optional
// leading command is present, each condition is evaluated as
// `(command condition)` instead of being coerced to a boolean directly.
func whenCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 || len(args) > 3 {
		return result.Error("wrong # args: should be \"when ?command? tests\"")
	}
	var command value.Value
	testsArg := args[1]
	if len(args) == 3 {
		command = args[1]
		testsArg = args[2]
	}
	tuple, ok := testsArg.(*value.Tuple)
	if !ok {
		return result.Errorf("when argument must be a tuple, got %s", testsArg.Kind())
	}
	elems := tuple.Elements
	i := 0
	for i+1 < len(elems) {
		ok, res := evalTest(command, elems[i], scope)
		if res.Code != result.OK {
			return res
		}
		if ok {
			body, errRes := asScript("when", elems[i+1])
			if errRes.Code != result.OK {
				return errRes
			}
			return runScript(body, scope.NewChild())
		}
		i += 2
	}
	if i < len(elems) {
		body, errRes := asScript("when", elems[i])
		if errRes.Code != result.OK {
			return errRes
		}
		return runScript(body, scope.NewChild())
	}
	return result.Ok(nil)
}

// evalTest evaluates one `when` condition: with no leading command, it is
// a plain truthy test (script or precomputed value); with a command, it
// is dispatched as `(command condition)` and the command's own OK result
// is coerced to boolean.
func evalTest(command value.Value, test value.Value, scope engine.Scope) (bool, result.Result) {
	if command == nil {
		return truthy(test, scope)
	}
	elems := append(append([]value.Value{}, tupleElements(command)...), test)
	res := runTuple(value.NewTuple(elems), scope)
	if res.Code != result.OK {
		return false, res
	}
	b, ok := res.Value.(*value.Boolean)
	if !ok {
		return false, result.Errorf("condition must evaluate to a boolean, got %s", res.Value.Kind())
	}
	return b.Value, result.Ok(nil)
}

// tupleElements returns v's elements if it is a Tuple, or v itself as a
// single-element slice otherwise — letting `when`'s leading command be
// given either as a bare command name or as a tuple with bound arguments.
func tupleElements(v value.Value) []value.Value {
	if t, ok := v.(*value.Tuple); ok {
		return t.Elements
	}
	return []value.Value{v}
}
