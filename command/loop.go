package command

import (
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// continueLoopOrStop interprets one loop iteration's body Result: BREAK
// stops the loop with OK nil, CONTINUE/OK advances to next via next(),
// anything else (ERROR, RETURN, CUSTOM) propagates unchanged. When next()
// itself suspends, its Continuation is threaded back out so the caller can
// chain it instead of losing the nesting.
func continueLoopOrStop(res result.Result, next func() result.Result) (result.Result, *engine.Continuation) {
	var out result.Result
	switch res.Code {
	case result.BREAK:
		out = result.Ok(nil)
	case result.CONTINUE, result.OK:
		out = next()
	default:
		out = res
	}
	if out.Code == result.YIELD {
		cont, _ := out.Data.(*engine.Continuation)
		return out, cont
	}
	return out, nil
}

func suspendedYield(cont *engine.Continuation) result.Result {
	return result.Result{Code: result.YIELD, Value: value.NewNil(), Data: cont}
}

// whileCmd implements `while cond body`, re-evaluating cond before every
// iteration.
func whileCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"while cond body\"")
	}
	body, errRes := asScript("while", args[2])
	if errRes.Code != result.OK {
		return errRes
	}
	return whileIterate(args[1], body, scope)
}

func whileIterate(cond value.Value, body *value.Script, scope engine.Scope) result.Result {
	ok, res := truthy(cond, scope)
	if res.Code != result.OK {
		return res
	}
	if !ok {
		return result.Ok(nil)
	}

	bodyRes := runScript(body, scope.NewChild())
	next := func() result.Result { return whileIterate(cond, body, scope) }

	if bodyRes.Code == result.YIELD {
		cont := bodyRes.Data.(*engine.Continuation)
		cont.Callback = func(r result.Result) (result.Result, *engine.Continuation) {
			return continueLoopOrStop(r, next)
		}
		return bodyRes
	}

	out, cont := continueLoopOrStop(bodyRes, next)
	if cont != nil {
		return suspendedYield(cont)
	}
	return out
}

// foreachCmd implements `foreach names collection body`: names is either a
// single variable name or a Tuple of names consumed in groups from a List,
// or up to two names (key, value) iterating a Dictionary.
func foreachCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 4 {
		return result.Error("wrong # args: should be \"foreach names collection body\"")
	}
	var names []string
	if tup, ok := args[1].(*value.Tuple); ok {
		for _, e := range tup.Elements {
			names = append(names, e.Display())
		}
	} else {
		names = []string{args[1].Display()}
	}
	if len(names) == 0 {
		return result.Error("foreach requires at least one variable name")
	}

	body, errRes := asScript("foreach", args[3])
	if errRes.Code != result.OK {
		return errRes
	}

	switch coll := args[2].(type) {
	case *value.List:
		return foreachList(names, coll.Elements, 0, body, scope)
	case *value.Dictionary:
		return foreachDict(names, coll, coll.Keys(), 0, body, scope)
	default:
		return result.Errorf("foreach requires a list or dictionary, got %s", args[2].Kind())
	}
}

func foreachList(names []string, elems []value.Value, i int, body *value.Script, scope engine.Scope) result.Result {
	if i >= len(elems) {
		return result.Ok(nil)
	}
	child := scope.NewChild()
	for j, n := range names {
		v := value.Value(value.NewNil())
		if idx := i + j; idx < len(elems) {
			v = elems[idx]
		}
		_ = child.SetLocal(n, v)
	}
	next := func() result.Result { return foreachList(names, elems, i+len(names), body, scope) }
	return runLoopBody(body, child, next)
}

func foreachDict(names []string, dict *value.Dictionary, keys []string, i int, body *value.Script, scope engine.Scope) result.Result {
	if i >= len(keys) {
		return result.Ok(nil)
	}
	child := scope.NewChild()
	k := keys[i]
	v, _ := dict.Get(k)
	_ = child.SetLocal(names[0], value.NewString(k))
	if len(names) > 1 {
		_ = child.SetLocal(names[1], v)
	}
	next := func() result.Result { return foreachDict(names, dict, keys, i+1, body, scope) }
	return runLoopBody(body, child, next)
}

func runLoopBody(body *value.Script, child engine.Scope, next func() result.Result) result.Result {
	bodyRes := runScript(body, child)
	if bodyRes.Code == result.YIELD {
		cont := bodyRes.Data.(*engine.Continuation)
		cont.Callback = func(r result.Result) (result.Result, *engine.Continuation) {
			return continueLoopOrStop(r, next)
		}
		return bodyRes
	}
	out, cont := continueLoopOrStop(bodyRes, next)
	if cont != nil {
		return suspendedYield(cont)
	}
	return out
}
