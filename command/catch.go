package command

import (
	"strings"

	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// passCodeTag identifies the CUSTOM result `pass` produces: a catch
// handler returning it means "re-raise the original result unchanged".
const passCodeTag = "pass"

// passCmd is used inside a catch handler to decline handling the caught
// result, letting it propagate as if no handler had run.
func passCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 1 {
		return result.Error("wrong # args: should be \"pass\"")
	}
	return result.Custom(passCodeTag, value.NewNil())
}

// catchHandler is one parsed `code name? body` clause of a catch
// invocation: a code it matches, the variable its caught value binds to
// (unused by break/continue), and the handler script to run.
type catchHandler struct {
	code result.Code
	name string
	body *value.Script
}

func codeForKeyword(keyword string) (result.Code, bool) {
	switch keyword {
	case "return":
		return result.RETURN, true
	case "yield":
		return result.YIELD, true
	case "error":
		return result.ERROR, true
	case "break":
		return result.BREAK, true
	case "continue":
		return result.CONTINUE, true
	default:
		return 0, false
	}
}

// catchCmd runs body; with no further arguments, it returns a tuple
// `(codeName value)` encoding whatever code body produced. Given handler
// clauses (`return name body`, `yield name body`, `error name body`,
// `break body`, `continue body`, each naming the code it routes, plus an
// optional `finally body`), it runs the first handler whose code matches
// body's result, then finally, per spec.md §4.7.
func catchCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"catch body ?handler ...? ?finally body?\"")
	}
	body, errRes := asScript("catch", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	handlers, finally, errRes := parseCatchHandlers(args[2:])
	if errRes.Code != result.OK {
		return errRes
	}

	return chainContinuation(runScript(body, scope), func(bodyRes result.Result) result.Result {
		return finishCatch(bodyRes, handlers, finally, scope)
	})
}

func parseCatchHandlers(rest []value.Value) ([]catchHandler, *value.Script, result.Result) {
	var handlers []catchHandler
	var finally *value.Script
	for i := 0; i < len(rest); {
		keyword := rest[i].Display()
		if keyword == "finally" {
			if i+1 >= len(rest) {
				return nil, nil, result.Error("wrong # args: should be \"catch body ... finally body\"")
			}
			s, errRes := asScript("catch finally", rest[i+1])
			if errRes.Code != result.OK {
				return nil, nil, errRes
			}
			finally = s
			i += 2
			continue
		}

		code, ok := codeForKeyword(keyword)
		if !ok {
			return nil, nil, result.Errorf("unknown catch handler keyword %q", keyword)
		}
		if code == result.BREAK || code == result.CONTINUE {
			if i+1 >= len(rest) {
				return nil, nil, result.Errorf("wrong # args: should be \"catch body ... %s body\"", keyword)
			}
			s, errRes := asScript("catch handler", rest[i+1])
			if errRes.Code != result.OK {
				return nil, nil, errRes
			}
			handlers = append(handlers, catchHandler{code: code, body: s})
			i += 2
			continue
		}

		if i+2 >= len(rest) {
			return nil, nil, result.Errorf("wrong # args: should be \"catch body ... %s name body\"", keyword)
		}
		s, errRes := asScript("catch handler", rest[i+2])
		if errRes.Code != result.OK {
			return nil, nil, errRes
		}
		handlers = append(handlers, catchHandler{code: code, name: rest[i+1].Display(), body: s})
		i += 3
	}
	return handlers, finally, result.Ok(nil)
}

// finishCatch routes bodyRes to its matching handler, then runs finally.
// With no handlers at all bodyRes becomes the no-handler tuple encoding; a
// result that no handler matches propagates unchanged.
func finishCatch(bodyRes result.Result, handlers []catchHandler, finally *value.Script, scope engine.Scope) result.Result {
	for _, h := range handlers {
		if h.code != bodyRes.Code {
			continue
		}
		child := scope.NewChild()
		if h.name != "" {
			_ = child.SetVariable(h.name, bodyRes.Value)
		}
		return chainContinuation(runScript(h.body, child), func(handlerRes result.Result) result.Result {
			final := handlerRes
			if handlerRes.Code == result.CUSTOM && handlerRes.Data == passCodeTag {
				final = bodyRes
			}
			return runCatchFinally(final, finally, scope)
		})
	}
	if len(handlers) == 0 {
		return runCatchFinally(noHandlerResult(bodyRes), finally, scope)
	}
	return runCatchFinally(bodyRes, finally, scope)
}

// noHandlerResult wraps an unhandled body outcome as OK(codeName, value)
// per spec.md §4.7's no-handler contract.
func noHandlerResult(res result.Result) result.Result {
	name := strings.ToLower(res.Code.String())
	return result.Ok(value.NewTuple([]value.Value{value.NewString(name), res.Value}))
}

// runCatchFinally runs finally after final settles, only when final
// reached OK — a RETURN/ERROR/BREAK/CONTINUE from the matched handler (or
// the bare body, absent a handler) propagates directly instead, per
// spec.md §4.7.
func runCatchFinally(final result.Result, finally *value.Script, scope engine.Scope) result.Result {
	if finally == nil || final.Code != result.OK {
		return final
	}
	return chainContinuation(runScript(finally, scope), func(finallyRes result.Result) result.Result {
		if finallyRes.Code != result.OK {
			return finallyRes
		}
		return final
	})
}
