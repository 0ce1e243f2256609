// Package command implements Helena's built-in commands: the control-flow
// primitives (idem, return, yield, error, break, continue, eval, help,
// catch), the conditional and loop forms (if/elseif/else, when, while,
// foreach), the callable kinds that produce first-class command values
// (macro, closure, proc, coroutine, alias, namespace, ensemble, scope),
// and the number/string/list ensembles (spec.md §4.8-4.9).
//
// Every command here implements engine.Command against the engine package
// only — never against the concrete scope package — so scope can depend on
// command without command depending back on scope. A command suspended by
// a nested YIELD returns a YIELD result carrying an *engine.Continuation.
package command

import (
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// Func adapts a plain function to engine.Command, for commands with no
// internal state. A Func may still run nested scripts (eval, if, while,
// catch, ...) and suspend by returning a Continuation-carrying YIELD.
type Func func(args []value.Value, scope engine.Scope) result.Result

// Execute implements engine.Command.
func (f Func) Execute(args []value.Value, scope engine.Scope) result.Result {
	return f(args, scope)
}

// arg1 returns args[1], erroring if args does not carry exactly one
// operand beyond the command name.
func arg1(name string, args []value.Value) (value.Value, result.Result) {
	if len(args) != 2 {
		return nil, result.Errorf("wrong # args: should be \"%s value\"", name)
	}
	return args[1], result.Ok(nil)
}

// runScript compiles and runs script against scope, returning a
// Continuation-carrying YIELD result if it suspends.
func runScript(script *value.Script, scope engine.Scope) result.Result {
	program, err := scope.CompileScript(script)
	if err != nil {
		return result.Error(err.Error())
	}
	proc := scope.NewProcess(program)
	res := proc.Run()
	if res.Code == result.YIELD {
		return result.Result{Code: result.YIELD, Value: res.Value, Data: &engine.Continuation{Process: proc}}
	}
	return res
}

// asScript type-asserts v as a *value.Script, producing an ERROR result
// otherwise.
func asScript(name string, v value.Value) (*value.Script, result.Result) {
	s, ok := v.(*value.Script)
	if !ok {
		return nil, result.Errorf("%s argument must be a script, got %s", name, v.Kind())
	}
	return s, result.Ok(nil)
}

// chainContinuation applies then to res once it settles to a terminal
// (non-YIELD) Result: immediately if res already has, or else by
// rewrapping res's Continuation so then runs after every further
// YIELD/resume step the underlying sub-process needs. This is how
// `tailcall` and `catch` keep acting on a suspended body's eventual
// outcome instead of losing that logic after the body's first YIELD.
func chainContinuation(res result.Result, then func(result.Result) result.Result) result.Result {
	if res.Code != result.YIELD {
		return then(res)
	}
	cont, ok := res.Data.(*engine.Continuation)
	if !ok {
		return then(res)
	}
	return result.Result{Code: result.YIELD, Value: res.Value, Data: &engine.Continuation{
		Process:  cont.Process,
		Callback: chainCallback(cont, then),
	}}
}

func chainCallback(cont *engine.Continuation, then func(result.Result) result.Result) func(result.Result) (result.Result, *engine.Continuation) {
	return func(res result.Result) (result.Result, *engine.Continuation) {
		if cont.Callback == nil {
			return then(res), nil
		}
		final, next := cont.Callback(res)
		if next != nil {
			return result.Result{}, &engine.Continuation{Process: next.Process, Callback: chainCallback(next, then)}
		}
		return then(final), nil
	}
}
