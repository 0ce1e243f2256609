package command

import (
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// idem returns its single argument unchanged, the identity command used
// wherever a word's substitution must pass a value through as-is.
func idem(args []value.Value, scope engine.Scope) result.Result {
	v, errRes := arg1("idem", args)
	if errRes.Code != result.OK {
		return errRes
	}
	return result.Ok(v)
}

// returnCmd requests the enclosing body stop and return its argument (or
// nil) to its own caller.
func returnCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) > 2 {
		return result.Error("wrong # args: should be \"return ?value?\"")
	}
	if len(args) == 2 {
		return result.Return(args[1])
	}
	return result.Return(nil)
}

// tailcallCmd compiles body (a script run in place, or a tuple dispatched
// as `(command arg ...)`) and turns whatever it eventually settles to —
// across any YIELD the body itself raises — into this command's own
// RETURN, per spec.md §4.7: `tailcall` behaves like `return`, except the
// returned value comes from evaluating body rather than from a literal
// argument.
func tailcallCmd(args []value.Value, scope engine.Scope) result.Result {
	v, errRes := arg1("tailcall", args)
	if errRes.Code != result.OK {
		return errRes
	}
	return chainContinuation(runTailcallBody(v, scope), asTailcallReturn)
}

func runTailcallBody(v value.Value, scope engine.Scope) result.Result {
	switch b := v.(type) {
	case *value.Script:
		return runScript(b, scope)
	case *value.Tuple:
		return runTuple(b, scope)
	default:
		return result.Errorf("tailcall argument must be a script or tuple, got %s", v.Kind())
	}
}

// runTuple dispatches tup as a sentence: its first element names the
// command, the rest are its arguments.
func runTuple(tup *value.Tuple, scope engine.Scope) result.Result {
	if len(tup.Elements) == 0 {
		return result.Ok(nil)
	}
	cmd, ok := scope.ResolveCommand(tup.Elements[0])
	if !ok {
		return result.Errorf("unknown command %q", tup.Elements[0].Display())
	}
	return cmd.Execute(tup.Elements, scope)
}

func asTailcallReturn(res result.Result) result.Result {
	if res.Code == result.OK {
		return result.Return(res.Value)
	}
	return res
}

// setCmd binds name to value in scope, the canonical variable-write
// command spec.md's `set i 0; while {$i < 3} {set i [+ $i 1]}` scenario
// depends on.
func setCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"set name value\"")
	}
	name := args[1].Display()
	if err := scope.SetVariable(name, args[2]); err != nil {
		return result.Error(err.Error())
	}
	return result.Ok(args[2])
}

// yieldCmd suspends the current process, handing its argument (or nil) to
// the host; the process resumes via Process.YieldBack.
func yieldCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) > 2 {
		return result.Error("wrong # args: should be \"yield ?value?\"")
	}
	if len(args) == 2 {
		return result.Yield(args[1])
	}
	return result.Yield(nil)
}

// errorCmd raises an ERROR result carrying its message argument.
func errorCmd(args []value.Value, scope engine.Scope) result.Result {
	v, errRes := arg1("error", args)
	if errRes.Code != result.OK {
		return errRes
	}
	return result.Error(v.Display())
}

// breakCmd requests the nearest enclosing loop stop iterating.
func breakCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 1 {
		return result.Error("wrong # args: should be \"break\"")
	}
	return result.Break()
}

// continueCmd requests the nearest enclosing loop skip to its next
// iteration.
func continueCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 1 {
		return result.Error("wrong # args: should be \"continue\"")
	}
	return result.Continue()
}

// evalCmd compiles and runs its script argument in scope directly (not a
// child scope), so bindings it makes are visible to the caller.
func evalCmd(args []value.Value, scope engine.Scope) result.Result {
	v, errRes := arg1("eval", args)
	if errRes.Code != result.OK {
		return errRes
	}
	script, errRes := asScript("eval", v)
	if errRes.Code != result.OK {
		return errRes
	}
	return runScript(script, scope)
}

// helpCmd reports a command's usage string when the command implements
// engine.Helper, or an error otherwise.
func helpCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"help command ?arg ...?\"")
	}
	name := args[1].Display()
	cmd, ok := scope.ResolveCommand(args[1])
	if !ok {
		return result.Errorf("unknown command %q", name)
	}
	helper, ok := cmd.(engine.Helper)
	if !ok {
		return result.Errorf("no help available for %q", name)
	}
	usage, err := helper.Help(args[2:])
	if err != nil {
		return result.Error(err.Error())
	}
	return result.Ok(value.NewString(usage))
}
