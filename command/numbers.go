package command

import (
	"math"

	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// numArg reads v as a float64 plus whether it was an Integer, so a result
// that stays exactly integral can be returned as one (spec.md §4.9: the
// number ensemble favors Integer over Real whenever the operation allows).
func numArg(v value.Value) (float64, bool, result.Result) {
	switch n := v.(type) {
	case *value.Integer:
		return float64(n.Value), true, result.Ok(nil)
	case *value.Real:
		return n.Value, false, result.Ok(nil)
	default:
		return 0, false, result.Errorf("expected a number, got %s", v.Kind())
	}
}

func numResult(f float64, isInt bool) value.Value {
	if isInt && value.IsSafeInteger(f) {
		return value.NewInteger(int64(f))
	}
	return value.NewReal(f)
}

// foldNumbers applies op left-to-right across args[1:], tracking whether
// the running total is still an exact integer.
func foldNumbers(name string, args []value.Value, op func(acc, x float64) float64) result.Result {
	if len(args) < 2 {
		return result.Errorf("wrong # args: should be \"%s number ?number ...?\"", name)
	}
	acc, accIsInt, errRes := numArg(args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	for _, v := range args[2:] {
		x, xIsInt, errRes := numArg(v)
		if errRes.Code != result.OK {
			return errRes
		}
		acc = op(acc, x)
		accIsInt = accIsInt && xIsInt
	}
	return result.Ok(numResult(acc, accIsInt))
}

func addCmd(args []value.Value, scope engine.Scope) result.Result {
	return foldNumbers("+", args, func(acc, x float64) float64 { return acc + x })
}

func subCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) == 2 {
		x, isInt, errRes := numArg(args[1])
		if errRes.Code != result.OK {
			return errRes
		}
		return result.Ok(numResult(-x, isInt))
	}
	return foldNumbers("-", args, func(acc, x float64) float64 { return acc - x })
}

func mulCmd(args []value.Value, scope engine.Scope) result.Result {
	return foldNumbers("*", args, func(acc, x float64) float64 { return acc * x })
}

func divCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 3 {
		return result.Error("wrong # args: should be \"/ number number ?number ...?\"")
	}
	acc, _, errRes := numArg(args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	for _, v := range args[2:] {
		x, _, errRes := numArg(v)
		if errRes.Code != result.OK {
			return errRes
		}
		if x == 0 {
			return result.Error("division by zero")
		}
		acc = acc / x
	}
	// division always yields a Real unless the exact result round-trips.
	return result.Ok(numResult(acc, value.IsSafeInteger(acc)))
}

// compareCmd implements the fixed-arity comparison operators: `op a b`.
func compareCmd(name string, cmp func(a, b float64) bool) Func {
	return func(args []value.Value, scope engine.Scope) result.Result {
		if len(args) != 3 {
			return result.Errorf("wrong # args: should be \"%s a b\"", name)
		}
		a, _, errRes := numArg(args[1])
		if errRes.Code != result.OK {
			return errRes
		}
		b, _, errRes := numArg(args[2])
		if errRes.Code != result.OK {
			return errRes
		}
		return result.Ok(value.NewBoolean(cmp(a, b)))
	}
}

// eqCmd/neCmd use value.Equal rather than numeric comparison so they work
// across every value kind, not just numbers.
func eqCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"== a b\"")
	}
	return result.Ok(value.NewBoolean(value.Equal(args[1], args[2])))
}

func neCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"!= a b\"")
	}
	return result.Ok(value.NewBoolean(!value.Equal(args[1], args[2])))
}

var gtCmd = compareCmd(">", func(a, b float64) bool { return a > b })
var geCmd = compareCmd(">=", func(a, b float64) bool { return a >= b })
var ltCmd = compareCmd("<", func(a, b float64) bool { return a < b })
var leCmd = compareCmd("<=", func(a, b float64) bool { return a <= b })

// numberOps maps the number ensemble's infix operator names to the Func
// that already implements each one as a prefix command.
var numberOps = map[string]Func{
	"+": addCmd, "-": subCmd, "*": mulCmd, "/": divCmd,
	"==": eqCmd, "!=": neCmd, ">": gtCmd, ">=": geCmd, "<": ltCmd, "<=": leCmd,
}

// NumberEnsemble is the command a bare Integer/Real value in command
// position resolves to (spec.md §4.5/§4.10): `5 + 3` sees args
// `(5 "+" 3)`, with args[0] the number and args[1] naming the infix
// operator to apply to it and the remaining operands.
var NumberEnsemble Func = func(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"number op ?operand ...?\"")
	}
	op, ok := numberOps[args[1].Display()]
	if !ok {
		return result.Errorf("unknown number operator %q", args[1].Display())
	}
	full := append([]value.Value{args[1], args[0]}, args[2:]...)
	return op(full, scope)
}

// absCmd rounds out the unary arithmetic the number ensemble offers
// (negation is subCmd called with a single operand).
func absCmd(args []value.Value, scope engine.Scope) result.Result {
	v, errRes := arg1("abs", args)
	if errRes.Code != result.OK {
		return errRes
	}
	x, isInt, errRes := numArg(v)
	if errRes.Code != result.OK {
		return errRes
	}
	return result.Ok(numResult(math.Abs(x), isInt))
}
