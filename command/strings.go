package command

import (
	"strings"

	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

func asStringVal(name string, v value.Value) (string, result.Result) {
	s, ok := v.(*value.String)
	if !ok {
		return "", result.Errorf("%s argument must be a string, got %s", name, v.Kind())
	}
	return s.Value, result.Ok(nil)
}

// stringLengthCmd implements the string ensemble's `length` subcommand,
// counting runes rather than bytes to match SelectIndex's rune addressing.
func stringLengthCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 2 {
		return result.Error("wrong # args: should be \"string length value\"")
	}
	s, errRes := asStringVal("string length", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	return result.Ok(value.NewInteger(int64(len([]rune(s)))))
}

// stringAtCmd implements `string at value index`.
func stringAtCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"string at value index\"")
	}
	s, errRes := asStringVal("string at", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	idx, ok := args[2].(*value.Integer)
	if !ok {
		return result.Errorf("string at index must be an integer, got %s", args[2].Kind())
	}
	runes := []rune(s)
	if idx.Value < 0 || int(idx.Value) >= len(runes) {
		return result.Errorf("index out of range %d", idx.Value)
	}
	return result.Ok(value.NewString(string(runes[idx.Value])))
}

// stringRangeCmd implements `string range value from to`, both bounds
// inclusive and clamped to the string's extent.
func stringRangeCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 4 {
		return result.Error("wrong # args: should be \"string range value from to\"")
	}
	s, errRes := asStringVal("string range", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	from, okFrom := args[2].(*value.Integer)
	to, okTo := args[3].(*value.Integer)
	if !okFrom || !okTo {
		return result.Error("string range bounds must be integers")
	}
	runes := []rune(s)
	lo, hi := int(from.Value), int(to.Value)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(runes) {
		hi = len(runes) - 1
	}
	if lo > hi {
		return result.Ok(value.NewString(""))
	}
	return result.Ok(value.NewString(string(runes[lo : hi+1])))
}

// stringConcatCmd implements `string concat value ...`.
func stringConcatCmd(args []value.Value, scope engine.Scope) result.Result {
	var b strings.Builder
	for _, v := range args[1:] {
		s, errRes := asStringVal("string concat", v)
		if errRes.Code != result.OK {
			return errRes
		}
		b.WriteString(s)
	}
	return result.Ok(value.NewString(b.String()))
}

// stringEnsembleCmd dispatches `string subcommand value ...`.
func stringEnsembleCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"string subcommand ?arg ...?\"")
	}
	switch args[1].Display() {
	case "length":
		return stringLengthCmd(append([]value.Value{args[0]}, args[2:]...), scope)
	case "at":
		return stringAtCmd(append([]value.Value{args[0]}, args[2:]...), scope)
	case "range":
		return stringRangeCmd(append([]value.Value{args[0]}, args[2:]...), scope)
	case "concat":
		return stringConcatCmd(append([]value.Value{args[0]}, args[2:]...), scope)
	default:
		return result.Errorf("unknown string subcommand %q", args[1].Display())
	}
}
