package command

import (
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

func asListVal(name string, v value.Value) (*value.List, result.Result) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, result.Errorf("%s argument must be a list, got %s", name, v.Kind())
	}
	return l, result.Ok(nil)
}

// listLengthCmd implements `list length value`.
func listLengthCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 2 {
		return result.Error("wrong # args: should be \"list length value\"")
	}
	l, errRes := asListVal("list length", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	return result.Ok(value.NewInteger(int64(len(l.Elements))))
}

// listAtCmd implements `list at value index`.
func listAtCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"list at value index\"")
	}
	l, errRes := asListVal("list at", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	idx, ok := args[2].(*value.Integer)
	if !ok {
		return result.Errorf("list at index must be an integer, got %s", args[2].Kind())
	}
	if idx.Value < 0 || int(idx.Value) >= len(l.Elements) {
		return result.Errorf("index out of range %d", idx.Value)
	}
	return result.Ok(l.Elements[idx.Value])
}

// listRangeCmd implements `list range value from to`, both bounds
// inclusive and clamped.
func listRangeCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 4 {
		return result.Error("wrong # args: should be \"list range value from to\"")
	}
	l, errRes := asListVal("list range", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	from, okFrom := args[2].(*value.Integer)
	to, okTo := args[3].(*value.Integer)
	if !okFrom || !okTo {
		return result.Error("list range bounds must be integers")
	}
	lo, hi := int(from.Value), int(to.Value)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(l.Elements) {
		hi = len(l.Elements) - 1
	}
	if lo > hi {
		return result.Ok(value.NewList(nil))
	}
	out := make([]value.Value, hi-lo+1)
	copy(out, l.Elements[lo:hi+1])
	return result.Ok(value.NewList(out))
}

// listAppendCmd implements `list append value ...`, concatenating the
// elements of every following list argument onto the first.
func listAppendCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"list append value ?list ...?\"")
	}
	first, errRes := asListVal("list append", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	out := append([]value.Value{}, first.Elements...)
	for _, v := range args[2:] {
		l, errRes := asListVal("list append", v)
		if errRes.Code != result.OK {
			return errRes
		}
		out = append(out, l.Elements...)
	}
	return result.Ok(value.NewList(out))
}

// listInsertCmd implements `list insert value index element`.
func listInsertCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 4 {
		return result.Error("wrong # args: should be \"list insert value index element\"")
	}
	l, errRes := asListVal("list insert", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	idx, ok := args[2].(*value.Integer)
	if !ok {
		return result.Errorf("list insert index must be an integer, got %s", args[2].Kind())
	}
	i := int(idx.Value)
	if i < 0 || i > len(l.Elements) {
		return result.Errorf("index out of range %d", idx.Value)
	}
	out := make([]value.Value, 0, len(l.Elements)+1)
	out = append(out, l.Elements[:i]...)
	out = append(out, args[3])
	out = append(out, l.Elements[i:]...)
	return result.Ok(value.NewList(out))
}

// listRemoveCmd implements `list remove value index`.
func listRemoveCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"list remove value index\"")
	}
	l, errRes := asListVal("list remove", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	idx, ok := args[2].(*value.Integer)
	if !ok || idx.Value < 0 || int(idx.Value) >= len(l.Elements) {
		return result.Errorf("index out of range for list remove")
	}
	i := int(idx.Value)
	out := make([]value.Value, 0, len(l.Elements)-1)
	out = append(out, l.Elements[:i]...)
	out = append(out, l.Elements[i+1:]...)
	return result.Ok(value.NewList(out))
}

// listReplaceCmd implements `list replace value index element`.
func listReplaceCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 4 {
		return result.Error("wrong # args: should be \"list replace value index element\"")
	}
	l, errRes := asListVal("list replace", args[1])
	if errRes.Code != result.OK {
		return errRes
	}
	idx, ok := args[2].(*value.Integer)
	if !ok || idx.Value < 0 || int(idx.Value) >= len(l.Elements) {
		return result.Errorf("index out of range for list replace")
	}
	out := append([]value.Value{}, l.Elements...)
	out[idx.Value] = args[3]
	return result.Ok(value.NewList(out))
}

// listEnsembleCmd dispatches `list subcommand value ...`.
func listEnsembleCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"list subcommand ?arg ...?\"")
	}
	rest := append([]value.Value{args[0]}, args[2:]...)
	switch args[1].Display() {
	case "length":
		return listLengthCmd(rest, scope)
	case "at":
		return listAtCmd(rest, scope)
	case "range":
		return listRangeCmd(rest, scope)
	case "append":
		return listAppendCmd(rest, scope)
	case "insert":
		return listInsertCmd(rest, scope)
	case "remove":
		return listRemoveCmd(rest, scope)
	case "replace":
		return listReplaceCmd(rest, scope)
	default:
		return result.Errorf("unknown list subcommand %q", args[1].Display())
	}
}
