package command

import (
	"testing"

	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

// TestWhileCmdStopsWhenConditionIsFalse runs while with a condition that is
// false from the start: the body never runs and the loop ends with OK.
func TestWhileCmdStopsWhenConditionIsFalse(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), val(value.NewInteger(1))))
	res := whileCmd([]value.Value{value.NewString("while"), value.NewBoolean(false), body}, s)
	if res.Code != result.OK {
		t.Fatalf("while(false) = %+v, want OK", res)
	}
}

func TestWhileCmdRejectsWrongArity(t *testing.T) {
	s := scope.NewRootScope()
	res := whileCmd([]value.Value{value.NewString("while"), value.NewBoolean(true)}, s)
	if res.Code != result.ERROR {
		t.Fatalf("expected ERROR for wrong arity, got %+v", res)
	}
}

func TestForeachListBindsEachElement(t *testing.T) {
	s := scope.NewRootScope()
	list := value.NewList([]value.Value{value.NewInteger(1), value.NewInteger(2), value.NewInteger(3)})
	body := block(sentence(str("idem"), subst("x")))
	args := []value.Value{value.NewString("foreach"), value.NewString("x"), list, body}
	res := foreachCmd(args, s)
	if res.Code != result.OK {
		t.Fatalf("foreach over list = %+v", res)
	}
}

func TestForeachDictBindsKeyAndValue(t *testing.T) {
	s := scope.NewRootScope()
	dict := value.NewDictionary([]string{"a", "b"}, []value.Value{value.NewInteger(1), value.NewInteger(2)})
	names := value.NewTuple([]value.Value{value.NewString("k"), value.NewString("v")})
	body := block(sentence(str("idem"), subst("k")), sentence(str("idem"), subst("v")))
	args := []value.Value{value.NewString("foreach"), names, dict, body}
	res := foreachCmd(args, s)
	if res.Code != result.OK {
		t.Fatalf("foreach over dictionary = %+v", res)
	}
}

func TestForeachRejectsNonCollection(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), val(value.NewInteger(1))))
	args := []value.Value{value.NewString("foreach"), value.NewString("x"), value.NewInteger(5), body}
	res := foreachCmd(args, s)
	if res.Code != result.ERROR {
		t.Fatalf("expected ERROR for a non-collection, got %+v", res)
	}
}

func TestBreakStopsForeachEarly(t *testing.T) {
	s := scope.NewRootScope()
	list := value.NewList([]value.Value{value.NewInteger(1), value.NewInteger(2)})
	body := block(sentence(str("break")))
	res := foreachCmd([]value.Value{value.NewString("foreach"), value.NewString("x"), list, body}, s)
	if res.Code != result.OK {
		t.Fatalf("break inside foreach should surface as OK, got %+v", res)
	}
}
