package scope

import (
	"testing"

	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

func TestSetLocalRejectsRedefinition(t *testing.T) {
	s := newScope(nil, false)
	if err := s.SetLocal("x", value.NewInteger(1)); err != nil {
		t.Fatalf("first SetLocal: %v", err)
	}
	if err := s.SetLocal("x", value.NewInteger(2)); err == nil {
		t.Fatalf("expected redefining a local to fail")
	}
}

func TestResolveVariableSearchesLocalsFirst(t *testing.T) {
	s := newScope(nil, false)
	_ = s.SetVariable("x", value.NewInteger(1))
	_ = s.SetLocal("x", value.NewInteger(2))
	v, ok := s.ResolveVariable("x")
	if !ok || v.(*value.Integer).Value != 2 {
		t.Fatalf("ResolveVariable = %+v, want local shadowing the variable", v)
	}
}

func TestLocalsAreNotInheritedByChildScope(t *testing.T) {
	s := newScope(nil, false)
	_ = s.SetLocal("x", value.NewInteger(1))
	child := s.NewChild()
	if _, ok := child.ResolveVariable("x"); ok {
		t.Fatalf("child scope should not see parent's locals")
	}
}

func TestResolveCommandUnwrapsCommandValue(t *testing.T) {
	s := NewRootScope()
	idemCmd, ok := s.ResolveCommand(value.NewString("idem"))
	if !ok {
		t.Fatalf("idem should be a registered builtin")
	}
	wrapped := value.NewCommand(idemCmd, "idem")
	cmd, ok := s.ResolveCommand(wrapped)
	if !ok || cmd == nil {
		t.Fatalf("ResolveCommand should unwrap a Command value")
	}
	res := cmd.Execute([]value.Value{value.NewString("idem"), value.NewInteger(9)}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 9 {
		t.Fatalf("unwrapped command call = %+v", res)
	}
}

func TestResolveCommandDispatchesNumberEnsemble(t *testing.T) {
	s := NewRootScope()
	cmd, ok := s.ResolveCommand(value.NewInteger(5))
	if !ok {
		t.Fatalf("an Integer should resolve to the number ensemble")
	}
	res := cmd.Execute([]value.Value{value.NewInteger(5), value.NewString("+"), value.NewInteger(3)}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 8 {
		t.Fatalf("number ensemble call = %+v", res)
	}
}

func TestResolveCommandExpandsTupleHead(t *testing.T) {
	s := NewRootScope()
	head := value.NewTuple([]value.Value{value.NewString("idem")})
	cmd, ok := s.ResolveCommand(head)
	if !ok {
		t.Fatalf("a Tuple head should resolve to a tupleCommand")
	}
	res := cmd.Execute([]value.Value{head, value.NewInteger(7)}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 7 {
		t.Fatalf("tuple-command call = %+v", res)
	}
}

func TestResolveCommandByStringDisplay(t *testing.T) {
	s := NewRootScope()
	cmd, ok := s.ResolveCommand(value.NewString("idem"))
	if !ok || cmd == nil {
		t.Fatalf("expected idem to resolve by name")
	}
}
