package command

import (
	"testing"

	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

func TestIfCmdRunsThenBranch(t *testing.T) {
	s := scope.NewRootScope()
	then := block(sentence(str("idem"), val(value.NewInteger(1))))
	els := block(sentence(str("idem"), val(value.NewInteger(2))))
	args := []value.Value{
		value.NewString("if"),
		value.NewBoolean(true),
		then,
		value.NewString("else"),
		els,
	}
	res := ifCmd(args, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 1 {
		t.Fatalf("if (true) result = %+v", res)
	}
}

func TestIfCmdRunsElseBranch(t *testing.T) {
	s := scope.NewRootScope()
	then := block(sentence(str("idem"), val(value.NewInteger(1))))
	els := block(sentence(str("idem"), val(value.NewInteger(2))))
	args := []value.Value{
		value.NewString("if"),
		value.NewBoolean(false),
		then,
		value.NewString("else"),
		els,
	}
	res := ifCmd(args, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 2 {
		t.Fatalf("if (false) else result = %+v", res)
	}
}

func TestIfCmdRejectsNonBooleanCondition(t *testing.T) {
	s := scope.NewRootScope()
	then := block(sentence(str("idem"), val(value.NewInteger(1))))
	args := []value.Value{value.NewString("if"), value.NewInteger(1), then}
	res := ifCmd(args, s)
	if res.Code != result.ERROR {
		t.Fatalf("expected ERROR for non-boolean condition, got %+v", res)
	}
}

func TestWhenCmdPicksFirstTrueBranch(t *testing.T) {
	s := scope.NewRootScope()
	branch1 := block(sentence(str("idem"), val(value.NewInteger(1))))
	branch2 := block(sentence(str("idem"), val(value.NewInteger(2))))
	tuple := value.NewTuple([]value.Value{
		value.NewBoolean(false), branch1,
		value.NewBoolean(true), branch2,
	})
	res := whenCmd([]value.Value{value.NewString("when"), tuple}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 2 {
		t.Fatalf("when result = %+v", res)
	}
}

func TestWhenCmdFallsBackToTrailingDefault(t *testing.T) {
	s := scope.NewRootScope()
	branch1 := block(sentence(str("idem"), val(value.NewInteger(1))))
	def := block(sentence(str("idem"), val(value.NewInteger(9))))
	tuple := value.NewTuple([]value.Value{value.NewBoolean(false), branch1, def})
	res := whenCmd([]value.Value{value.NewString("when"), tuple}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 9 {
		t.Fatalf("when default result = %+v", res)
	}
}
