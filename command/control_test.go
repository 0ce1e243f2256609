package command

import (
	"testing"

	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

func TestIdemReturnsItsArgument(t *testing.T) {
	s := scope.NewRootScope()
	res := idem([]value.Value{value.NewString("idem"), value.NewInteger(7)}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 7 {
		t.Fatalf("idem = %+v", res)
	}
}

func TestReturnCmdProducesReturnCode(t *testing.T) {
	s := scope.NewRootScope()
	res := returnCmd([]value.Value{value.NewString("return"), value.NewInteger(3)}, s)
	if res.Code != result.RETURN {
		t.Fatalf("Code = %v, want RETURN", res.Code)
	}
}

func TestYieldCmdProducesYieldCode(t *testing.T) {
	s := scope.NewRootScope()
	res := yieldCmd([]value.Value{value.NewString("yield")}, s)
	if res.Code != result.YIELD {
		t.Fatalf("Code = %v, want YIELD", res.Code)
	}
}

func TestErrorCmdMessage(t *testing.T) {
	s := scope.NewRootScope()
	res := errorCmd([]value.Value{value.NewString("error"), value.NewString("boom")}, s)
	if res.Code != result.ERROR || res.Message() != "boom" {
		t.Fatalf("error result = %+v", res)
	}
}

func TestEvalCmdBindsIntoCallerScope(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), val(value.NewInteger(9))))
	res := evalCmd([]value.Value{value.NewString("eval"), body}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 9 {
		t.Fatalf("eval result = %+v", res)
	}
}

func TestHelpCmdReportsNoHelpForPlainFunc(t *testing.T) {
	s := scope.NewRootScope()
	res := helpCmd([]value.Value{value.NewString("help"), value.NewString("idem")}, s)
	if res.Code != result.ERROR {
		t.Fatalf("expected an error for a command with no Help, got %+v", res)
	}
}
