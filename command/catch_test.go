package command

import (
	"testing"

	"github.com/helena-lang/helena/ast"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

func TestCatchNoHandlerReturnsCodeNameTuple(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), val(value.NewInteger(5))))
	res := catchCmd([]value.Value{value.NewString("catch"), body}, s)
	if res.Code != result.OK {
		t.Fatalf("catch with no handler = %+v", res)
	}
	tuple, ok := res.Value.(*value.Tuple)
	if !ok || len(tuple.Elements) != 2 {
		t.Fatalf("catch with no handler should yield (codeName value), got %#v", res.Value)
	}
	if tuple.Elements[0].Display() != "ok" {
		t.Fatalf("codeName = %q, want \"ok\"", tuple.Elements[0].Display())
	}
	if tuple.Elements[1].(*value.Integer).Value != 5 {
		t.Fatalf("value = %+v, want 5", tuple.Elements[1])
	}
}

func TestCatchNoHandlerEncodesErrorCode(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("error"), val(value.NewString("boom"))))
	res := catchCmd([]value.Value{value.NewString("catch"), body}, s)
	if res.Code != result.OK {
		t.Fatalf("catch with no handler = %+v", res)
	}
	tuple, ok := res.Value.(*value.Tuple)
	if !ok || tuple.Elements[0].Display() != "error" || tuple.Elements[1].Display() != "boom" {
		t.Fatalf("catch with no handler on error = %#v", res.Value)
	}
}

// TestCatchReturnHandlerBindsValue exercises spec.md's own end-to-end
// scenario: `catch {return val} return r {idem _$r_}` -> OK("_val_").
func TestCatchReturnHandlerBindsValue(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("return"), val(value.NewString("val"))))
	underscoredR := ast.Word{Morphemes: []ast.Morpheme{
		{Kind: ast.MorphemeLiteral, Literal: "_"},
		{Kind: ast.MorphemeSubstituteNext, Literal: "r", Levels: 1},
		{Kind: ast.MorphemeLiteral, Literal: "_"},
	}}
	handler := block(sentence(str("idem"), underscoredR))
	res := catchCmd([]value.Value{
		value.NewString("catch"), body, value.NewString("return"), value.NewString("r"), handler,
	}, s)
	if res.Code != result.OK || res.Value.(*value.String).Value != "_val_" {
		t.Fatalf("catch return handler = %+v", res)
	}
}

func TestCatchErrorHandlerBindsMessage(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("error"), val(value.NewString("boom"))))
	handler := block(sentence(str("idem"), subst("msg")))
	res := catchCmd([]value.Value{
		value.NewString("catch"), body, value.NewString("error"), value.NewString("msg"), handler,
	}, s)
	if res.Code != result.OK || res.Value.(*value.String).Value != "boom" {
		t.Fatalf("catch error handler = %+v", res)
	}
}

func TestCatchBreakHandlerTakesNoName(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("break")))
	handler := block(sentence(str("idem"), val(value.NewInteger(9))))
	res := catchCmd([]value.Value{
		value.NewString("catch"), body, value.NewString("break"), handler,
	}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 9 {
		t.Fatalf("catch break handler = %+v", res)
	}
}

func TestCatchPassReraisesOriginal(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("error"), val(value.NewString("boom"))))
	handler := block(sentence(str("pass")))
	res := catchCmd([]value.Value{
		value.NewString("catch"), body, value.NewString("error"), value.NewString("msg"), handler,
	}, s)
	if res.Code != result.ERROR || res.Message() != "boom" {
		t.Fatalf("catch with pass = %+v", res)
	}
}

func TestCatchFinallyRunsOnceOnOkOutcome(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("return"), val(value.NewInteger(1))))
	handler := block(sentence(str("idem"), val(value.NewInteger(1))))
	finally := block(sentence(str("idem"), val(value.NewInteger(0))))
	args := []value.Value{
		value.NewString("catch"), body,
		value.NewString("return"), value.NewString("r"), handler,
		value.NewString("finally"), finally,
	}
	res := catchCmd(args, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 1 {
		t.Fatalf("catch with finally = %+v", res)
	}
}

func TestCatchUnmatchedHandlerSurfacesBodyCode(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("break")))
	handler := block(sentence(str("idem"), val(value.NewInteger(9))))
	res := catchCmd([]value.Value{
		value.NewString("catch"), body, value.NewString("error"), value.NewString("msg"), handler,
	}, s)
	if res.Code != result.BREAK {
		t.Fatalf("unmatched handler should surface body's own code, got %+v", res)
	}
}
