package command

import (
	"testing"

	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

func argSpec(names ...string) *value.Tuple {
	elems := make([]value.Value, len(names))
	for i, n := range names {
		elems[i] = value.NewString(n)
	}
	return value.NewTuple(elems)
}

func TestProcDefinitionRegistersAndCalls(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), subst("x")))
	defRes := procCmd([]value.Value{
		value.NewString("proc"), value.NewString("double"), argSpec("x"), body,
	}, s)
	if defRes.Code != result.OK {
		t.Fatalf("proc definition = %+v", defRes)
	}
	cmd, ok := s.ResolveCommand(value.NewString("double"))
	if !ok {
		t.Fatalf("proc did not register itself under its name")
	}
	callRes := cmd.Execute([]value.Value{value.NewString("double"), value.NewInteger(4)}, s)
	if callRes.Code != result.OK || callRes.Value.(*value.Integer).Value != 4 {
		t.Fatalf("proc call = %+v", callRes)
	}
}

func TestProcBodyReturnBecomesResult(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("return"), val(value.NewInteger(42))))
	defRes := procCmd([]value.Value{value.NewString("proc"), value.NewString("answer"), argSpec("n"), body}, s)
	cmd, _ := s.ResolveCommand(value.NewString("answer"))
	res := cmd.Execute([]value.Value{value.NewString("answer"), value.NewInteger(0)}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 42 {
		t.Fatalf("proc body RETURN should surface as OK, got %+v (def=%+v)", res, defRes)
	}
}

func TestProcBareCallYieldsItselfAsCommandValue(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), val(value.NewInteger(1))))
	procCmd([]value.Value{value.NewString("proc"), value.NewString("answer"), argSpec("n"), body}, s)
	cmd, _ := s.ResolveCommand(value.NewString("answer"))
	res := cmd.Execute([]value.Value{value.NewString("answer")}, s)
	if res.Code != result.OK {
		t.Fatalf("bare metacommand call = %+v", res)
	}
	if _, ok := res.Value.(*value.Command); !ok {
		t.Fatalf("bare metacommand call should yield a command value, got %#v", res.Value)
	}
}

func TestMacroSharesCallerScope(t *testing.T) {
	s := scope.NewRootScope()
	_ = s.SetVariable("shared", value.NewInteger(1))
	body := block(sentence(str("idem"), subst("shared")))
	defRes := macroCmd([]value.Value{value.NewString("macro"), value.NewString("noop"), argSpec("n"), body}, s)
	if defRes.Code != result.OK {
		t.Fatalf("macro definition = %+v", defRes)
	}
	cmd, _ := s.ResolveCommand(value.NewString("noop"))
	res := cmd.Execute([]value.Value{value.NewString("noop"), value.NewInteger(0)}, s)
	if res.Code != result.OK || res.Value.(*value.Integer).Value != 1 {
		t.Fatalf("macro call = %+v", res)
	}
}

func TestAliasPrependsBoundArguments(t *testing.T) {
	s := scope.NewRootScope()
	res := aliasCmd([]value.Value{
		value.NewString("alias"), value.NewString("inc"), value.NewString("+"), value.NewInteger(1),
	}, s)
	if res.Code != result.OK {
		t.Fatalf("alias definition = %+v", res)
	}
	cmd, _ := s.ResolveCommand(value.NewString("inc"))
	callRes := cmd.Execute([]value.Value{value.NewString("inc"), value.NewInteger(4)}, s)
	if callRes.Code != result.OK || callRes.Value.(*value.Integer).Value != 5 {
		t.Fatalf("inc(4) = %+v, want 5", callRes)
	}
}

func TestCoroutineYieldsThenResumesToCompletion(t *testing.T) {
	s := scope.NewRootScope()
	body := block(
		sentence(str("yield"), val(value.NewInteger(1))),
		sentence(str("idem"), val(value.NewInteger(2))),
	)
	defRes := coroutineCmd([]value.Value{value.NewString("coroutine"), argSpec(), body}, s)
	co := defRes.Value.(*value.Command).Handle.(engine.Command)

	active := co.Execute([]value.Value{value.NewString("co"), value.NewString("active")}, s)
	if active.Code != result.OK || active.Value.(*value.Boolean).Value != false {
		t.Fatalf("active before first wait = %+v", active)
	}

	first := co.Execute([]value.Value{value.NewString("co"), value.NewString("wait")}, s)
	if first.Code != result.YIELD || first.Value.(*value.Integer).Value != 1 {
		t.Fatalf("first coroutine wait = %+v", first)
	}

	second := co.Execute([]value.Value{value.NewString("co"), value.NewString("wait")}, s)
	if second.Code != result.OK || second.Value.(*value.Integer).Value != 2 {
		t.Fatalf("second coroutine wait = %+v", second)
	}

	done := co.Execute([]value.Value{value.NewString("co"), value.NewString("done")}, s)
	if done.Code != result.OK || done.Value.(*value.Boolean).Value != true {
		t.Fatalf("done after completion = %+v", done)
	}
}

func TestEnsembleDispatchesToSubcommand(t *testing.T) {
	s := scope.NewRootScope()
	body := block(sentence(str("idem"), val(value.NewInteger(7))))
	defRes := procCmd([]value.Value{value.NewString("proc"), argSpec("n"), body}, s)
	sub := defRes.Value
	pairs := value.NewTuple([]value.Value{value.NewString("seven"), sub})
	ensRes := ensembleCmd([]value.Value{value.NewString("ensemble"), value.NewString("nums"), pairs}, s)
	if ensRes.Code != result.OK {
		t.Fatalf("ensemble definition = %+v", ensRes)
	}
	cmd, _ := s.ResolveCommand(value.NewString("nums"))
	callRes := cmd.Execute([]value.Value{value.NewString("nums"), value.NewString("seven"), value.NewInteger(0)}, s)
	if callRes.Code != result.OK || callRes.Value.(*value.Integer).Value != 7 {
		t.Fatalf("ensemble call = %+v", callRes)
	}
}
