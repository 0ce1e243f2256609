package process

import (
	"testing"

	"github.com/helena-lang/helena/code"
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// fakeScope is a minimal engine.Scope test double, avoiding a dependency on
// the scope package (which itself depends on process) from this test file.
type fakeScope struct {
	vars     map[string]value.Value
	commands map[string]engine.Command
}

func newFakeScope() *fakeScope {
	return &fakeScope{vars: map[string]value.Value{}, commands: map[string]engine.Command{}}
}

func (s *fakeScope) ResolveVariable(name string) (value.Value, bool) { v, ok := s.vars[name]; return v, ok }
func (s *fakeScope) ResolveCommand(v value.Value) (engine.Command, bool) {
	c, ok := s.commands[v.Display()]
	return c, ok
}
func (s *fakeScope) SetVariable(name string, v value.Value) error { s.vars[name] = v; return nil }
func (s *fakeScope) SetConstant(name string, v value.Value) error { s.vars[name] = v; return nil }
func (s *fakeScope) SetLocal(name string, v value.Value) error    { s.vars[name] = v; return nil }
func (s *fakeScope) UnsetVariable(name string) error              { delete(s.vars, name); return nil }
func (s *fakeScope) RegisterCommand(name string, cmd engine.Command) { s.commands[name] = cmd }
func (s *fakeScope) NewChild() engine.Scope                        { return newFakeScope() }
func (s *fakeScope) NewIsolatedChild() engine.Scope                { return newFakeScope() }
func (s *fakeScope) CompileScript(sv *value.Script) (engine.Program, error) {
	return nil, nil
}
func (s *fakeScope) NewProcess(p engine.Program) engine.Process { return nil }

type addCommand struct{}

func (addCommand) Execute(args []value.Value, scope engine.Scope) result.Result {
	a := args[1].(*value.Integer).Value
	b := args[2].(*value.Integer).Value
	return result.Ok(value.NewInteger(a + b))
}

type yieldingCommand struct{}

func (yieldingCommand) Execute(args []value.Value, scope engine.Scope) result.Result {
	return result.Result{Code: result.YIELD, Value: value.NewString("paused")}
}

func program(instructions code.Instructions, constants ...value.Value) *code.Program {
	return &code.Program{Instructions: instructions, Constants: constants}
}

func TestRunPushConstant(t *testing.T) {
	p := program(
		append(code.Make(code.PushConstant, 0)),
		value.NewInteger(42),
	)
	proc := New(p, newFakeScope())
	res := proc.Run()
	if res.Code != result.OK {
		t.Fatalf("Code = %v, want OK", res.Code)
	}
	if got := res.Value.(*value.Integer).Value; got != 42 {
		t.Fatalf("Value = %d, want 42", got)
	}
}

func TestRunEvaluateSentenceDispatchesCommand(t *testing.T) {
	scope := newFakeScope()
	scope.RegisterCommand("add", addCommand{})

	var ins code.Instructions
	ins = append(ins, code.Make(code.PushConstant, 0)...) // "add"
	ins = append(ins, code.Make(code.PushConstant, 1)...) // 2
	ins = append(ins, code.Make(code.PushConstant, 2)...) // 3
	ins = append(ins, code.Make(code.EvaluateSentence, 3)...)

	p := &code.Program{
		Instructions: ins,
		Constants:    []value.Value{value.NewString("add"), value.NewInteger(2), value.NewInteger(3)},
	}
	proc := New(p, scope)
	res := proc.Run()
	if res.Code != result.OK {
		t.Fatalf("Code = %v, want OK", res.Code)
	}
	if got := res.Value.(*value.Integer).Value; got != 5 {
		t.Fatalf("Value = %d, want 5", got)
	}
}

func TestRunSuspendsOnYieldAndResumes(t *testing.T) {
	scope := newFakeScope()
	scope.RegisterCommand("pause", yieldingCommand{})

	var ins code.Instructions
	ins = append(ins, code.Make(code.PushConstant, 0)...) // "pause"
	ins = append(ins, code.Make(code.EvaluateSentence, 1)...)

	p := &code.Program{Instructions: ins, Constants: []value.Value{value.NewString("pause")}}
	proc := New(p, scope)

	res := proc.Run()
	if res.Code != result.YIELD {
		t.Fatalf("Code = %v, want YIELD", res.Code)
	}

	res = proc.YieldBack(value.NewString("resumed"))
	if res.Code != result.OK {
		t.Fatalf("Code after resume = %v, want OK", res.Code)
	}
	if got := res.Value.(*value.String).Value; got != "resumed" {
		t.Fatalf("Value after resume = %q, want %q", got, "resumed")
	}
}

func TestRunUnknownCommandErrors(t *testing.T) {
	scope := newFakeScope()
	var ins code.Instructions
	ins = append(ins, code.Make(code.PushConstant, 0)...)
	ins = append(ins, code.Make(code.EvaluateSentence, 1)...)
	p := &code.Program{Instructions: ins, Constants: []value.Value{value.NewString("nope")}}
	proc := New(p, scope)
	res := proc.Run()
	if res.Code != result.ERROR {
		t.Fatalf("Code = %v, want ERROR", res.Code)
	}
}
