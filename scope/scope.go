// Package scope implements engine.Scope: the chain of variable, constant
// and command bindings a process executes against (spec.md §4.6). A Scope
// is a plain tree of maps with a parent pointer, extended with two
// dimensions the teacher's single-map Environment didn't need:
//
//   - a separate constants map, so `set` can refuse to rebind a constant
//     without the checker needing a type tag on every value;
//   - an isolated flag, so a proc or coroutine body's variable lookups can
//     stop at a boundary while its constant and command lookups keep
//     walking outward.
package scope

import (
	"fmt"

	"github.com/helena-lang/helena/code"
	"github.com/helena-lang/helena/command"
	"github.com/helena-lang/helena/compiler"
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/process"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// Scope is the concrete engine.Scope implementation.
type Scope struct {
	parent   *Scope
	isolated bool

	constants map[string]value.Value
	variables map[string]value.Value
	locals    map[string]value.Value
	commands  map[string]engine.Command
}

// NewRootScope returns a fresh top-level Scope with every builtin command
// registered (spec.md §4.9's number/string/list ensembles and control-flow
// commands).
func NewRootScope() *Scope {
	s := newScope(nil, false)
	command.RegisterBuiltins(s)
	return s
}

func newScope(parent *Scope, isolated bool) *Scope {
	return &Scope{
		parent:    parent,
		isolated:  isolated,
		constants: map[string]value.Value{},
		variables: map[string]value.Value{},
		locals:    map[string]value.Value{},
		commands:  map[string]engine.Command{},
	}
}

// NewChild implements engine.Scope.
func (s *Scope) NewChild() engine.Scope { return newScope(s, false) }

// NewIsolatedChild implements engine.Scope.
func (s *Scope) NewIsolatedChild() engine.Scope { return newScope(s, true) }

// ResolveVariable implements engine.Scope, searching locals, then
// constants, then variables, then the parent chain (spec.md §4.5). Past an
// isolated scope only the ancestors' constants are searched.
func (s *Scope) ResolveVariable(name string) (value.Value, bool) {
	if v, ok := s.locals[name]; ok {
		return v, true
	}
	if v, ok := s.constants[name]; ok {
		return v, true
	}
	if v, ok := s.variables[name]; ok {
		return v, true
	}
	if s.isolated {
		for p := s.parent; p != nil; p = p.parent {
			if v, ok := p.constants[name]; ok {
				return v, true
			}
		}
		return nil, false
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.ResolveVariable(name)
}

// ResolveCommand implements engine.Scope's 4-branch dispatch (spec.md
// §4.5): a Tuple auto-expands via tupleCommand, a Command value unwraps to
// its own Handle, an Integer/Real dispatches to command.NumberEnsemble,
// and anything else resolves by its string display form, walking to the
// root regardless of isolation — only variables are barriered.
func (s *Scope) ResolveCommand(v value.Value) (engine.Command, bool) {
	switch vv := v.(type) {
	case *value.Command:
		cmd, ok := vv.Handle.(engine.Command)
		return cmd, ok
	case *value.Tuple:
		return &tupleCommand{scope: s, tuple: vv}, true
	case *value.Integer, *value.Real:
		return command.NumberEnsemble, true
	default:
		return s.resolveNamedCommand(v.Display())
	}
}

func (s *Scope) resolveNamedCommand(name string) (engine.Command, bool) {
	if cmd, ok := s.commands[name]; ok {
		return cmd, true
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.resolveNamedCommand(name)
}

// tupleCommand implements the Tuple auto-expansion branch of
// ResolveCommand: calling it with args prepends the tuple's own elements
// (recursively resolving its own head, so a tuple-of-tuples keeps
// flattening) ahead of the caller's remaining arguments.
type tupleCommand struct {
	scope *Scope
	tuple *value.Tuple
}

func (t *tupleCommand) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	if len(t.tuple.Elements) == 0 {
		return result.Error("cannot resolve command: empty tuple")
	}
	cmd, ok := t.scope.ResolveCommand(t.tuple.Elements[0])
	if !ok {
		return result.Errorf("cannot resolve command %q", t.tuple.Elements[0].Display())
	}
	full := append(append([]value.Value{}, t.tuple.Elements...), args[1:]...)
	return cmd.Execute(full, callerScope)
}

// SetVariable implements engine.Scope.
func (s *Scope) SetVariable(name string, v value.Value) error {
	if _, ok := s.constants[name]; ok {
		return fmt.Errorf("cannot redefine constant %q as a variable", name)
	}
	s.variables[name] = v
	return nil
}

// SetConstant implements engine.Scope.
func (s *Scope) SetConstant(name string, v value.Value) error {
	if _, ok := s.variables[name]; ok {
		return fmt.Errorf("cannot redefine variable %q as a constant", name)
	}
	if _, ok := s.constants[name]; ok {
		return fmt.Errorf("cannot redefine constant %q", name)
	}
	s.constants[name] = v
	return nil
}

// SetLocal implements engine.Scope: an ephemeral binding exclusively
// owned by this scope (never visible to a child), rejecting redefinition
// of an existing local.
func (s *Scope) SetLocal(name string, v value.Value) error {
	if _, ok := s.locals[name]; ok {
		return fmt.Errorf("cannot redefine local %q", name)
	}
	s.locals[name] = v
	return nil
}

// UnsetVariable implements engine.Scope.
func (s *Scope) UnsetVariable(name string) error {
	if _, ok := s.constants[name]; ok {
		return fmt.Errorf("cannot unset constant %q", name)
	}
	if _, ok := s.variables[name]; !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	delete(s.variables, name)
	return nil
}

// RegisterCommand implements engine.Scope.
func (s *Scope) RegisterCommand(name string, cmd engine.Command) {
	s.commands[name] = cmd
}

// CompileScript implements engine.Scope, caching the compiled program on
// the Script value so repeated evaluation (e.g. a loop body) compiles once.
func (s *Scope) CompileScript(sv *value.Script) (engine.Program, error) {
	if cached, ok := sv.CachedProgram(); ok {
		if p, ok := cached.(*code.Program); ok {
			return p, nil
		}
	}
	p, err := compiler.CompileScript(sv.AST)
	if err != nil {
		return nil, err
	}
	sv.SetCachedProgram(p)
	return p, nil
}

// NewProcess implements engine.Scope.
func (s *Scope) NewProcess(p engine.Program) engine.Process {
	program, ok := p.(*code.Program)
	if !ok {
		panic("scope.NewProcess: program is not a *code.Program")
	}
	return process.New(program, s)
}
