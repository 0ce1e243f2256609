// Package argspec implements the argument-binding rules spec.md §4.7
// assigns to proc/macro/closure/coroutine parameter lists: required
// arguments, optional arguments with a default, and at most one trailing
// remainder collecting any extra positional values. It also applies each
// argument's guard, if any, to the bound value before it reaches the body.
//
// Defaults and guards are themselves scripts/commands, so evaluating one
// can YIELD exactly like evaluating the body can — SPEC_FULL.md's
// resolution of that Open Question is "propagate": Bind surfaces a YIELD
// through an engine.Continuation the same way command execution does, and
// the Continuation's Callback resumes binding the remaining arguments
// instead of evaluating defaults/guards to completion synchronously.
package argspec

import (
	"fmt"

	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// Kind distinguishes the three argument shapes.
type Kind int

const (
	Required Kind = iota
	Optional
	Remainder
)

// Argument is one parameter of an argument spec.
type Argument struct {
	Name string
	Kind Kind

	// Default is the script evaluated to produce a value when an Optional
	// argument is not supplied by the caller. Nil means "nil value".
	Default *value.Script

	// Guard, if non-nil, is applied to the bound value before it is
	// assigned (the `{name guard}` form): Guard.Execute(
	// []value.Value{name, boundValue}, scope) returns the value to
	// actually bind.
	Guard engine.Command
}

// Spec is an ordered, validated list of Arguments.
type Spec struct {
	Arguments []Argument
}

// New validates args and returns a Spec: at most one Remainder, which must
// be last, and no duplicate names.
func New(args []Argument) (*Spec, error) {
	seen := map[string]bool{}
	for i, a := range args {
		if a.Name == "" {
			return nil, fmt.Errorf("argument %d has no name", i)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("duplicate argument name %q", a.Name)
		}
		seen[a.Name] = true
		if a.Kind == Remainder && i != len(args)-1 {
			return nil, fmt.Errorf("remainder argument %q must be last", a.Name)
		}
	}
	return &Spec{Arguments: args}, nil
}

// CheckArity reports whether argc positional values satisfy s without
// evaluating anything.
func (s *Spec) CheckArity(argc int) bool {
	required, optional, hasRemainder := s.counts()
	if argc < required {
		return false
	}
	if hasRemainder {
		return true
	}
	return argc <= required+optional
}

func (s *Spec) counts() (required, optional int, hasRemainder bool) {
	for _, a := range s.Arguments {
		switch a.Kind {
		case Required:
			required++
		case Optional:
			optional++
		case Remainder:
			hasRemainder = true
		}
	}
	return
}

// Bind assigns argValues positionally into scope according to s, running
// default-value scripts and guards as needed. It returns result.Ok(nil) on
// success, an ERROR result on arity or guard failure, or a YIELD result
// whose Data is an *engine.Continuation resuming the bind once the host
// supplies the suspended default/guard evaluation's result.
func (s *Spec) Bind(argValues []value.Value, scope engine.Scope) result.Result {
	if !s.CheckArity(len(argValues)) {
		return result.Errorf("wrong number of arguments: expected %s", s.Usage())
	}
	return s.bindFrom(0, argValues, scope)
}

// bindFrom binds s.Arguments[i:], with argValues holding whatever
// positional values have not yet been consumed.
func (s *Spec) bindFrom(i int, argValues []value.Value, scope engine.Scope) result.Result {
	for ; i < len(s.Arguments); i++ {
		a := s.Arguments[i]

		switch a.Kind {
		case Remainder:
			if err := scope.SetLocal(a.Name, value.NewList(append([]value.Value{}, argValues...))); err != nil {
				return result.Error(err.Error())
			}
			argValues = nil

		case Required:
			if len(argValues) == 0 {
				return result.Errorf("missing required argument %q", a.Name)
			}
			v := argValues[0]
			rest := argValues[1:]
			if res := s.bindOne(i, a, v, rest, scope); res.Code != result.OK || res.Data != nil {
				return res
			}
			argValues = rest

		case Optional:
			var v value.Value
			var rest []value.Value
			if len(argValues) > 0 && argValues[0] != nil && s.needsValue(i, len(argValues)) {
				v, rest = argValues[0], argValues[1:]
				if res := s.bindOne(i, a, v, rest, scope); res.Code != result.OK || res.Data != nil {
					return res
				}
				argValues = rest
				continue
			}
			res, cont := s.evaluateDefault(a, scope)
			if cont != nil {
				return s.suspendAfterDefault(i, a, argValues, scope, cont)
			}
			if res.Code != result.OK {
				return res
			}
			if res := s.bindOne(i, a, res.Value, argValues, scope); res.Code != result.OK || res.Data != nil {
				return res
			}
		}
	}
	return result.Ok(nil)
}

// needsValue reports whether, with n values remaining starting at
// argument index i, the optional argument at i should consume one (true)
// or fall back to its default (false): it must leave enough for every
// required/remainder argument still to come.
func (s *Spec) needsValue(i, n int) bool {
	requiredAfter := 0
	hasRemainderAfter := false
	for _, a := range s.Arguments[i+1:] {
		switch a.Kind {
		case Required:
			requiredAfter++
		case Remainder:
			hasRemainderAfter = true
		}
	}
	if hasRemainderAfter {
		return n > requiredAfter+1 // leave at least one for this optional only if surplus exists
	}
	return n > requiredAfter
}

// bindOne applies a's guard to v (suspending via YIELD if the guard
// yields) and assigns the result to scope.
func (s *Spec) bindOne(i int, a Argument, v value.Value, rest []value.Value, scope engine.Scope) result.Result {
	if a.Guard == nil {
		if err := scope.SetLocal(a.Name, v); err != nil {
			return result.Error(err.Error())
		}
		return result.Ok(nil)
	}
	res := a.Guard.Execute([]value.Value{value.NewString(a.Name), v}, scope)
	if res.Code == result.YIELD {
		cont, _ := res.Data.(*engine.Continuation)
		if cont == nil {
			return res
		}
		return s.suspendAfterGuard(i, rest, scope, cont)
	}
	if res.Code != result.OK {
		return res
	}
	if err := scope.SetLocal(a.Name, res.Value); err != nil {
		return result.Error(err.Error())
	}
	return result.Ok(nil)
}

// evaluateDefault runs a's Default script, returning its value or a
// Continuation if it yields.
func (s *Spec) evaluateDefault(a Argument, scope engine.Scope) (result.Result, *engine.Continuation) {
	if a.Default == nil {
		return result.Ok(value.NewNil()), nil
	}
	program, err := scope.CompileScript(a.Default)
	if err != nil {
		return result.Error(err.Error()), nil
	}
	proc := scope.NewProcess(program)
	res := proc.Run()
	if res.Code == result.YIELD {
		return res, &engine.Continuation{Process: proc}
	}
	return res, nil
}

// suspendAfterDefault builds the Result/Continuation pair that resumes
// bindFrom at argument i once a suspended default value becomes available.
func (s *Spec) suspendAfterDefault(i int, a Argument, argValues []value.Value, scope engine.Scope, cont *engine.Continuation) result.Result {
	cont.Callback = func(res result.Result) (result.Result, *engine.Continuation) {
		if res.Code != result.OK {
			return res, nil
		}
		bindRes := s.bindOne(i, a, res.Value, argValues, scope)
		if bindRes.Data != nil {
			return bindRes, bindRes.Data.(*engine.Continuation)
		}
		if bindRes.Code != result.OK {
			return bindRes, nil
		}
		return s.bindFrom(i+1, argValues, scope), nil
	}
	return result.Result{Code: result.YIELD, Value: value.NewNil(), Data: cont}
}

// suspendAfterGuard builds the Result/Continuation pair that resumes
// bindFrom at argument i+1 once a suspended guard result becomes available.
func (s *Spec) suspendAfterGuard(i int, rest []value.Value, scope engine.Scope, cont *engine.Continuation) result.Result {
	a := s.Arguments[i]
	cont.Callback = func(res result.Result) (result.Result, *engine.Continuation) {
		if res.Code != result.OK {
			return res, nil
		}
		if err := scope.SetLocal(a.Name, res.Value); err != nil {
			return result.Error(err.Error()), nil
		}
		return s.bindFrom(i+1, rest, scope), nil
	}
	return result.Result{Code: result.YIELD, Value: value.NewNil(), Data: cont}
}

// Usage renders s as a one-line argument list display (`x ?y? ?z ...?`),
// used by the `argspec` introspection subcommand every callable kind
// exposes (spec.md §4.9) and by arity-error messages.
func (s *Spec) Usage() string {
	out := ""
	for _, a := range s.Arguments {
		if out != "" {
			out += " "
		}
		switch a.Kind {
		case Required:
			out += a.Name
		case Optional:
			out += "?" + a.Name + "?"
		case Remainder:
			out += "?" + a.Name + " ...?"
		}
	}
	return out
}
