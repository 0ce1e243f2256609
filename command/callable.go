package command

import (
	"sort"
	"strings"

	"github.com/helena-lang/helena/argspec"
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// metacommand wraps every callable kind's definition (macro, closure,
// proc, coroutine, alias, namespace, ensemble, scope) with the
// introspection spec.md §4.9 requires of all of them: `subcommands` lists
// at least `subcommands` and argKind ("argspec", or "command" for alias);
// argKind itself reports argDisplay; and calling with no further word at
// all — args holding only the command's own name — yields the wrapped
// callable as a bare command value instead of invoking it.
type metacommand struct {
	inner      engine.Command
	self       *value.Command
	argKind    string
	argDisplay string

	// names, when set, lists the container's own registered subcommand
	// names (set for ensembles only, by newContainerMetacommand) to answer
	// `subcommands` with the real membership instead of the fixed
	// introspection pair.
	names []string
}

func newMetacommand(inner engine.Command, name, argKind, argDisplay string) *metacommand {
	m := &metacommand{inner: inner, argKind: argKind, argDisplay: argDisplay}
	m.self = value.NewCommand(m, name)
	return m
}

// newContainerMetacommand builds a metacommand for an ensemble: its
// `subcommands` introspection answer is `subcommands` followed by the
// ensemble's own member names, since an ensemble has no single
// argspec/command of its own. Namespace and scope commands use
// newMetacommand, whose answer is the fixed introspection pair.
func newContainerMetacommand(inner engine.Command, name string, members []string) *metacommand {
	m := newMetacommand(inner, name, "subcommands", "")
	m.names = append([]string{"subcommands"}, members...)
	return m
}

// Execute implements engine.Command.
func (m *metacommand) Execute(args []value.Value, scope engine.Scope) result.Result {
	if len(args) == 1 {
		return result.Ok(m.self)
	}
	if len(args) == 2 {
		switch args[1].Display() {
		case "subcommands":
			names := m.names
			if names == nil {
				names = []string{"subcommands", m.argKind}
			}
			elems := make([]value.Value, len(names))
			for i, n := range names {
				elems[i] = value.NewString(n)
			}
			return result.Ok(value.NewTuple(elems))
		case m.argKind:
			if m.names == nil {
				return result.Ok(value.NewString(m.argDisplay))
			}
		}
	}
	return m.inner.Execute(args, scope)
}

// finalizeBody turns a body script's RETURN into the command's own OK
// result (a proc/macro/closure body "returning" simply produces that
// value, matching spec.md's convention that RETURN only unwinds as far
// as the nearest callable boundary); every other code propagates as-is.
func finalizeBody(res result.Result) result.Result {
	if res.Code == result.RETURN {
		return result.Ok(res.Value)
	}
	return res
}

// parseArgSpec turns the Tuple-of-word-specs argument a macro/closure/
// proc/coroutine definition takes into an *argspec.Spec. Each element is
// either a bare name (Required), a 2-tuple `(name default)` (Optional), or
// a name prefixed with `*` (Remainder, by convention the last element).
func parseArgSpec(v value.Value) (*argspec.Spec, result.Result) {
	tuple, ok := v.(*value.Tuple)
	if !ok {
		return nil, result.Errorf("argument spec must be a tuple, got %s", v.Kind())
	}
	var args []argspec.Argument
	for _, el := range tuple.Elements {
		switch e := el.(type) {
		case *value.Tuple:
			if len(e.Elements) != 2 {
				return nil, result.Error("optional argument spec must be `(name default)`")
			}
			script, ok := e.Elements[1].(*value.Script)
			if !ok {
				return nil, result.Error("optional argument default must be a script")
			}
			args = append(args, argspec.Argument{Name: e.Elements[0].Display(), Kind: argspec.Optional, Default: script})
		default:
			name := el.Display()
			if len(name) > 0 && name[0] == '*' {
				args = append(args, argspec.Argument{Name: name[1:], Kind: argspec.Remainder})
			} else {
				args = append(args, argspec.Argument{Name: name, Kind: argspec.Required})
			}
		}
	}
	spec, err := argspec.New(args)
	if err != nil {
		return nil, result.Error(err.Error())
	}
	return spec, result.Ok(nil)
}

// callable is shared by macro, closure and proc: bind args per spec into
// a fresh scope, run body, finalize RETURN into the callable's own result.
type callable struct {
	spec     *argspec.Spec
	body     *value.Script
	defScope engine.Scope
	isolated bool
}

func (c *callable) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	var child engine.Scope
	if c.isolated {
		child = c.defScope.NewIsolatedChild()
	} else {
		child = c.defScope.NewChild()
	}
	if bindRes := c.spec.Bind(args[1:], child); bindRes.Code != result.OK {
		return bindRes
	}
	return finalizeBody(runScript(c.body, child))
}

// macroCmd defines a macro: a callable sharing the calling scope's
// variables (no isolation), as if its body were inlined at the call site.
func macroCmd(args []value.Value, scope engine.Scope) result.Result {
	return defineCallable("macro", args, scope, false, true)
}

// closureCmd defines a closure: a callable lexically bound to its
// defining scope, non-isolated so it can read (but not redefine outward)
// variables captured from that scope.
func closureCmd(args []value.Value, scope engine.Scope) result.Result {
	return defineCallable("closure", args, scope, false, false)
}

// procCmd defines a proc: a callable whose body runs in a scope isolated
// from both the caller and its own defining scope's variables.
func procCmd(args []value.Value, scope engine.Scope) result.Result {
	return defineCallable("proc", args, scope, true, false)
}

// defineCallable implements the shared shape of macro/closure/proc:
// `kind ?name? argspec body`. shareCaller selects whether Execute's
// non-isolated child scope comes from the defining scope (closure) or the
// *caller's* scope at call time (macro, via callerScopedCallable below).
func defineCallable(kind string, args []value.Value, scope engine.Scope, isolated, shareCaller bool) result.Result {
	name := ""
	rest := args[1:]
	if len(rest) == 3 {
		name = rest[0].Display()
		rest = rest[1:]
	}
	if len(rest) != 2 {
		return result.Errorf("wrong # args: should be \"%s ?name? argspec body\"", kind)
	}
	spec, errRes := parseArgSpec(rest[0])
	if errRes.Code != result.OK {
		return errRes
	}
	body, errRes := asScript(kind, rest[1])
	if errRes.Code != result.OK {
		return errRes
	}

	defScope := scope
	var c engine.Command
	if shareCaller {
		c = &callerScopedCallable{callable{spec: spec, body: body, defScope: defScope, isolated: isolated}}
	} else {
		c = &callable{spec: spec, body: body, defScope: defScope, isolated: isolated}
	}

	m := newMetacommand(c, name, "argspec", spec.Usage())
	if name != "" {
		scope.RegisterCommand(name, m)
	}
	return result.Ok(m.self)
}

// callerScopedCallable implements macro semantics: Execute binds into a
// child of the scope it is CALLED from rather than its defining scope, so
// a macro behaves as if its body ran inline at the call site.
type callerScopedCallable struct{ callable }

func (c *callerScopedCallable) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	child := callerScope.NewChild()
	if bindRes := c.spec.Bind(args[1:], child); bindRes.Code != result.OK {
		return bindRes
	}
	return finalizeBody(runScript(c.body, child))
}

// coroutine is a callable that persists its own Process across calls: the
// first call starts the body running; every later call resumes it with
// the previous YIELD's resume value, until the body completes.
type coroutine struct {
	spec     *argspec.Spec
	body     *value.Script
	defScope engine.Scope
	proc     engine.Process
	started  bool
	finished bool
}

// Execute dispatches `wait ?value?` (advance the coroutine, bind the
// remainder as the declared argspec on the first call, resume with a
// value on every later call), `active`, and `done` — the subcommand
// trio spec.md §8's `[coroutine ...]` then `$cr wait`/`$cr done` scenario
// drives the coroutine by.
func (c *coroutine) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"coroutine wait|active|done ?value ...?\"")
	}
	switch args[1].Display() {
	case "wait":
		return c.wait(args[2:])
	case "active":
		return result.Ok(value.NewBoolean(c.started && !c.finished))
	case "done":
		return result.Ok(value.NewBoolean(c.finished))
	default:
		return result.Errorf("unknown coroutine subcommand %q", args[1].Display())
	}
}

func (c *coroutine) wait(rest []value.Value) result.Result {
	if c.finished {
		return result.Error("coroutine already completed")
	}
	var res result.Result
	if !c.started {
		c.started = true
		child := c.defScope.NewIsolatedChild()
		if bindRes := c.spec.Bind(rest, child); bindRes.Code != result.OK {
			c.finished = true
			return bindRes
		}
		program, err := child.CompileScript(c.body)
		if err != nil {
			c.finished = true
			return result.Error(err.Error())
		}
		c.proc = child.NewProcess(program)
		res = c.proc.Run()
	} else {
		resumeVal := value.Value(value.NewNil())
		if len(rest) > 0 {
			resumeVal = rest[0]
		}
		res = c.proc.YieldBack(resumeVal)
	}

	if res.Code == result.YIELD {
		return result.Result{Code: result.YIELD, Value: res.Value, Data: &engine.Continuation{Process: c.proc}}
	}
	c.finished = true
	return finalizeBody(res)
}

func coroutineCmd(args []value.Value, scope engine.Scope) result.Result {
	name := ""
	rest := args[1:]
	if len(rest) == 3 {
		name = rest[0].Display()
		rest = rest[1:]
	}
	if len(rest) != 2 {
		return result.Error("wrong # args: should be \"coroutine ?name? argspec body\"")
	}
	spec, errRes := parseArgSpec(rest[0])
	if errRes.Code != result.OK {
		return errRes
	}
	body, errRes := asScript("coroutine", rest[1])
	if errRes.Code != result.OK {
		return errRes
	}
	c := &coroutine{spec: spec, body: body, defScope: scope}
	m := newMetacommand(c, name, "argspec", spec.Usage())
	if name != "" {
		scope.RegisterCommand(name, m)
	}
	return result.Ok(m.self)
}

// alias binds a target command together with a fixed prefix of arguments,
// producing a new command that prepends them on every call.
type alias struct {
	targetName string
	bound      []value.Value
	scope      engine.Scope
}

func (a *alias) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	cmd, ok := a.scope.ResolveCommand(value.NewString(a.targetName))
	if !ok {
		return result.Errorf("unknown command %q", a.targetName)
	}
	full := append([]value.Value{value.NewString(a.targetName)}, a.bound...)
	full = append(full, args[1:]...)
	return cmd.Execute(full, callerScope)
}

func aliasCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) < 3 {
		return result.Error("wrong # args: should be \"alias name target ?arg ...?\"")
	}
	name := args[1].Display()
	target := args[2].Display()
	a := &alias{targetName: target, bound: args[3:], scope: scope}

	display := target
	if len(a.bound) > 0 {
		parts := make([]string, len(a.bound))
		for i, v := range a.bound {
			parts[i] = v.Display()
		}
		display = target + " " + strings.Join(parts, " ")
	}
	m := newMetacommand(a, name, "command", display)
	scope.RegisterCommand(name, m)
	return result.Ok(m.self)
}

// namespaceCmd runs body in a fresh child scope, then registers an
// ensemble command under name that dispatches further words to commands
// defined within that scope (`name sub ...`).
type namespaceCommand struct{ scope engine.Scope }

func (n *namespaceCommand) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"namespaceName subcommand ?arg ...?\"")
	}
	sub := args[1].Display()
	cmd, ok := n.scope.ResolveCommand(args[1])
	if !ok {
		return result.Errorf("unknown subcommand %q", sub)
	}
	return cmd.Execute(args[1:], callerScope)
}

func namespaceCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"namespace name body\"")
	}
	name := args[1].Display()
	body, errRes := asScript("namespace", args[2])
	if errRes.Code != result.OK {
		return errRes
	}
	child := scope.NewChild()
	if res := runScript(body, child); res.Code != result.OK && res.Code != result.YIELD {
		return res
	}
	n := &namespaceCommand{scope: child}
	m := newMetacommand(n, name, "subcommands", "")
	scope.RegisterCommand(name, m)
	return result.Ok(m.self)
}

// ensembleCmd is namespaceCmd's lighter sibling: instead of running a
// body script to populate a scope, it takes subcommand name/command-value
// pairs directly, as produced by a prior macro/closure/proc definition.
type ensembleCommand struct{ subcommands map[string]engine.Command }

func (e *ensembleCommand) Execute(args []value.Value, callerScope engine.Scope) result.Result {
	if len(args) < 2 {
		return result.Error("wrong # args: should be \"ensembleName subcommand ?arg ...?\"")
	}
	sub := args[1].Display()
	cmd, ok := e.subcommands[sub]
	if !ok {
		return result.Errorf("unknown subcommand %q", sub)
	}
	return cmd.Execute(args[1:], callerScope)
}

func ensembleCmd(args []value.Value, scope engine.Scope) result.Result {
	if len(args) != 3 {
		return result.Error("wrong # args: should be \"ensemble name {sub1 cmd1 sub2 cmd2 ...}\"")
	}
	name := args[1].Display()
	tuple, ok := args[2].(*value.Tuple)
	if !ok || len(tuple.Elements)%2 != 0 {
		return result.Error("ensemble body must be a tuple of subcommand/command pairs")
	}
	subs := map[string]engine.Command{}
	for i := 0; i < len(tuple.Elements); i += 2 {
		cv, ok := tuple.Elements[i+1].(*value.Command)
		if !ok {
			return result.Error("ensemble subcommand value must be a command")
		}
		cmd, ok := cv.Handle.(engine.Command)
		if !ok {
			return result.Error("ensemble subcommand handle is not an engine.Command")
		}
		subs[tuple.Elements[i].Display()] = cmd
	}
	e := &ensembleCommand{subcommands: subs}
	members := make([]string, 0, len(subs))
	for sub := range subs {
		members = append(members, sub)
	}
	sort.Strings(members)
	m := newContainerMetacommand(e, name, members)
	scope.RegisterCommand(name, m)
	return result.Ok(m.self)
}

// scopeCmd runs body in a fresh child scope and registers the resulting
// scope as a namespace-style command under name, giving a scope block the
// same "callable container of commands and variables" shape as a
// namespace, per spec.md's scope-as-command kind.
func scopeCmd(args []value.Value, scope engine.Scope) result.Result {
	return namespaceCmd(args, scope)
}
