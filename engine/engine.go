// Package engine declares the minimal interfaces that let the process
// executor, the argument-spec binder and the command implementations refer
// to "a scope" and "a command" without any of those packages importing one
// another or the concrete scope package directly:
//
//	process  -> engine (Scope, Command, Continuation)
//	argspec  -> engine (Scope)
//	command  -> engine (Scope) ; command's own types satisfy engine.Command
//	scope    -> engine + command  (builds the concrete Scope, registers builtins)
//
// A concrete *scope.Scope structurally satisfies engine.Scope without scope
// ever being imported by process, argspec or command — Go's interfaces are
// implicit, so the dependency arrow only ever points at engine.
package engine

import (
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// Scope is the runtime environment a process executes a program against:
// variable/command resolution, plus enough authority to compile and run a
// nested script (used by commands like `eval`, `proc`, `if`).
type Scope interface {
	// ResolveVariable looks up name as a variable, walking to enclosing
	// scopes per spec.md's dynamic/lexical/isolated scoping rules.
	ResolveVariable(name string) (value.Value, bool)

	// ResolveCommand resolves v as the head of a sentence per spec.md
	// §4.5's 4-branch dispatch: a Tuple auto-expands (its head is resolved
	// recursively and its elements prepended as bound arguments), a
	// Command value unwraps to its own Handle, an Integer/Real dispatches
	// to the number ensemble, and anything else resolves by its string
	// display form.
	ResolveCommand(v value.Value) (Command, bool)

	// SetVariable binds name to v in this scope, returning an error when
	// name is already a constant of this scope.
	SetVariable(name string, v value.Value) error

	// SetConstant binds name to v as a constant in this scope.
	SetConstant(name string, v value.Value) error

	// SetLocal binds name to v as an ephemeral, per-invocation local —
	// searched before constants/variables, never inherited by a child
	// scope, and rejecting redefinition of an existing local (spec.md
	// §4.5). Argument binding uses this rather than SetVariable.
	SetLocal(name string, v value.Value) error

	// UnsetVariable removes name's binding from this scope only.
	UnsetVariable(name string) error

	// RegisterCommand binds name to cmd in this scope's command namespace.
	RegisterCommand(name string, cmd Command)

	// NewChild returns a lexically-scoped child sharing this scope's
	// command namespace visibility.
	NewChild() Scope

	// NewIsolatedChild returns a child whose variable resolution does not
	// walk past it to this scope (used for proc and coroutine bodies), while
	// command and constant resolution still do.
	NewIsolatedChild() Scope

	// CompileScript compiles s (caching the result on it) and returns an
	// executable Program ready to drive a Process.
	CompileScript(s *value.Script) (Program, error)

	// NewProcess returns a Process bound to this scope, ready to Run p.
	NewProcess(p Program) Process
}

// Program is the narrow view of a compiled script the engine package needs
// — it mirrors value.CompiledProgram without re-importing code, since code
// already depends on value and engine must not create a cycle back to code
// for this interface to exist; concrete *code.Program satisfies it.
type Program interface {
	ConstantCount() int
}

// Process runs a compiled Program against a Scope, suspending on YIELD and
// resuming from the exact point it left off (spec.md §5) without relying
// on goroutines: all suspended state lives in the Process's own fields.
type Process interface {
	// Run executes until the program completes or a YIELD/ERROR/RETURN
	// propagates to the top level.
	Run() result.Result

	// YieldBack supplies the value a suspended YIELD should resolve to,
	// then resumes execution; calling it while not suspended is an error.
	YieldBack(v value.Value) result.Result
}

// Command is anything a scope can dispatch a sentence's arguments to.
type Command interface {
	// Execute runs the command with args (args[0] is the command's own
	// name, matching spec.md's convention that a command sees its full
	// invocation) in scope, returning a Result.
	Execute(args []value.Value, scope Scope) result.Result
}

// Resumable is an optional interface for commands that resume themselves
// after a YIELD inside their own execution. No command in this module
// implements it: commands suspend by returning a YIELD Result whose Data
// is a *Continuation.
type Resumable interface {
	Command
	Resume(result result.Result, scope Scope) result.Result
}

// Helper is implemented by commands that can describe their own usage,
// backing the `help` command (spec.md §4.8).
type Helper interface {
	Help(args []value.Value) (string, error)
}

// Continuation chains a pending transfer of control across a suspend
// boundary: when a sub-program run produces a Result, Callback decides
// what the outer evaluation does with it — either a final Result, or a
// further Continuation to run before one is available. The process
// executor drives chained Continuations in a loop instead of recursing,
// so nesting depth never grows the Go call stack.
type Continuation struct {
	// Process is the sub-program to run (or resume) next.
	Process Process

	// Callback receives Process's Result once available and decides how
	// evaluation proceeds: a plain Result ends the chain; a non-nil
	// *Continuation asks the executor to run that instead and call back
	// again with its Result.
	Callback func(result.Result) (result.Result, *Continuation)
}
