package value

import "github.com/helena-lang/helena/ast"

// CompiledProgram is the narrow view of a compiled program a Script needs
// to cache, expressed as an interface so the value package does not import
// the code package (which, like everything downstream, imports value).
type CompiledProgram interface {
	// ConstantCount reports how many constants the program pool holds —
	// only used by tests/diagnostics to confirm a cache hit cheaply.
	ConstantCount() int
}

// Script is an AST reference plus an optional original source string and a
// run-time cache of its compiled program. Per the Lifecycle invariant, the
// cache is the responsibility of whichever Scope first compiles the
// script: Scope.CompileScript consults and fills Script.program.
type Script struct {
	AST    *ast.Script
	Source string

	program CompiledProgram
}

// NewScript wraps an AST with optional source text.
func NewScript(tree *ast.Script, source string) *Script {
	return &Script{AST: tree, Source: source}
}

func (s *Script) Kind() Kind { return KindScript }

func (s *Script) Display() string {
	if s.Source != "" {
		return s.Source
	}
	return "{script}"
}

// CachedProgram returns the memoized compiled program, if any.
func (s *Script) CachedProgram() (CompiledProgram, bool) {
	if s.program == nil {
		return nil, false
	}
	return s.program, true
}

// SetCachedProgram memoizes the compiled program for future evaluations of
// this Script. A Script's cached program must always be equivalent to
// recompiling its AST; callers are responsible for that invariant.
func (s *Script) SetCachedProgram(p CompiledProgram) {
	s.program = p
}
