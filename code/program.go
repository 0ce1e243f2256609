package code

import "github.com/helena-lang/helena/value"

// Program is a compiled script: a flat instruction stream plus the pool of
// constant values PushConstant indexes into. It has no symbol table —
// spec.md §4.4 resolves variables and commands dynamically against a
// scope at execution time, not statically at compile time.
type Program struct {
	Instructions Instructions
	Constants    []value.Value
}

// ConstantCount implements value.CompiledProgram, the narrow view a cached
// Script program exposes without value importing code directly.
func (p *Program) ConstantCount() int { return len(p.Constants) }
