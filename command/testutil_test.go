package command

import (
	"github.com/helena-lang/helena/ast"
	"github.com/helena-lang/helena/value"
)

// val wraps v as a pre-substituted Word, bypassing morpheme parsing (out
// of this module's scope).
func val(v value.Value) ast.Word { return ast.Word{Value: v} }

func str(s string) ast.Word { return val(value.NewString(s)) }

// subst builds the word `$name`: a single SubstituteNext morpheme that
// resolves name as a variable when the sentence runs.
func subst(name string) ast.Word {
	return ast.Word{Morphemes: []ast.Morpheme{{Kind: ast.MorphemeSubstituteNext, Literal: name, Levels: 1}}}
}

func sentence(words ...ast.Word) ast.Sentence { return ast.Sentence{Words: words} }

// block builds a *value.Script out of pre-substituted sentences, the
// shape a macro/proc/if/while body argument takes in these tests.
func block(sentences ...ast.Sentence) *value.Script {
	return value.NewScript(&ast.Script{Sentences: sentences}, "")
}
