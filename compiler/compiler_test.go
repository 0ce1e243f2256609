package compiler

import (
	"testing"

	"github.com/helena-lang/helena/ast"
	"github.com/helena-lang/helena/code"
	"github.com/helena-lang/helena/value"
)

func literalWord(s string) ast.Word {
	return ast.Word{Morphemes: []ast.Morpheme{{Kind: ast.MorphemeLiteral, Literal: s}}}
}

func TestCompileSingleLiteralSentence(t *testing.T) {
	script := &ast.Script{Sentences: []ast.Sentence{
		{Words: []ast.Word{literalWord("set"), literalWord("x"), literalWord("1")}},
	}}

	program, err := CompileScript(script)
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	if len(program.Constants) != 3 {
		t.Fatalf("len(Constants) = %d, want 3", len(program.Constants))
	}
	for i, want := range []string{"set", "x", "1"} {
		s, ok := program.Constants[i].(*value.String)
		if !ok || s.Value != want {
			t.Fatalf("Constants[%d] = %#v, want %q", i, program.Constants[i], want)
		}
	}

	last, _ := code.Lookup(byte(code.EvaluateSentence))
	if last == nil {
		t.Fatalf("EvaluateSentence not defined")
	}
}

func TestCompileEmptyScriptPushesNil(t *testing.T) {
	program, err := CompileScript(&ast.Script{})
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	if len(program.Instructions) == 0 {
		t.Fatalf("expected at least one instruction for an empty script")
	}
	op := code.Opcode(program.Instructions[0])
	if op != code.PushNil {
		t.Fatalf("first opcode = %v, want PushNil", op)
	}
}

func TestCompileInvalidWordErrors(t *testing.T) {
	script := &ast.Script{Sentences: []ast.Sentence{
		{Words: []ast.Word{{Morphemes: []ast.Morpheme{
			{Kind: ast.MorphemeTuple},
			{Kind: ast.MorphemeLiteral, Literal: "x"},
		}}}},
	}}
	if _, err := CompileScript(script); err == nil {
		t.Fatalf("expected compile error for an invalid word")
	}
}

func TestCompileSubstitutionEmitsResolveValue(t *testing.T) {
	word := ast.Word{Morphemes: []ast.Morpheme{
		{Kind: ast.MorphemeSubstituteNext, Literal: "x", Levels: 1},
	}}
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{word}}}}

	program, err := CompileScript(script)
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	found := false
	ins := program.Instructions
	for i := 0; i < len(ins); {
		def, err := code.Lookup(ins[i])
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if def.Name == "ResolveValue" {
			found = true
		}
		_, read := code.ReadOperands(def, ins[i+1:])
		i += read + 1
	}
	if !found {
		t.Fatalf("expected a ResolveValue instruction in %s", ins.String())
	}
}

func findOpcode(ins code.Instructions, name string) bool {
	for i := 0; i < len(ins); {
		def, err := code.Lookup(ins[i])
		if err != nil {
			return false
		}
		if def.Name == name {
			return true
		}
		_, read := code.ReadOperands(def, ins[i+1:])
		i += read + 1
	}
	return false
}

func qualifiedWord(selector ast.Morpheme) ast.Word {
	return ast.Word{Morphemes: []ast.Morpheme{
		{Kind: ast.MorphemeSubstituteNext, Literal: "v", Levels: 1},
		selector,
	}}
}

func TestCompileIndexedSelectorEmitsSelectIndex(t *testing.T) {
	word := qualifiedWord(ast.Morpheme{
		Kind:     ast.MorphemeTuple,
		Selector: ast.SelectorIndexed,
		Elements: []ast.Word{literalWord("0")},
	})
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{word}}}}

	program, err := CompileScript(script)
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	if !findOpcode(program.Instructions, "SelectIndex") {
		t.Fatalf("expected a SelectIndex instruction in %s", program.Instructions.String())
	}
	if findOpcode(program.Instructions, "SelectKeys") {
		t.Fatalf("did not expect a SelectKeys instruction in %s", program.Instructions.String())
	}
}

func TestCompileKeyedSelectorEmitsSelectKeys(t *testing.T) {
	word := qualifiedWord(ast.Morpheme{
		Kind:     ast.MorphemeTuple,
		Selector: ast.SelectorKeyed,
		Elements: []ast.Word{literalWord("key")},
	})
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{word}}}}

	program, err := CompileScript(script)
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	if !findOpcode(program.Instructions, "SelectKeys") {
		t.Fatalf("expected a SelectKeys instruction in %s", program.Instructions.String())
	}
}

func TestCompileGenericSelectorEmitsSelectRules(t *testing.T) {
	rule := ast.Word{Morphemes: []ast.Morpheme{{
		Kind:     ast.MorphemeTuple,
		Elements: []ast.Word{literalWord("filter"), literalWord("even")},
	}}}
	word := qualifiedWord(ast.Morpheme{
		Kind:     ast.MorphemeTuple,
		Selector: ast.SelectorGeneric,
		Elements: []ast.Word{rule},
	})
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{word}}}}

	program, err := CompileScript(script)
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	if !findOpcode(program.Instructions, "SelectRules") {
		t.Fatalf("expected a SelectRules instruction in %s", program.Instructions.String())
	}
}

func TestCompileIndexedSelectorRejectsMultipleIndices(t *testing.T) {
	word := qualifiedWord(ast.Morpheme{
		Kind:     ast.MorphemeTuple,
		Selector: ast.SelectorIndexed,
		Elements: []ast.Word{literalWord("0"), literalWord("1")},
	})
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{word}}}}

	if _, err := CompileScript(script); err == nil {
		t.Fatalf("expected an error for a multi-index indexed selector")
	}
}
