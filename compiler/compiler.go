// Package compiler transforms a parsed ast.Script into a code.Program.
//
// Unlike a conventional compiler, this one carries no symbol table: Helena
// resolves every variable and command name dynamically against a
// scope.Scope at execution time (spec.md §4.4), so the compiler's only job
// is mechanical — walking the fixed Script/Sentence/Word/Morpheme shape and
// emitting the frame-accumulation and selection opcodes code.Opcode
// defines, word by word, sentence by sentence.
package compiler

import (
	"fmt"

	"github.com/helena-lang/helena/ast"
	"github.com/helena-lang/helena/code"
	"github.com/helena-lang/helena/value"
)

// Compiler compiles one ast.Script at a time into a code.Program.
type Compiler struct {
	instructions code.Instructions
	constants    []value.Value
}

// New creates an empty Compiler.
func New() *Compiler {
	return &Compiler{}
}

// CompileScript compiles script into a self-contained code.Program.
func CompileScript(script *ast.Script) (*code.Program, error) {
	c := New()
	if err := c.compileScript(script); err != nil {
		return nil, err
	}
	return &code.Program{Instructions: c.instructions, Constants: c.constants}, nil
}

func (c *Compiler) compileScript(script *ast.Script) error {
	for i, sentence := range script.Sentences {
		if i > 0 {
			c.emit(code.Pop)
		}
		if err := c.compileSentence(sentence); err != nil {
			return err
		}
	}
	if len(script.Sentences) == 0 {
		c.emit(code.PushNil)
	}
	return nil
}

func (c *Compiler) compileSentence(sentence ast.Sentence) error {
	wordCount := 0
	for _, w := range sentence.Words {
		wt := ast.ClassifyWord(w)
		if wt == ast.WordIgnored {
			continue
		}
		if wt == ast.WordInvalid {
			return fmt.Errorf("invalid word in sentence")
		}
		if err := c.compileWord(w, wt); err != nil {
			return err
		}
		wordCount++
	}
	c.emit(code.EvaluateSentence, wordCount)
	return nil
}

func (c *Compiler) compileWord(w ast.Word, wt ast.WordType) error {
	if w.IsPreSubstituted() {
		v, ok := w.Value.(value.Value)
		if !ok {
			return fmt.Errorf("pre-substituted word does not carry a value.Value")
		}
		c.emitConstant(v)
		return nil
	}

	switch wt {
	case ast.WordRoot:
		return c.compileMorpheme(w.Morphemes[0])

	case ast.WordCompound:
		c.emit(code.OpenFrame)
		for _, m := range w.Morphemes {
			var err error
			if m.Kind == ast.MorphemeExpression || m.Kind == ast.MorphemeSubstituteNext {
				err = c.compileSubstitution([]ast.Morpheme{m})
			} else {
				err = c.compileMorpheme(m)
			}
			if err != nil {
				return err
			}
		}
		c.emit(code.CloseFrameAsString)
		return nil

	case ast.WordSubstitution:
		return c.compileSubstitution(w.Morphemes)

	case ast.WordQualified:
		if err := c.compileSubstitution(w.Morphemes[:1]); err != nil {
			return err
		}
		for _, m := range w.Morphemes[1:] {
			if err := c.compileSelector(m); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected word type %s", wt)
	}
}

// compileSubstitution compiles the leading substitution morpheme
// morphemes[0]: an EXPRESSION becomes its inline sentence, a
// SUBSTITUTE_NEXT becomes a ResolveValue of its name, and any extra `$`
// levels recorded in Levels add a trailing SubstituteResult.
func (c *Compiler) compileSubstitution(morphemes []ast.Morpheme) error {
	m := morphemes[0]
	switch m.Kind {
	case ast.MorphemeExpression:
		if err := c.compileExpression(m); err != nil {
			return err
		}
	case ast.MorphemeSubstituteNext:
		c.emit(code.OpenFrame)
		c.emitConstant(value.NewString(m.Literal))
		c.emit(code.CloseFrameAsString)
		c.emit(code.ResolveValue)
	default:
		return fmt.Errorf("unexpected substitution morpheme kind %s", m.Kind)
	}
	if m.Levels > 1 {
		c.emit(code.SubstituteResult, m.Levels-1)
	}
	if m.Expandable {
		c.emit(code.ExpandValue)
	}
	return nil
}

// compileExpression compiles a nested `[...]` command substitution: its
// inner Sentence is compiled as its own single-sentence program inline,
// since it shares the enclosing program's constant pool and instruction
// stream rather than needing a separate code.Program.
func (c *Compiler) compileExpression(m ast.Morpheme) error {
	if m.Expression == nil {
		c.emit(code.PushNil)
		return nil
	}
	return c.compileSentence(*m.Expression)
}

// compileSelector emits the opcodes for one tuple-morpheme selector suffix
// of a Qualified word: `[i]` indexed, `(k1 k2)` keyed, or `->rule(args)`
// generic, distinguished by m.Selector (set by the parser per spec.md
// §4.2's three selector syntaxes).
func (c *Compiler) compileSelector(m ast.Morpheme) error {
	if m.Kind != ast.MorphemeTuple {
		return fmt.Errorf("expected tuple morpheme for selector, got %s", m.Kind)
	}

	if m.Selector == ast.SelectorIndexed {
		if len(m.Elements) != 1 {
			return fmt.Errorf("indexed selector takes exactly one index, got %d", len(m.Elements))
		}
		el := m.Elements[0]
		wt := ast.ClassifyWord(el)
		if wt == ast.WordIgnored {
			return fmt.Errorf("indexed selector takes exactly one index, got 0")
		}
		if err := c.compileWord(el, wt); err != nil {
			return err
		}
		c.emit(code.SelectIndex)
		return nil
	}

	n := 0
	for _, el := range m.Elements {
		wt := ast.ClassifyWord(el)
		if wt == ast.WordIgnored {
			continue
		}
		if err := c.compileWord(el, wt); err != nil {
			return err
		}
		n++
	}
	if m.Selector == ast.SelectorGeneric {
		c.emit(code.SelectRules, n)
	} else {
		c.emit(code.SelectKeys, n)
	}
	return nil
}

// compileMorpheme compiles a single morpheme that stands alone as a
// WordRoot (literal, tuple, block, string-like) into code pushing exactly
// one value.
func (c *Compiler) compileMorpheme(m ast.Morpheme) error {
	switch m.Kind {
	case ast.MorphemeLiteral:
		if v, ok := m.Value.(value.Value); ok {
			c.emitConstant(v)
		} else {
			c.emitConstant(value.NewString(m.Literal))
		}
		return nil

	case ast.MorphemeString, ast.MorphemeHereString, ast.MorphemeTaggedString:
		if len(m.Parts) == 0 {
			c.emitConstant(value.NewString(m.Literal))
			return nil
		}
		c.emit(code.OpenFrame)
		for _, p := range m.Parts {
			if err := c.compilePart(p); err != nil {
				return err
			}
		}
		c.emit(code.CloseFrameAsString)
		return nil

	case ast.MorphemeTuple:
		c.emit(code.OpenFrame)
		for _, el := range m.Elements {
			wt := ast.ClassifyWord(el)
			if wt == ast.WordIgnored {
				continue
			}
			if err := c.compileWord(el, wt); err != nil {
				return err
			}
		}
		c.emit(code.CloseFrameAsTuple)
		return nil

	case ast.MorphemeBlock:
		if m.Script == nil {
			c.emitConstant(value.NewScript(&ast.Script{}, ""))
			return nil
		}
		c.emitConstant(value.NewScript(m.Script, m.Script.Source))
		return nil

	default:
		return fmt.Errorf("unexpected standalone morpheme kind %s", m.Kind)
	}
}

// compilePart compiles one interpolated piece of a string-like morpheme:
// either literal text or a nested substitution.
func (c *Compiler) compilePart(p ast.Morpheme) error {
	switch p.Kind {
	case ast.MorphemeLiteral:
		if v, ok := p.Value.(value.Value); ok {
			c.emitConstant(v)
		} else {
			c.emitConstant(value.NewString(p.Literal))
		}
		return nil
	case ast.MorphemeExpression, ast.MorphemeSubstituteNext:
		return c.compileSubstitution([]ast.Morpheme{p})
	default:
		return fmt.Errorf("unexpected string part kind %s", p.Kind)
	}
}

func (c *Compiler) addConstant(v value.Value) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emit(code.PushConstant, c.addConstant(v))
}

func (c *Compiler) emit(op code.Opcode, operands ...int) int {
	ins := code.Make(op, operands...)
	pos := len(c.instructions)
	c.instructions = append(c.instructions, ins...)
	return pos
}
