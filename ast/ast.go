// Package ast defines the AST contract the core evaluation engine consumes
// from an external tokenizer/parser (out of scope for this module — see
// spec.md §1). A Script is a list of Sentences; a Sentence is a list of
// Words (or pre-substituted Values); a Word is a list of Morphemes.
//
// ast is intentionally independent of the value package: a pre-substituted
// Word or a Literal morpheme carries its payload as an opaque `any`, which
// the compiler type-asserts back to value.Value when it emits PUSH_CONSTANT.
// That keeps the AST contract free of a dependency on the runtime value
// representation, matching how an external parser would produce this tree
// without linking against the engine's internals.
package ast

// Script is an ordered list of Sentences.
type Script struct {
	Sentences []Sentence

	// Source is the original text the script was parsed from, if any.
	Source string
}

// Sentence is one command invocation at the source level: an ordered list
// of Words. A Sentence with zero Words is legal: it compiles to an
// evaluation of zero words, which calls no command and yields nil.
type Sentence struct {
	Words []Word
}

// WordType classifies a Word by the deterministic decision the
// SyntaxChecker (see checker.go) applies to its morpheme sequence.
type WordType int

const (
	// WordRoot is a single literal, tuple, block or string morpheme
	// standing alone (or a pre-substituted Word).
	WordRoot WordType = iota
	// WordCompound is multiple morphemes joined into one string-valued word.
	WordCompound
	// WordSubstitution is a single substitution (command/variable)
	// morpheme, producing a non-string value; with selector suffixes the
	// word is WordQualified instead.
	WordSubstitution
	// WordQualified is a substitution followed by one or more selector
	// suffixes that should be folded into a Qualified value.
	WordQualified
	// WordIgnored is a comment morpheme contributing nothing to the script.
	WordIgnored
	// WordInvalid is a morpheme sequence the checker could not classify.
	WordInvalid
)

func (t WordType) String() string {
	switch t {
	case WordRoot:
		return "ROOT"
	case WordCompound:
		return "COMPOUND"
	case WordSubstitution:
		return "SUBSTITUTION"
	case WordQualified:
		return "QUALIFIED"
	case WordIgnored:
		return "IGNORED"
	case WordInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Word is a sequence of Morphemes, or — when Value is non-nil — an
// already-substituted value supplied directly by the host instead of
// being parsed from source.
type Word struct {
	Morphemes []Morpheme

	// Value holds a pre-substituted payload (opaque; a value.Value at
	// runtime) when the host bypasses parsing for this word entirely.
	Value any
}

// IsPreSubstituted reports whether this Word carries a direct Value
// rather than a Morpheme sequence to compile.
func (w Word) IsPreSubstituted() bool { return w.Value != nil }

// MorphemeKind identifies which case of the morpheme union a Morpheme is.
type MorphemeKind int

const (
	MorphemeLiteral MorphemeKind = iota
	MorphemeTuple
	MorphemeBlock
	MorphemeExpression
	MorphemeString
	MorphemeHereString
	MorphemeTaggedString
	MorphemeLineComment
	MorphemeBlockComment
	MorphemeSubstituteNext
)

func (k MorphemeKind) String() string {
	switch k {
	case MorphemeLiteral:
		return "LITERAL"
	case MorphemeTuple:
		return "TUPLE"
	case MorphemeBlock:
		return "BLOCK"
	case MorphemeExpression:
		return "EXPRESSION"
	case MorphemeString:
		return "STRING"
	case MorphemeHereString:
		return "HERE_STRING"
	case MorphemeTaggedString:
		return "TAGGED_STRING"
	case MorphemeLineComment:
		return "LINE_COMMENT"
	case MorphemeBlockComment:
		return "BLOCK_COMMENT"
	case MorphemeSubstituteNext:
		return "SUBSTITUTE_NEXT"
	default:
		return "UNKNOWN"
	}
}

// Morpheme is one lexical constituent of a Word.
type Morpheme struct {
	Kind MorphemeKind

	// Literal holds the literal text for MorphemeLiteral, MorphemeString,
	// MorphemeHereString and MorphemeTaggedString morphemes.
	Literal string

	// Value holds a pre-evaluated constant payload for MorphemeLiteral
	// morphemes that already carry a typed value (e.g. an integer token);
	// opaque here, a value.Value at runtime. Nil means "use Literal as a
	// string constant".
	Value any

	// Elements holds the nested Words of a MorphemeTuple.
	Elements []Word

	// Script holds the nested Script of a MorphemeBlock.
	Script *Script

	// Expression holds the nested Sentence of a MorphemeExpression
	// (a `[...]` command substitution compiles its inner sentence).
	Expression *Sentence

	// Parts holds the sub-morphemes making up a MorphemeString /
	// MorphemeHereString / MorphemeTaggedString's interpolated pieces.
	Parts []Morpheme

	// Levels is the substitution depth for MorphemeSubstituteNext (`$`,
	// `$$`, ...) and for substitution morphemes embedded in Parts.
	Levels int

	// Expandable marks a leading-tuple expansion (`$*cmd` style); see
	// EXPAND_VALUE in the compiler.
	Expandable bool

	// Selector classifies a MorphemeTuple that stands as a Qualified
	// word's selector suffix (spec.md §4.2): which of Indexed/Keyed/
	// Generic syntax the parser read it as. Ignored when the tuple is an
	// ordinary tuple value rather than a selector suffix; zero value
	// (SelectorKeyed) matches `(k1 k2)` syntax, the common case.
	Selector SelectorKind
}

// SelectorKind distinguishes the three selector syntaxes of spec.md §4.2,
// e.g. `$v[0]` (Indexed), `$v(k1 k2)` (Keyed), `$v->rule(args)` (Generic).
type SelectorKind int

const (
	SelectorKeyed SelectorKind = iota
	SelectorIndexed
	SelectorGeneric
)

func (k SelectorKind) String() string {
	switch k {
	case SelectorKeyed:
		return "KEYED"
	case SelectorIndexed:
		return "INDEXED"
	case SelectorGeneric:
		return "GENERIC"
	default:
		return "UNKNOWN"
	}
}
