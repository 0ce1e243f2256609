package ast

// ClassifyWord implements the SyntaxChecker described in spec.md §4.3: a
// deterministic decision over a Word's morpheme sequence, independent of
// any value representation, so it can run before (or without) a compiler.
//
// The rules, in order:
//   - a pre-substituted Word (ast.Word.Value set) is always WordRoot: the
//     host already resolved it, nothing left to classify.
//   - zero morphemes, or a single line/block comment, is WordIgnored.
//   - a comment morpheme in a word of more than one morpheme is WordInvalid.
//   - a single literal/tuple/block/string morpheme is WordRoot.
//   - a single expression or substitute-next morpheme is WordSubstitution.
//   - a substitution morpheme immediately followed by one or more tuple
//     morphemes (selector suffixes) is WordQualified.
//   - any other multi-morpheme mix of literal/string-like morphemes is
//     WordCompound.
//   - anything else (e.g. a tuple/block not standing alone, or a comment
//     mixed with code) is WordInvalid.
func ClassifyWord(w Word) WordType {
	if w.IsPreSubstituted() {
		return WordRoot
	}

	n := len(w.Morphemes)
	if n == 0 {
		return WordIgnored
	}

	if n == 1 {
		switch w.Morphemes[0].Kind {
		case MorphemeLineComment, MorphemeBlockComment:
			return WordIgnored
		case MorphemeLiteral, MorphemeTuple, MorphemeBlock,
			MorphemeString, MorphemeHereString, MorphemeTaggedString:
			return WordRoot
		case MorphemeExpression, MorphemeSubstituteNext:
			return WordSubstitution
		default:
			return WordInvalid
		}
	}

	// Multi-morpheme: comments may never mix with other morphemes.
	for _, m := range w.Morphemes {
		if m.Kind == MorphemeLineComment || m.Kind == MorphemeBlockComment {
			return WordInvalid
		}
	}

	first := w.Morphemes[0]
	if first.Kind == MorphemeExpression || first.Kind == MorphemeSubstituteNext {
		allTuples := true
		for _, m := range w.Morphemes[1:] {
			if m.Kind != MorphemeTuple {
				allTuples = false
				break
			}
		}
		if allTuples {
			return WordQualified
		}
		return WordInvalid
	}

	// A run of literal-like morphemes (string interpolation, bare
	// concatenation) joins into one compound word.
	for _, m := range w.Morphemes {
		switch m.Kind {
		case MorphemeLiteral, MorphemeString, MorphemeHereString,
			MorphemeTaggedString, MorphemeExpression, MorphemeSubstituteNext:
		default:
			return WordInvalid
		}
	}
	return WordCompound
}
