// Package cliscript is the minimal textual front end cmd/helena's REPL and
// file runner use to drive the engine interactively. Helena's own surface
// syntax and tokenizer/parser are out of scope for this module (ast's
// package doc references spec.md §1 on this point): a real Helena parser
// is something an embedding host supplies. cliscript instead reads one
// sentence per line, splitting on whitespace into bareword/number/string
// tokens, and builds the ast.Script the engine already knows how to run.
// It exists purely so the CLI has something to type at, not as a
// specification of Helena's eventual concrete syntax.
package cliscript

import (
	"strconv"
	"strings"

	"github.com/helena-lang/helena/ast"
	"github.com/helena-lang/helena/value"
)

// ParseLine builds a single pre-substituted Sentence from one line of
// whitespace-separated tokens; whitespace between double quotes does not
// split a token. A token parses, in order, as an Integer, a Real, the bare
// words "true"/"false" as a Boolean, a double-quoted string, or else a
// bareword String (used both for command names and plain string arguments).
func ParseLine(line string) ast.Sentence {
	var fields []string
	start, inQuote := -1, false
	for i, r := range line {
		if r == '"' {
			inQuote = !inQuote
		}
		if sep := (r == ' ' || r == '\t') && !inQuote; sep && start >= 0 {
			fields, start = append(fields, line[start:i]), -1
		} else if !sep && start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, line[start:])
	}
	words := make([]ast.Word, 0, len(fields))
	for _, f := range fields {
		words = append(words, ast.Word{Value: tokenValue(f)})
	}
	return ast.Sentence{Words: words}
}

// ParseScript builds a multi-sentence Script from one sentence per
// non-empty, non-comment ("#"-prefixed) line of src.
func ParseScript(src string) *value.Script {
	var sentences []ast.Sentence
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		sentences = append(sentences, ParseLine(trimmed))
	}
	return value.NewScript(&ast.Script{Sentences: sentences, Source: src}, src)
}

func tokenValue(f string) value.Value {
	if i, err := strconv.ParseInt(f, 10, 64); err == nil {
		return value.NewInteger(i)
	}
	if r, err := strconv.ParseFloat(f, 64); err == nil {
		return value.NewReal(r)
	}
	switch f {
	case "true":
		return value.NewBoolean(true)
	case "false":
		return value.NewBoolean(false)
	}
	if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
		return value.NewString(f[1 : len(f)-1])
	}
	return value.NewString(f)
}
