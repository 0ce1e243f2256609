// Package result implements Helena's result-code protocol (spec.md §6):
// every command invocation and every sentence evaluation produces a Result
// carrying a Code plus an optional payload Value, instead of raising an
// exception for anything short of a host-level failure.
package result

import (
	"fmt"
	"strings"

	"github.com/helena-lang/helena/value"
)

// Code is the result code a Result carries.
type Code int

const (
	// OK is the normal, successful completion code.
	OK Code = iota
	// RETURN requests that the enclosing proc/closure/macro body stop
	// executing and return Value to its caller.
	RETURN
	// YIELD suspends the current process, handing Value to the host; the
	// process resumes later via YieldBack.
	YIELD
	// ERROR signals a failure; Value carries a human-readable message and
	// Data may carry a StackLevel trace.
	ERROR
	// BREAK requests that the nearest enclosing loop stop iterating.
	BREAK
	// CONTINUE requests that the nearest enclosing loop skip to its next
	// iteration.
	CONTINUE
	// CUSTOM is an extension point for host- or command-defined codes that
	// don't fit OK/RETURN/YIELD/ERROR/BREAK/CONTINUE; Data identifies which.
	CUSTOM
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case RETURN:
		return "RETURN"
	case YIELD:
		return "YIELD"
	case ERROR:
		return "ERROR"
	case BREAK:
		return "BREAK"
	case CONTINUE:
		return "CONTINUE"
	case CUSTOM:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// StackLevel is one frame of an error's call trace, attached to an ERROR
// Result's Data when the source producing it can identify its position.
type StackLevel struct {
	// Frame names the command or scope the error propagated through.
	Frame string
	// Source is the script source text the frame was evaluating, if known.
	Source string
	// Position is a source offset or line:column description, if known.
	Position string
}

func (s StackLevel) String() string {
	if s.Position != "" {
		return fmt.Sprintf("%s (%s)", s.Frame, s.Position)
	}
	return s.Frame
}

// Result is the outcome of evaluating a sentence or running a command.
type Result struct {
	Code  Code
	Value value.Value
	// Data carries code-specific auxiliary payload: a []StackLevel trace
	// for ERROR, a CUSTOM code identifier for CUSTOM, an
	// *engine.Continuation for a YIELD raised inside a nested command, or
	// nil otherwise.
	Data any
}

// Ok builds an OK result carrying v (nil becomes value.NewNil()).
func Ok(v value.Value) Result {
	if v == nil {
		v = value.NewNil()
	}
	return Result{Code: OK, Value: v}
}

// Return builds a RETURN result carrying v.
func Return(v value.Value) Result {
	if v == nil {
		v = value.NewNil()
	}
	return Result{Code: RETURN, Value: v}
}

// Yield builds a YIELD result carrying v as the value handed to the host.
func Yield(v value.Value) Result {
	if v == nil {
		v = value.NewNil()
	}
	return Result{Code: YIELD, Value: v}
}

// Break builds a BREAK result.
func Break() Result { return Result{Code: BREAK, Value: value.NewNil()} }

// Continue builds a CONTINUE result.
func Continue() Result { return Result{Code: CONTINUE, Value: value.NewNil()} }

// Error builds an ERROR result from a message, with no stack trace yet.
func Error(message string) Result {
	return Result{Code: ERROR, Value: value.NewString(message)}
}

// Errorf builds an ERROR result from a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Sprintf(format, args...))
}

// WithLevel returns a copy of r with level appended to its stack trace;
// only meaningful for ERROR results, but harmless otherwise.
func (r Result) WithLevel(level StackLevel) Result {
	levels, _ := r.Data.([]StackLevel)
	levels = append(levels, level)
	r.Data = levels
	return r
}

// Levels returns r's stack trace, if any.
func (r Result) Levels() []StackLevel {
	levels, _ := r.Data.([]StackLevel)
	return levels
}

// Message returns r's error message, assuming r.Code == ERROR and
// r.Value is a String (true of every error constructed via Error/Errorf).
func (r Result) Message() string {
	if s, ok := r.Value.(*value.String); ok {
		return s.Value
	}
	return r.Value.Display()
}

// Custom builds a CUSTOM result identified by code, carrying v.
func Custom(code any, v value.Value) Result {
	if v == nil {
		v = value.NewNil()
	}
	return Result{Code: CUSTOM, Value: v, Data: code}
}

// FormatTrace renders r's stack trace (if any) as a human-readable,
// one-frame-per-line string, innermost frame first.
func FormatTrace(r Result) string {
	levels := r.Levels()
	if len(levels) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range levels {
		b.WriteString("  at ")
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
