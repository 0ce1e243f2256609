// Package code defines the bytecode instruction set produced by the
// compiler and consumed by the process executor.
//
// Unlike a conventional stack VM's opcodes, Helena's instruction set has no
// notion of a symbol table, a call frame, or a jump target: control flow
// (loops, conditionals, function calls) is implemented entirely as commands
// dispatched at runtime against a scope, not as compiled branches. What the
// bytecode here encodes instead is the mechanical half of script evaluation
// that spec.md §4 assigns to the compiler: building the value a word
// ultimately substitutes to out of its morphemes (the "frame" opcodes),
// resolving variables/commands by name, applying selector chains, and
// folding a sentence's words into a command invocation.
package code

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Instructions is a slice of bytes representing a sequence of instructions.
type Instructions []byte

// Opcode represents a single bytecode instruction used by the compiler and
// the process executor.
type Opcode byte

// Bytecode instruction opcodes.
//
// Each opcode represents a specific operation the executor can run.
// Instructions may have zero or more operands encoded after the opcode byte.
const (
	// PushConstant pushes a constant from the program's constant pool onto
	// the value stack.
	//
	// Operands: [constant_index:2]
	PushConstant Opcode = iota

	// PushNil pushes the nil value onto the value stack.
	PushNil

	// OpenFrame starts a new word-accumulation frame on the executor's
	// frame stack, into which subsequent morpheme results are pushed.
	OpenFrame

	// CloseFrameAsTuple closes the current frame, collecting everything
	// pushed into it since the matching OpenFrame into a Tuple value that
	// is then pushed onto the value stack.
	CloseFrameAsTuple

	// CloseFrameAsString closes the current frame, concatenating the
	// Display of everything pushed into it since the matching OpenFrame
	// into a single String value pushed onto the value stack.
	CloseFrameAsString

	// CloseFrameAsList closes the current frame, collecting everything
	// pushed into it since the matching OpenFrame into a List value pushed
	// onto the value stack.
	CloseFrameAsList

	// CloseFrameDiscard closes the current frame without producing a
	// value, discarding whatever had accumulated in it.
	CloseFrameDiscard

	// ResolveValue pops a value interpreted as a variable name off the
	// value stack, resolves it against the current scope, and pushes the
	// resulting value.
	ResolveValue

	// ResolveCommand pops a value interpreted as a command name off the
	// value stack and pushes back a Command value bound to that name in
	// the current scope. The compiler in this module does not emit it.
	ResolveCommand

	// SelectIndex pops an index value and a source value off the stack
	// and pushes the result of indexed selection.
	SelectIndex

	// SelectKeys pops a key-count operand's worth of key values followed
	// by a source value off the stack and pushes the result of keyed
	// selection.
	//
	// Operands: [key_count:1]
	SelectKeys

	// SelectRules pops a rule-count operand's worth of rule values
	// (each itself a Tuple of a name and its arguments) followed by a
	// source value off the stack and pushes the result of generic
	// selection.
	//
	// Operands: [rule_count:1]
	SelectRules

	// SubstituteResult applies the pending substitution levels (`$`,
	// `$$`, ...) to the value on top of the stack, re-resolving it as a
	// variable name that many additional times.
	//
	// Operands: [levels:1]
	SubstituteResult

	// ExpandValue marks the value on top of the stack for expansion into
	// its caller's argument list rather than being passed as one argument
	// (the `$*name` / tuple-spread form).
	ExpandValue

	// EvaluateSentence pops a word-count operand's worth of words off
	// the value stack (the already-substituted words of one Sentence, in
	// order) and evaluates them as a single command invocation. An OK
	// result pushes its carried Value back onto the stack so substitution
	// and sentence evaluation share one opcode; a YIELD suspends the
	// program; any other result code aborts the running program
	// immediately, propagating unchanged.
	//
	// Operands: [word_count:2]
	EvaluateSentence

	// Pop discards the top value of the value stack (used between
	// sentences of a script, keeping only the last sentence's result).
	Pop
)

// Definition represents an instruction definition with its name and operand widths.
type Definition struct {
	// Name is the instruction's mnemonic.
	Name string

	// OperandWidths specifies the number of bytes each operand of an
	// instruction occupies.
	OperandWidths []int
}

// definitions is a map of opcodes to their definitions.
var definitions = map[Opcode]*Definition{
	PushConstant:       {"PushConstant", []int{2}},
	PushNil:            {"PushNil", []int{}},
	OpenFrame:          {"OpenFrame", []int{}},
	CloseFrameAsTuple:  {"CloseFrameAsTuple", []int{}},
	CloseFrameAsString: {"CloseFrameAsString", []int{}},
	CloseFrameAsList:   {"CloseFrameAsList", []int{}},
	CloseFrameDiscard:  {"CloseFrameDiscard", []int{}},
	ResolveValue:       {"ResolveValue", []int{}},
	ResolveCommand:     {"ResolveCommand", []int{}},
	SelectIndex:        {"SelectIndex", []int{}},
	SelectKeys:         {"SelectKeys", []int{1}},
	SelectRules:        {"SelectRules", []int{1}},
	SubstituteResult:   {"SubstituteResult", []int{1}},
	ExpandValue:        {"ExpandValue", []int{}},
	EvaluateSentence:   {"EvaluateSentence", []int{2}},
	Pop:                {"Pop", []int{}},
}

// Lookup returns the [Definition] for the given [Opcode].
func Lookup(op byte) (*Definition, error) {
	def, ok := definitions[Opcode(op)]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

// Make creates a byte slice representing an instruction using the provided opcode and operands.
func Make(op Opcode, operands ...int) []byte {
	def, ok := definitions[op]
	if !ok {
		return []byte{}
	}
	instructionLen := 1
	for _, w := range def.OperandWidths {
		instructionLen += w
	}
	instruction := make([]byte, instructionLen)
	instruction[0] = byte(op)
	offset := 1
	for i, operand := range operands {
		width := def.OperandWidths[i]
		switch width {
		case 1:
			instruction[offset] = byte(operand)
		case 2:
			binary.BigEndian.PutUint16(instruction[offset:], uint16(operand))
		}
		offset += width
	}
	return instruction
}

// String provides a human-readable string representation of the [Instructions], formatted with opcodes and operands.
func (ins Instructions) String() string {
	var out strings.Builder

	i := 0
	for i < len(ins) {
		def, err := Lookup(ins[i])
		if err != nil {
			_, _ = fmt.Fprintf(&out, "ERROR: %s\n", err)
			i++
			continue
		}
		operands, read := ReadOperands(def, ins[i+1:])
		_, _ = fmt.Fprintf(&out, "%04d %s\n", i, ins.fmtInstruction(def, operands))
		i += read + 1
	}

	return out.String()
}

// fmtInstruction formats an instruction with its operands into a human-readable string representation.
func (ins Instructions) fmtInstruction(def *Definition, operands []int) string {
	operandCount := len(def.OperandWidths)

	if len(operands) != operandCount {
		return fmt.Sprintf("ERROR: operand len %d does not match defined %d\n", len(operands), operandCount)
	}

	switch operandCount {
	case 0:
		return def.Name
	case 1:
		return fmt.Sprintf("%s %d", def.Name, operands[0])
	case 2:
		return fmt.Sprintf("%s %d %d", def.Name, operands[0], operands[1])
	}
	return fmt.Sprintf("ERROR: unhandled operandCount for %s\n", def.Name)
}

// ReadOperands decodes operands from the specified instructions based
// on the definition and returns them with the total bytes read.
func ReadOperands(def *Definition, ins Instructions) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0

	for i, width := range def.OperandWidths {
		switch width {
		case 1:
			operands[i] = int(ReadUint8(ins[offset:]))
		case 2:
			operands[i] = int(ReadUint16(ins[offset:]))
		}
		offset += width
	}
	return operands, offset
}

// ReadUint16 decodes the first two bytes of the provided [Instructions] as uint16 in big-endian format.
func ReadUint16(ins Instructions) uint16 {
	return binary.BigEndian.Uint16(ins)
}

// ReadUint8 extracts the first byte from the provided [Instructions] slice and returns it as uint8.
func ReadUint8(ins Instructions) uint8 { return ins[0] }
