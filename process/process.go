// Package process implements the Executor described in spec.md §5: a
// fetch-decode loop over a code.Program that can suspend on a YIELD deep
// inside an arbitrarily nested command invocation and resume later from
// exactly that point — without goroutines.
//
// The trick, grounded on the teacher's vm.VM (dr8co-kong/yourfavoritedev's
// fetch-decode-execute loop over frames), is that a VM's frame stack is
// already just data sitting in struct fields; "suspending" is nothing more
// than returning from Run before that data is torn down, and "resuming" is
// calling Run again. The one addition beyond a conventional VM is pending:
// when a command's own (possibly deeply nested) Process yields, this
// Process remembers which one via an engine.Continuation instead of
// unwinding it, and YieldBack threads the host's resume value down to
// whichever Process actually suspended.
package process

import (
	"github.com/helena-lang/helena/code"
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/value"
)

// Process runs one code.Program against one engine.Scope.
type Process struct {
	program *code.Program
	scope   engine.Scope

	ip     int
	stack  []value.Value
	frames [][]value.Value

	// pending is non-nil exactly when this Process is suspended on a
	// YIELD raised by a command it invoked (or is itself the suspension
	// point, when pending.Process == this Process).
	pending *engine.Continuation
}

// New returns a Process ready to run program against scope.
func New(program *code.Program, scope engine.Scope) *Process {
	return &Process{program: program, scope: scope}
}

// spreadMarker tags a value popped by EvaluateSentence for splicing its
// Tuple elements into the invocation's argument list rather than being
// passed as a single argument (the `$*name` expansion form).
type spreadMarker struct{ value.Value }

// Run implements engine.Process.
func (p *Process) Run() result.Result {
	if p.pending != nil {
		return result.Yield(value.NewNil())
	}
	return p.loop()
}

// YieldBack implements engine.Process.
func (p *Process) YieldBack(v value.Value) result.Result {
	if p.pending == nil {
		return result.Error("process is not suspended")
	}
	cont := p.pending
	var res result.Result
	if cont.Process == p {
		// This Process is itself the suspension point: v becomes the
		// value the yielding expression resolves to.
		p.pending = nil
		p.push(v)
		return p.loop()
	}
	res = cont.Process.YieldBack(v)
	return p.settle(cont, res)
}

// loop runs the fetch-decode-execute cycle from the current ip.
func (p *Process) loop() result.Result {
	ins := p.program.Instructions
	for p.ip < len(ins) {
		op := code.Opcode(ins[p.ip])
		def, err := code.Lookup(byte(op))
		if err != nil {
			return result.Error(err.Error())
		}
		operands, read := code.ReadOperands(def, ins[p.ip+1:])
		p.ip += 1 + read

		switch op {
		case code.PushConstant:
			p.push(p.program.Constants[operands[0]])

		case code.PushNil:
			p.push(value.NewNil())

		case code.OpenFrame:
			p.frames = append(p.frames, []value.Value{})

		case code.CloseFrameAsTuple:
			p.push(value.NewTuple(p.closeFrame()))

		case code.CloseFrameAsList:
			p.push(value.NewList(p.closeFrame()))

		case code.CloseFrameAsString:
			elems := p.closeFrame()
			s := ""
			for _, e := range elems {
				s += e.Display()
			}
			p.push(value.NewString(s))

		case code.CloseFrameDiscard:
			p.closeFrame()

		case code.ResolveValue:
			name := p.pop()
			v, ok := p.scope.ResolveVariable(name.Display())
			if !ok {
				return result.Errorf("cannot resolve variable %q", name.Display())
			}
			p.push(v)

		case code.ResolveCommand:
			name := p.pop()
			cmd, ok := p.scope.ResolveCommand(name)
			if !ok {
				return result.Errorf("cannot resolve command %q", name.Display())
			}
			p.push(value.NewCommand(cmd, name.Display()))

		case code.SelectIndex:
			idx := p.pop()
			src := p.pop()
			v, err := selectIndex(src, idx)
			if err != nil {
				return result.Error(err.Error())
			}
			p.push(v)

		case code.SelectKeys:
			n := operands[0]
			keys := make([]string, n)
			for i := n - 1; i >= 0; i-- {
				keys[i] = p.pop().Display()
			}
			src := p.pop()
			v, err := selectKeys(src, keys)
			if err != nil {
				return result.Error(err.Error())
			}
			p.push(v)

		case code.SelectRules:
			n := operands[0]
			rules := make([]value.Value, n)
			for i := n - 1; i >= 0; i-- {
				rules[i] = p.pop()
			}
			src := p.pop()
			v, err := selectRules(src, rules)
			if err != nil {
				return result.Error(err.Error())
			}
			p.push(v)

		case code.SubstituteResult:
			levels := operands[0]
			v := p.pop()
			for i := 0; i < levels; i++ {
				next, ok := p.scope.ResolveVariable(v.Display())
				if !ok {
					return result.Errorf("cannot resolve variable %q", v.Display())
				}
				v = next
			}
			p.push(v)

		case code.ExpandValue:
			v := p.pop()
			p.push(&spreadMarker{v})

		case code.EvaluateSentence:
			res, cont := p.evaluateSentence(operands[0])
			if cont != nil {
				p.pending = cont
				return res
			}
			if res.Code != result.OK {
				return res
			}
			p.push(res.Value)

		case code.Pop:
			p.pop()

		default:
			return result.Errorf("unhandled opcode %s", def.Name)
		}
	}

	if len(p.stack) == 0 {
		return result.Ok(nil)
	}
	return result.Ok(p.stack[len(p.stack)-1])
}

// evaluateSentence pops the word_count values EvaluateSentence's operand
// names, resolves the command named by the first, and executes it. When
// the command yields, it returns a Continuation instead of a Result so the
// caller can suspend instead of unwinding.
func (p *Process) evaluateSentence(wordCount int) (result.Result, *engine.Continuation) {
	raw := make([]value.Value, wordCount)
	for i := wordCount - 1; i >= 0; i-- {
		raw[i] = p.pop()
	}

	var args []value.Value
	for _, w := range raw {
		if sm, ok := w.(*spreadMarker); ok {
			if tup, ok := sm.Value.(*value.Tuple); ok {
				args = append(args, tup.Elements...)
				continue
			}
			args = append(args, sm.Value)
			continue
		}
		args = append(args, w)
	}

	if len(args) == 0 {
		return result.Ok(nil), nil
	}

	cmd, ok := p.scope.ResolveCommand(args[0])
	if !ok {
		return result.Errorf("unknown command %q", args[0].Display()), nil
	}

	res := cmd.Execute(args, p.scope)
	if res.Code == result.YIELD {
		if cont, ok := res.Data.(*engine.Continuation); ok {
			return res, cont
		}
		// The command itself has no sub-process to resume; this Process
		// is the one that must be resumed via YieldBack.
		return res, &engine.Continuation{Process: p}
	}
	return res, nil
}

// settle folds the Result of a resumed nested Continuation back into this
// Process, continuing the fetch-decode loop once the nesting is resolved.
func (p *Process) settle(cont *engine.Continuation, res result.Result) result.Result {
	if res.Code == result.YIELD {
		// Still suspended further down; keep waiting on the same chain.
		p.pending = cont
		return res
	}
	p.pending = nil

	if cont.Callback == nil {
		if res.Code != result.OK {
			return res
		}
		p.push(res.Value)
		return p.loop()
	}

	final, next := cont.Callback(res)
	if next != nil {
		p.pending = next
		return result.Yield(value.NewNil())
	}
	if final.Code != result.OK {
		return final
	}
	p.push(final.Value)
	return p.loop()
}

func (p *Process) push(v value.Value) {
	if n := len(p.frames); n > 0 {
		p.frames[n-1] = append(p.frames[n-1], v)
		return
	}
	p.stack = append(p.stack, v)
}

func (p *Process) pop() value.Value {
	if n := len(p.frames); n > 0 {
		frame := p.frames[n-1]
		v := frame[len(frame)-1]
		p.frames[n-1] = frame[:len(frame)-1]
		return v
	}
	n := len(p.stack)
	v := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return v
}

func (p *Process) closeFrame() []value.Value {
	n := len(p.frames)
	elems := p.frames[n-1]
	p.frames = p.frames[:n-1]
	return elems
}
