package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/katta/trace"
)

// Cpu is the simulation context for the Katta processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Strict  bool // Set to report decode errors instead of ignoring them.

	Program *Program // Loaded program.

	Ip       int      // Index of the next instruction, IP_HALT when halted.
	Return   int      // Saved return pointer, IP_HALT when unset.
	Register [4]int32 // Register bank, A to D.
	Cond     bool     // Condition flag.
	Memory   Memory   // Data memory.
	Stack    Stack    // Stack memory.

	Steps int // Executed instructions since reset.

	trace trace.Sink
}

// NewCpu creates a new CPU, emitting its bus trace to sink.
func NewCpu(sink trace.Sink) (cpu *Cpu) {
	if sink == nil {
		sink = trace.Discard
	}

	cpu = &Cpu{
		Program: &Program{},
		Ip:      IP_HALT,
		Return:  IP_HALT,
		Memory:  Memory{Trace: sink},
		Stack:   Stack{Trace: sink},
		trace:   sink,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "ip", cpu.ipString(cpu.Ip))
	text += fmt.Sprintf("% 5s: %v\n", "ret", cpu.ipString(cpu.Return))
	text += fmt.Sprintf("% 5s: %v\n", "cond", cpu.Cond)
	for n, name := range RegisterName {
		val := uint32(cpu.Register[n])
		text += fmt.Sprintf("% 5s: %04X_%04X\n", name, val>>16, val&0xffff)
	}

	top, ok := cpu.Stack.Top()
	if ok {
		text += fmt.Sprintf("% 5s: %08x\n", "sp", top)
	} else {
		text += fmt.Sprintf("% 5s: --------\n", "sp")
	}

	return
}

func (cpu *Cpu) ipString(ip int) string {
	inst, ok := cpu.Program.Fetch(ip)
	if !ok {
		return "halt"
	}

	return fmt.Sprintf("%08x", inst.Addr)
}

// Reset the CPU state and start the program from its first instruction.
func (cpu *Cpu) Reset(prog *Program) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	if prog == nil {
		prog = &Program{}
	}

	cpu.Program = prog
	clear(cpu.Register[:])
	cpu.Cond = false
	cpu.Memory.Reset()
	cpu.Stack.Reset()
	cpu.Return = IP_HALT
	cpu.Steps = 0

	cpu.Ip = IP_HALT
	if len(prog.Instructions) > 0 {
		cpu.Ip = 0
	}
}

// Halted returns true if there is no next instruction.
func (cpu *Cpu) Halted() bool {
	_, ok := cpu.Program.Fetch(cpu.Ip)
	return !ok
}

// Tick executes a single instruction.
// Returns ErrIpEmpty once the cpu has halted.
func (cpu *Cpu) Tick() (err error) {
	inst, ok := cpu.Program.Fetch(cpu.Ip)
	if !ok {
		cpu.Ip = IP_HALT
		err = ErrIpEmpty
		return
	}

	err = cpu.Execute(inst)

	return
}

func (cpu *Cpu) emit(kind trace.Kind, addr uint32, desc string) {
	if cpu.trace == nil {
		return
	}

	cpu.trace.Emit(trace.Record{Kind: kind, Addr: addr, Desc: desc})
}

// jump resolves a label to a program pointer.
// A label that never got an instruction halts the cpu.
func (cpu *Cpu) jump(name string) (ip int, err error) {
	if len(name) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	label, ok := cpu.Program.Label(name)
	if !ok {
		err = ErrLabelMissing(name)
		return
	}

	ip = label.Index
	return
}

// compare evaluates a SIT comparison.
func compare(a int32, op string, b int32) (cond bool, err error) {
	switch op {
	case "=":
		cond = a == b
	case "<":
		cond = a < b
	case ">":
		cond = a > b
	default:
		err = ErrCompareInvalid
	}

	return
}

// Execute executes the instruction at the program pointer.
//
// Decode problems never stop execution: the instruction completes with
// zero values, and the problem is only returned if Strict is set.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err == nil {
			return
		}
		if cpu.Strict {
			err = errors.Join(ErrOpcode(inst), err)
		} else {
			if cpu.Verbose {
				log.Printf("%08x: %v: %v", inst.Addr, inst.Text, err)
			}
			err = nil
		}
	}()

	if cpu.Verbose {
		log.Printf("%08x: %v", inst.Addr, inst.Text)
	}

	op := OP_INVALID
	words := inst.Words()
	if len(words) > 0 {
		op = OpcodeOf(words[0])
		words = words[1:]
	}

	arg := func(n int) string {
		if n < len(words) {
			return words[n]
		}
		return ""
	}

	// fail keeps the first decode problem.
	fail := func(e error) {
		if err == nil {
			err = e
		}
	}

	next_ip := cpu.Ip + 1

	if op != OP_INVALID {
		cpu.Steps++
		cpu.emit(trace.KIND_EXEC, inst.Addr, op.Desc())
	}

	switch op {
	case OP_MOV, OP_ADD, OP_SUB:
		value, e := cpu.Operand(arg(1))
		fail(e)
		input, e := cpu.GetRegister(arg(0))
		fail(e)
		switch op {
		case OP_MOV:
			input = value
		case OP_ADD:
			input += value
		case OP_SUB:
			input -= value
		}
		fail(cpu.SetRegister(arg(0), input))
	case OP_STR:
		addr, e := cpu.EffectiveAddress(arg(0))
		fail(e)
		value, e := cpu.Operand(arg(1))
		fail(e)
		cpu.Memory.Write(addr, value)
	case OP_SIT:
		a, e := cpu.Operand(arg(0))
		fail(e)
		b, e := cpu.Operand(arg(2))
		fail(e)
		cond, e := compare(a, arg(1), b)
		if e != nil {
			fail(e)
		} else {
			cpu.Cond = cond
		}
	case OP_GOF:
		if cpu.Cond {
			ip, e := cpu.jump(arg(0))
			if e != nil {
				fail(e)
			} else {
				next_ip = ip
			}
		}
	case OP_JMP:
		ip, e := cpu.jump(arg(0))
		if e != nil {
			fail(e)
		} else {
			next_ip = ip
		}
	case OP_JMR:
		cpu.Return = cpu.Ip + 1
		ip, e := cpu.jump(arg(0))
		if e != nil {
			fail(e)
		} else {
			next_ip = ip
		}
	case OP_RET:
		next_ip = cpu.Return
	case OP_LIF:
		if !cpu.Cond {
			next_ip = cpu.Ip + 2
		}
	case OP_HLT:
		next_ip = IP_HALT
	case OP_PSH:
		value, e := cpu.GetRegister(arg(0))
		fail(e)
		cpu.Stack.Push(value)
	case OP_POP:
		value, _ := cpu.Stack.Pop()
		fail(cpu.SetRegister(arg(0), value))
	default:
		fail(ErrOpcodeInvalid)
	}

	if !op.KeepsCond() {
		cpu.Cond = false
	}

	if _, ok := cpu.Program.Fetch(next_ip); !ok {
		next_ip = IP_HALT
	}
	cpu.Ip = next_ip

	return
}
