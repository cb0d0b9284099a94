// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"log"

	"github.com/ezrec/katta/cpu"
	"github.com/ezrec/katta/trace"
	"github.com/ezrec/katta/translate"
)

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	Strict    bool         // If set, decode problems stop the emulator.
	StepLimit int          // If non-zero, the maximum instructions to execute.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program   *cpu.Program // Reference to the currently loaded program.
}

// NewEmulator creates a new emulator, emitting its bus trace to sink.
func NewEmulator(sink trace.Sink) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(sink),
		Program: &cpu.Program{},
	}

	return
}

// Load a program from program text.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the cpu, and start the loaded program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Strict = emu.Strict
	emu.Cpu.Reset(emu.Program)
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	inst, ok := emu.Program.Fetch(emu.Cpu.Ip)
	if !ok {
		return 0
	}

	return inst.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Strict = emu.Strict

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.StepLimit > 0 && emu.Cpu.Steps >= emu.StepLimit && !emu.Cpu.Halted() {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run the program until it halts.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %v steps\n%v", emu.Cpu.Steps, emu.Cpu.String())
	}

	return
}

// Report writes the final machine state: registers, data memory, stack and
// labels.
func (emu *Emulator) Report(w io.Writer) (err error) {
	p := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = translate.Fprintf(w, format, args...)
	}

	p("Registers:\n")
	for n, name := range cpu.RegisterName {
		p("E%vX - 0x%X\n", name, uint32(emu.Cpu.Register[n]))
	}

	p("Memory:\n")
	for addr, value := range emu.Cpu.Memory.Words() {
		p("Address: 0x%X - Value: 0x%X\n", addr, uint32(value))
	}

	p("Stack:\n")
	for addr, value := range emu.Cpu.Stack.Words() {
		p("Address: 0x%X - Value: 0x%X\n", addr, uint32(value))
	}

	p("Labels:\n")
	for name, addr := range emu.Program.Symbols() {
		p("Name: %v - Value: 0x%X\n", name, addr)
	}

	return
}
