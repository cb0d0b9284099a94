package cpu

import (
	"iter"
	"strings"
)

// IP_HALT is the program pointer of a halted cpu.
const IP_HALT = -1

// Instruction is a loaded line of program text.
type Instruction struct {
	LineNo int    // Source line number, 0 if unknown.
	Addr   uint32 // Load address.
	Text   string // Mnemonic and operands.
}

// Words returns the space-delimited words of the instruction.
func (inst Instruction) Words() []string {
	return strings.Fields(inst.Text)
}

// Label binds a name to the instruction that follows its definition.
type Label struct {
	Name  string // Label name.
	Addr  uint32 // Load address of the bound instruction.
	Index int    // Index of the bound instruction, IP_HALT if unbound.
}

// Bound returns true if the label has an instruction.
func (l Label) Bound() bool {
	return l.Index != IP_HALT
}

// Program is the output of the loader.
type Program struct {
	Instructions []Instruction
	Labels       []Label // In definition order.

	label map[string]int // Label name to Labels index; last definition wins.
}

// Label finds a label by name.
func (prog *Program) Label(name string) (label Label, ok bool) {
	if prog.label == nil {
		prog.index()
	}

	n, ok := prog.label[name]
	if !ok {
		return
	}

	label = prog.Labels[n]
	return
}

// index rebuilds the label lookup map.
func (prog *Program) index() {
	prog.label = make(map[string]int, len(prog.Labels))
	for n, label := range prog.Labels {
		prog.label[label.Name] = n
	}
}

// Fetch returns the instruction at program pointer ip.
func (prog *Program) Fetch(ip int) (inst Instruction, ok bool) {
	if ip < 0 || ip >= len(prog.Instructions) {
		return
	}

	return prog.Instructions[ip], true
}

// Debug returns the index of the instruction loaded at addr.
func (prog *Program) Debug(addr uint32) (ip int, ok bool) {
	if addr%WORD_SIZE != 0 {
		return IP_HALT, false
	}

	ip = int((addr - ADDR_INSTRUCTION) / WORD_SIZE)
	if ip >= len(prog.Instructions) || prog.Instructions[ip].Addr != addr {
		return IP_HALT, false
	}

	return ip, true
}

// Symbols returns an iterator over label names and their addresses.
func (prog *Program) Symbols() iter.Seq2[string, uint32] {
	return func(yield func(name string, addr uint32) bool) {
		for _, label := range prog.Labels {
			if !yield(label.Name, label.Addr) {
				return
			}
		}
	}
}
