// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"slices"
	"strings"
)

// Assembler is the single pass loader for Katta program text.
type Assembler struct {
	Verbose bool // If set, verbosely logs the loader actions.

	Instructions []Instruction // Loaded instructions.
	Labels       []Label       // Defined labels.

	addr    uint32 // Next load address.
	waiting bool   // Last label is awaiting an instruction.
}

// Reset the loader state.
func (asm *Assembler) Reset() {
	asm.Instructions = asm.Instructions[:0]
	asm.Labels = asm.Labels[:0]
	asm.addr = ADDR_INSTRUCTION
	asm.waiting = false
}

// Full returns true once the load address has reached the data region.
func (asm *Assembler) Full() bool {
	return asm.addr >= ADDR_DATA
}

// labelName returns the name defined by a label line.
func labelName(line string) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}

	return strings.TrimSuffix(words[0], ":")
}

// Line loads a single comment-free, non-empty line of program text.
//
// A line containing ':' defines a label for the next instruction. A label
// defined while another is still waiting for its instruction renames the
// waiting label. Any other line is an instruction.
func (asm *Assembler) Line(line string, lineno int) {
	if asm.Full() {
		return
	}

	if strings.Contains(line, ":") {
		name := labelName(line)
		if !asm.waiting {
			asm.waiting = true
			asm.Labels = append(asm.Labels, Label{Name: name, Addr: asm.addr, Index: IP_HALT})
		} else {
			label := &asm.Labels[len(asm.Labels)-1]
			if asm.Verbose {
				log.Printf("%v: label %v renamed to %v", lineno, label.Name, name)
			}
			label.Name = name
		}
		return
	}

	inst := Instruction{
		LineNo: lineno,
		Addr:   asm.addr,
		Text:   line,
	}

	if asm.waiting {
		label := &asm.Labels[len(asm.Labels)-1]
		label.Index = len(asm.Instructions)
		label.Addr = inst.Addr
		asm.waiting = false
		if asm.Verbose {
			log.Printf("%v: label %v at 0x%08x", lineno, label.Name, label.Addr)
		}
	}

	if asm.Verbose {
		log.Printf("%v: 0x%08x %v", lineno, inst.Addr, inst.Text)
	}

	asm.Instructions = append(asm.Instructions, inst)
	asm.addr += WORD_SIZE
}

// Program returns the loaded program.
func (asm *Assembler) Program() (prog *Program) {
	prog = &Program{
		Instructions: slices.Clone(asm.Instructions),
		Labels:       slices.Clone(asm.Labels),
	}
	prog.index()

	return
}

// Load loads comment-free, non-empty lines of program text.
func (asm *Assembler) Load(lines []string) (prog *Program) {
	asm.Reset()

	for n, line := range lines {
		if asm.Full() {
			break
		}
		asm.Line(line, n+1)
	}

	return asm.Program()
}

// stripComment removes everything from the first '/' to the end of line.
func stripComment(text string) string {
	before, _, _ := strings.Cut(text, "/")
	return strings.TrimSpace(before)
}

// Parse reads program text from an input stream, drops comments and blank
// lines, and loads the remainder.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Reset()

	for !asm.Full() && scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line = stripComment(text)
		if len(line) == 0 {
			continue
		}

		asm.Line(line, lineno)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = asm.Program()

	return
}
