package cpu

import (
	"math"
	"strings"
)

// RegisterName is the name of each register, indexed by register number.
var RegisterName = [4]string{"A", "B", "C", "D"}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte, base uint64) (digit uint64, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		digit = uint64(c - '0')
	case c >= 'a' && c <= 'f':
		digit = uint64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		digit = uint64(c-'A') + 10
	default:
		return
	}

	ok = digit < base
	return
}

// parseInt parses the leading integer of word in the manner of C's strtol():
// leading blanks, an optional sign and (for base 16) an optional 0x prefix
// are accepted, parsing stops at the first invalid character, and no digits
// yields zero. The result is truncated to 32 bits.
func parseInt(word string, base uint64) int32 {
	word = strings.TrimLeft(word, " \t")

	negative := false
	if len(word) > 0 && (word[0] == '+' || word[0] == '-') {
		negative = word[0] == '-'
		word = word[1:]
	}

	if base == 16 && len(word) > 2 && word[0] == '0' && (word[1] == 'x' || word[1] == 'X') {
		if _, ok := isDigit(word[2], base); ok {
			word = word[2:]
		}
	}

	var value uint64
	for n := 0; n < len(word); n++ {
		digit, ok := isDigit(word[n], base)
		if !ok {
			break
		}
		if value > (math.MaxInt64-digit)/base {
			value = math.MaxInt64
			continue
		}
		value = value*base + digit
	}

	v64 := int64(value)
	if negative {
		v64 = -v64
	}

	return int32(uint32(v64))
}

// registerIndex returns the register number named by the first character
// of word.
func registerIndex(word string) (index int, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	c := word[0]
	if !isLetter(c) {
		err = ErrRegisterInvalid
		return
	}

	index = int((c &^ 0x20) - 'A')
	if index >= len(RegisterName) {
		err = ErrRegisterInvalid
	}

	return
}

// GetRegister returns the value of the register named by word.
// Invalid registers read as zero.
func (cpu *Cpu) GetRegister(word string) (value int32, err error) {
	index, err := registerIndex(word)
	if err != nil {
		return
	}

	value = cpu.Register[index]
	return
}

// SetRegister sets the register named by word.
// Writes to invalid registers are dropped.
func (cpu *Cpu) SetRegister(word string, value int32) (err error) {
	index, err := registerIndex(word)
	if err != nil {
		return
	}

	cpu.Register[index] = value
	return
}

// EffectiveAddress computes the address of a memory operand.
//
// The operand is written [R+n], [+n], [n] or R[n]. When R names a register
// holding a data region address, the address is R + n words; otherwise it
// is ADDR_DATA + n words.
func (cpu *Cpu) EffectiveAddress(word string) (addr uint32, err error) {
	inner := strings.Map(func(r rune) rune {
		if r == '[' || r == ']' {
			return -1
		}
		return r
	}, word)

	base := int32(ADDR_DATA)
	if len(inner) > 0 && isLetter(inner[0]) {
		var reg int32
		reg, err = cpu.GetRegister(inner)
		if reg >= ADDR_DATA {
			base = reg
		}
		inner = inner[1:]
	}

	offset := parseInt(inner, 10)
	addr = uint32(base + offset*WORD_SIZE)

	return
}

// Operand decodes an instruction operand to its value.
//
// In order of precedence: a word containing 'x' is a hexadecimal immediate,
// a word containing '[' is a memory operand and is read from memory, a word
// starting with a letter is a register, and anything else is a decimal
// immediate.
func (cpu *Cpu) Operand(word string) (value int32, err error) {
	switch {
	case len(word) == 0:
		err = ErrOpcodeValueMissing
	case strings.Contains(word, "x"):
		value = parseInt(word, 16)
	case strings.Contains(word, "["):
		var addr uint32
		addr, err = cpu.EffectiveAddress(word)
		value = cpu.Memory.Read(addr)
	case isLetter(word[0]):
		value, err = cpu.GetRegister(word)
	default:
		value = parseInt(word, 10)
	}

	return
}
