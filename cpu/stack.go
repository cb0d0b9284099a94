package cpu

import (
	"iter"

	"github.com/ezrec/katta/trace"
)

// Stack is the memory stack, growing down from ADDR_STACK.
type Stack struct {
	Trace trace.Sink // Destination of the bus trace.

	Data []Word // Bottom first.
}

// Push a value below the current top, emitting a write record.
func (s *Stack) Push(value int32) {
	addr := uint32(ADDR_STACK)
	if top, ok := s.Top(); ok {
		addr = top - WORD_SIZE
	}

	s.emit(trace.KIND_WRITE, addr, DESC_WRITE)

	s.Data = append(s.Data, Word{Addr: addr, Value: value})
}

// Pop the top value, emitting a read record.
// An empty stack returns SENTINEL and emits nothing.
func (s *Stack) Pop() (value int32, ok bool) {
	word, ok := s.peek()
	if !ok {
		value = SENTINEL
		return
	}

	s.emit(trace.KIND_READ, word.Addr, DESC_READ)

	s.Data = s.Data[:len(s.Data)-1]
	value = word.Value

	return
}

// Peek at the top value, without a bus access.
func (s *Stack) Peek() (value int32, ok bool) {
	word, ok := s.peek()
	if !ok {
		value = SENTINEL
		return
	}

	return word.Value, true
}

// Top returns the stack pointer.
func (s *Stack) Top() (addr uint32, ok bool) {
	word, ok := s.peek()
	return word.Addr, ok
}

func (s *Stack) peek() (word Word, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

// Words returns an iterator over the stack, top down.
func (s *Stack) Words() iter.Seq2[uint32, int32] {
	return func(yield func(addr uint32, value int32) bool) {
		for n := len(s.Data) - 1; n >= 0; n-- {
			if !yield(s.Data[n].Addr, s.Data[n].Value) {
				return
			}
		}
	}
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}

func (s *Stack) emit(kind trace.Kind, addr uint32, desc string) {
	if s.Trace == nil {
		return
	}

	s.Trace.Emit(trace.Record{Kind: kind, Addr: addr, Desc: desc})
}
