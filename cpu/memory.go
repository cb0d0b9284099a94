package cpu

import (
	"iter"

	"github.com/ezrec/katta/trace"
)

// Trace descriptions of the bus accesses.
const (
	DESC_READ  = "Read Memory"
	DESC_WRITE = "Write Memory"
)

// Word is an address and its value.
type Word struct {
	Addr  uint32
	Value int32
}

// Memory is a sparse word store.
//
// Addresses that were never written do not exist, and read as SENTINEL.
type Memory struct {
	Trace trace.Sink // Destination of the bus trace.

	value map[uint32]int32
	order []uint32 // Addresses in first-write order.
}

// Read a word, emitting a read record.
func (mem *Memory) Read(addr uint32) (value int32) {
	mem.emit(trace.KIND_READ, addr, DESC_READ)

	value, ok := mem.Lookup(addr)
	if !ok {
		value = SENTINEL
	}

	return
}

// Write a word, emitting a write record.
func (mem *Memory) Write(addr uint32, value int32) {
	mem.emit(trace.KIND_WRITE, addr, DESC_WRITE)

	if mem.value == nil {
		mem.value = make(map[uint32]int32)
	}

	_, ok := mem.value[addr]
	if !ok {
		mem.order = append(mem.order, addr)
	}

	mem.value[addr] = value
}

// Lookup a word without a bus access.
func (mem *Memory) Lookup(addr uint32) (value int32, ok bool) {
	value, ok = mem.value[addr]
	return
}

// Len returns the number of words ever written.
func (mem *Memory) Len() int {
	return len(mem.order)
}

// Words returns an iterator over the stored words, in first-write order.
func (mem *Memory) Words() iter.Seq2[uint32, int32] {
	return func(yield func(addr uint32, value int32) bool) {
		for _, addr := range mem.order {
			if !yield(addr, mem.value[addr]) {
				return
			}
		}
	}
}

// Reset discards all words.
func (mem *Memory) Reset() {
	clear(mem.value)
	mem.order = mem.order[:0]
}

func (mem *Memory) emit(kind trace.Kind, addr uint32, desc string) {
	if mem.Trace == nil {
		return
	}

	mem.Trace.Emit(trace.Record{Kind: kind, Addr: addr, Desc: desc})
}
