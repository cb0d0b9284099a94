// Package trace records the bus transactions of the Katta processor.
//
// Every memory read, memory write and instruction execution performed by the
// simulator is emitted as one Record, in the order it happened. The textual
// form, one record per line, is
//
//	<kind> <address as 8 hex digits> <description>
//
// and is the input format of the downstream cache and bus tooling.
package trace

import (
	"fmt"
)

// Kind is the bus transaction class of a trace record.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_READ  = Kind(0) // read
	KIND_WRITE = Kind(1) // write
	KIND_EXEC  = Kind(2) // exec
)

// Record is a single bus transaction.
type Record struct {
	Kind Kind   // Transaction class.
	Addr uint32 // Bus address.
	Desc string // Free text description.
}

// String returns the trace line for the record, without the newline.
func (rec Record) String() string {
	return fmt.Sprintf("%d %08x %s", int(rec.Kind), rec.Addr, rec.Desc)
}

// Sink accepts trace records in execution order.
type Sink interface {
	// Emit appends a record to the trace.
	Emit(rec Record)
}

// Discard is a Sink that drops all records.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Record) {}

type tee []Sink

func (t tee) Emit(rec Record) {
	for _, sink := range t {
		sink.Emit(rec)
	}
}

// Tee returns a Sink that emits every record to each of the sinks, in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}
