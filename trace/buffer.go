package trace

// Buffer is a Sink that keeps every record in memory.
type Buffer struct {
	Records []Record
}

var _ Sink = (*Buffer)(nil)

// Emit appends the record.
func (buf *Buffer) Emit(rec Record) {
	buf.Records = append(buf.Records, rec)
}

// Count returns the number of records of the kind.
func (buf *Buffer) Count(kind Kind) (count int) {
	for _, rec := range buf.Records {
		if rec.Kind == kind {
			count++
		}
	}

	return
}

// Lines returns the records in their textual form.
func (buf *Buffer) Lines() (lines []string) {
	for _, rec := range buf.Records {
		lines = append(lines, rec.String())
	}

	return
}

// Reset discards all records.
func (buf *Buffer) Reset() {
	buf.Records = buf.Records[:0]
}
