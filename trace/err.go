package trace

import (
	"github.com/ezrec/katta/translate"
)

var f = translate.From

// ErrRecord is a malformed trace line.
type ErrRecord struct {
	LineNo int
	Line   string
}

func (err *ErrRecord) Error() string {
	return f("trace line %d '%v' malformed", err.LineNo, err.Line)
}
