package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Read parses trace lines from r.
func Read(r io.Reader) (recs []Record, err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		var rec Record
		rec, err = parseLine(line)
		if err != nil {
			err = &ErrRecord{LineNo: lineno, Line: line}
			return
		}

		recs = append(recs, rec)
	}

	err = scanner.Err()

	return
}

// parseLine parses a single '<kind> <addr> <desc>' line.
func parseLine(line string) (rec Record, err error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 {
		err = io.ErrUnexpectedEOF
		return
	}

	kind, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	if kind < int(KIND_READ) || kind > int(KIND_EXEC) {
		err = strconv.ErrRange
		return
	}

	if len(fields[1]) != 8 {
		err = strconv.ErrSyntax
		return
	}
	addr, err := strconv.ParseUint(fields[1], 16, 32)
	if err != nil {
		return
	}

	rec.Kind = Kind(kind)
	rec.Addr = uint32(addr)
	if len(fields) == 3 {
		rec.Desc = fields[2]
	}

	return
}
