package tables

import (
	"strconv"
	"strings"
)

// Span is the extent of a cell in grid units.
type Span struct {
	Rows int
	Cols int
}

// ParseColumn parses a CALS column name such as "3" or "col3".
func ParseColumn(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "col")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CALSSpan computes the span of an entry from its namest, nameend and
// morerows attributes. Empty or unparseable columns default to 1 and
// morerows defaults to 0.
func CALSSpan(namest, nameend, morerows string) Span {
	start, ok := ParseColumn(namest)
	if !ok {
		start = 1
	}
	end, ok := ParseColumn(nameend)
	if !ok {
		end = 1
	}
	more, err := strconv.Atoi(strings.TrimSpace(morerows))
	if err != nil || more < 0 {
		more = 0
	}

	span := Span{Rows: more + 1, Cols: end - start + 1}
	if span.Cols < 1 {
		span.Cols = 1
	}
	return span
}
