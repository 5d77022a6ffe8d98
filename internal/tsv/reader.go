// Package tsv reads tab-delimited rows the way spreadsheet exports write
// them: a tab between fields, optional double quoting, and blanks at the
// start of a field dropped.
package tsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSyntax marks a row the reader could not split into fields.
var ErrSyntax = errors.New("tsv: syntax error")

const (
	comma = '\t'
	quote = '"'
)

// Row is one parsed input record. A blank line is a Row with no fields.
type Row []string

// Field returns the i-th field and whether the row has it.
func (r Row) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Reader yields rows from a tab-delimited stream in file order.
type Reader struct {
	lines *bufio.Reader
	line  int

	// record holds the text of one record at a time; fields parses it.
	record *recordText
	fields *csv.Reader
}

// NewReader wraps r. Rows may have any number of fields.
func NewReader(r io.Reader) *Reader {
	record := &recordText{}
	fields := csv.NewReader(record)
	fields.Comma = comma
	fields.FieldsPerRecord = -1
	fields.LazyQuotes = true
	return &Reader{lines: bufio.NewReader(r), record: record, fields: fields}
}

// Read returns the next row together with the 1-based line it started on.
// A blank line yields an empty Row rather than being skipped. Read returns
// io.EOF once the input is exhausted.
func (r *Reader) Read() (Row, int, error) {
	start := r.line + 1

	var text strings.Builder
	quoted := false
	for {
		line, err := r.lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, start, err
		}
		if line == "" {
			if text.Len() == 0 {
				return nil, 0, io.EOF
			}
			// Unterminated quoted field at end of input.
			break
		}
		r.line++
		text.WriteString(line)

		quoted = continuesQuote(strings.TrimRight(line, "\r\n"), quoted)
		if !quoted || err != nil {
			break
		}
	}

	raw := text.String()
	if strings.TrimRight(raw, "\r\n") == "" {
		return Row{}, start, nil
	}
	r.record.reset(raw)
	record, err := r.fields.Read()
	if err != nil {
		return nil, start, fmt.Errorf("%w: line %d: %w", ErrSyntax, start, err)
	}
	for i, f := range record {
		// encoding/csv would also eat the tab separators if asked to trim,
		// so only spaces are dropped here.
		record[i] = strings.TrimLeft(f, " ")
	}
	return Row(record), start, nil
}

// continuesQuote reports whether a quoted field is still open at the end of
// line, given whether one was open at its start. It follows encoding/csv
// with LazyQuotes: a quote opens a field only as its first byte, and inside
// a quoted field a lone quote closes it only before a tab or the line end.
func continuesQuote(line string, quoted bool) bool {
	atFieldStart := !quoted
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == quote:
			switch {
			case i+1 < len(line) && line[i+1] == quote:
				i++
			case i+1 == len(line):
				quoted = false
			case line[i+1] == comma:
				quoted = false
				atFieldStart = true
				i++
			}
		case quoted:
		case atFieldStart && c == quote:
			quoted = true
			atFieldStart = false
		case c == comma:
			atFieldStart = true
		default:
			atFieldStart = false
		}
	}
	return quoted
}

// recordText is a refillable source for the csv parser holding exactly one
// record. Running dry reports io.EOF, which the parser does not retain.
type recordText struct {
	s string
}

func (t *recordText) reset(s string) { t.s = s }

func (t *recordText) Read(p []byte) (int, error) {
	if t.s == "" {
		return 0, io.EOF
	}
	n := copy(p, t.s)
	t.s = t.s[n:]
	return n, nil
}
