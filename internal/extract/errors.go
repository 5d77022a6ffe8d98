package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/lineextract/internal/tsv"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrIO           = errors.New("i/o error")
	ErrFormat       = errors.New("format error")
	ErrMalformedRow = errors.New("malformed row")
)

// RowError reports a row that lacks a field the operation needs.
type RowError struct {
	Line int
	Row  tsv.Row
	Need int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: row has %d field(s), need %d: [%s]",
		e.Line, len(e.Row), e.Need, strings.Join(e.Row, " | "))
}

// Unwrap lets errors.Is match ErrMalformedRow.
func (e *RowError) Unwrap() error { return ErrMalformedRow }

// Kind names the class of err for user-facing diagnostics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedRow):
		return "MalformedRowError"
	case errors.Is(err, ErrFormat):
		return "FormatError"
	case errors.Is(err, ErrIO):
		return "IOError"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Canceled"
	default:
		return "UnexpectedError"
	}
}

// readError classifies an error coming out of the row reader.
func readError(err error, line int) error {
	if errors.Is(err, tsv.ErrSyntax) {
		return fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
	}
	return fmt.Errorf("%w: reading input: %w", ErrIO, err)
}

func writeError(err error) error {
	return fmt.Errorf("%w: writing output: %w", ErrIO, err)
}
