package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/lineextract/internal/tsv"
)

// RowsPerSplit is the number of rows one unit of split count stands for.
const RowsPerSplit = 1000

// Mode selects which transformation a run performs.
type Mode string

const (
	ModeSplit Mode = "split"
	ModeGroup Mode = "group"
)

// ParseMode accepts "split" or "group", case-insensitively. An empty string
// selects ModeSplit.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSplit:
		return ModeSplit, nil
	case ModeGroup:
		return ModeGroup, nil
	default:
		return "", fmt.Errorf("%w: invalid mode %q: must be 'split' or 'group'", ErrFormat, s)
	}
}

// RowSource yields rows in file order and io.EOF at the end.
// *tsv.Reader satisfies it.
type RowSource interface {
	Read() (tsv.Row, int, error)
}

// LineWriter receives one emitted line at a time, without the line break.
type LineWriter interface {
	WriteLine(line string) error
}

// Stats summarises a finished or aborted run.
type Stats struct {
	RowsRead      int
	LinesEmitted  int
	GroupsDropped int
}

// ParseSplitCount parses the split count argument. Surrounding blanks are
// ignored; anything that is not a non-negative integer is a format error.
func ParseSplitCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: split count %q is not an integer", ErrFormat, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: split count %d is negative", ErrFormat, n)
	}
	return n, nil
}

// Limit converts a split count into a row limit, saturating at math.MaxInt.
func Limit(splitCount int) int {
	if splitCount <= 0 {
		return 0
	}
	if splitCount > math.MaxInt/RowsPerSplit {
		return math.MaxInt
	}
	return splitCount * RowsPerSplit
}
