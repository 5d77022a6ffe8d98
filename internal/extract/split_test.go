package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/lineextract/internal/output"
	"github.com/vk/lineextract/internal/testutil"
	"github.com/vk/lineextract/internal/tsv"
)

func runSplit(t *testing.T, input string, splitCount int) ([]string, Stats, error) {
	t.Helper()

	ctx, _ := testutil.Context(t)
	buf := &bytes.Buffer{}
	sink := output.NewSink(buf)

	stats, err := Split(ctx, tsv.NewReader(strings.NewReader(input)), sink, splitCount)
	require.NoError(t, sink.Close())
	return testutil.Lines(buf.String()), stats, err
}

func TestSplit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		rows       int
		splitCount int
		wantLines  int
	}{
		{name: "zero split count emits nothing", rows: 3, splitCount: 0, wantLines: 0},
		{name: "limit above row count emits every row", rows: 3, splitCount: 1, wantLines: 3},
		{name: "limit equal to row count", rows: 1000, splitCount: 1, wantLines: 1000},
		{name: "truncates to split count thousands", rows: 2500, splitCount: 2, wantLines: 2000},
		{name: "empty input", rows: 0, splitCount: 5, wantLines: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			rows := testutil.NumberedRows(tc.rows)

			// --- Act ---
			lines, stats, err := runSplit(t, testutil.TSV(rows), tc.splitCount)

			// --- Assert ---
			require.NoError(t, err)
			require.Len(t, lines, tc.wantLines)
			if diff := cmp.Diff(testutil.Column(rows, 0)[:tc.wantLines], lines, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("emitted lines mismatch (-want +got):\n%s", diff)
			}
			require.Equal(t, tc.wantLines, stats.LinesEmitted)
		})
	}
}

func TestSplit_StopsReadingAtLimit(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.Context(t)
	src := &countingSource{rows: testutil.NumberedRows(5000)}

	stats, err := Split(ctx, src, output.NewSink(&bytes.Buffer{}), 1)

	require.NoError(t, err)
	require.Equal(t, 1000, src.reads)
	require.Equal(t, 1000, stats.RowsRead)
}

func TestSplit_SingleFieldRowsAreFine(t *testing.T) {
	t.Parallel()

	lines, _, err := runSplit(t, "  alpha\nbeta\tb\n gamma\t\tc\n", 1)

	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "gamma"}, lines)
}

func TestSplit_EmptyRowIsMalformed(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.Context(t)
	src := &countingSource{rows: [][]string{{"a"}, {}}}

	stats, err := Split(ctx, src, output.NewSink(&bytes.Buffer{}), 1)

	require.ErrorIs(t, err, ErrMalformedRow)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	require.Equal(t, 2, rowErr.Line)
	require.Equal(t, 1, rowErr.Need)
	require.Equal(t, 1, stats.LinesEmitted)
}

func TestSplit_BlankLineIsMalformed(t *testing.T) {
	t.Parallel()

	lines, stats, err := runSplit(t, "a\t1\n\nb\t2\n", 1)

	require.ErrorIs(t, err, ErrMalformedRow)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	require.Equal(t, 2, rowErr.Line)
	require.Equal(t, 1, rowErr.Need)
	require.Empty(t, rowErr.Row)
	require.Equal(t, []string{"a"}, lines)
	require.Equal(t, 2, stats.RowsRead)
}

func TestSplit_WriteFailureIsIOError(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.Context(t)
	src := &countingSource{rows: testutil.NumberedRows(3)}

	_, err := Split(ctx, src, failingWriter{}, 1)

	require.ErrorIs(t, err, ErrIO)
	require.Equal(t, "IOError", Kind(err))
}

func TestSplit_HonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.Context(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := Split(ctx, &countingSource{rows: testutil.NumberedRows(3)}, output.NewSink(&bytes.Buffer{}), 1)

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "Canceled", Kind(err))
}

func TestParseSplitCount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "2", want: 2},
		{in: " 7 ", want: 7},
		{in: "abc", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSplitCount(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrFormat)
				require.Equal(t, "FormatError", Kind(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Limit(0))
	require.Equal(t, 0, Limit(-3))
	require.Equal(t, 3000, Limit(3))
	require.Positive(t, Limit(int(^uint(0)>>1)))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeSplit, m)

	m, err = ParseMode("GROUP")
	require.NoError(t, err)
	require.Equal(t, ModeGroup, m)

	_, err = ParseMode("merge")
	require.ErrorIs(t, err, ErrFormat)
}

// countingSource serves rows from memory and counts how many were read.
type countingSource struct {
	rows  [][]string
	reads int
}

func (s *countingSource) Read() (tsv.Row, int, error) {
	if s.reads >= len(s.rows) {
		return nil, 0, io.EOF
	}
	s.reads++
	return tsv.Row(s.rows[s.reads-1]), s.reads, nil
}

type failingWriter struct{}

func (failingWriter) WriteLine(string) error { return errors.New("pipe closed") }
