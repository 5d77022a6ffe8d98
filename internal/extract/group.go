package extract

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/vk/lineextract/internal/ctxlog"
	"github.com/vk/lineextract/internal/tsv"
)

// GroupOptions tunes Group.
type GroupOptions struct {
	// FlushFinal also emits the last run. Without it the last run is
	// accumulated and then discarded.
	FlushFinal bool
}

// Separator terminates every value appended to a group.
const Separator = ","

// Group emits one line per run of consecutive rows sharing the same first
// field. A line is the run's second fields, each followed by Separator.
//
// On failure the last row seen and the error kind are logged before the
// error is returned.
func Group(ctx context.Context, src RowSource, dst LineWriter, opts GroupOptions) (stats Stats, err error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Group started.", "flush_final", opts.FlushFinal)

	var (
		key  string
		acc  strings.Builder
		open bool
		last tsv.Row
	)
	defer func() {
		if err != nil {
			logger.Error("Grouping aborted.", "last_row", []string(last), "kind", Kind(err), "error", err)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		row, line, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, readError(err, line)
		}
		last = row
		stats.RowsRead++

		if len(row) < 2 {
			return stats, &RowError{Line: line, Row: row, Need: 2}
		}
		rowKey, value := row[0], row[1]

		if open && rowKey == key {
			acc.WriteString(value)
			acc.WriteString(Separator)
			continue
		}

		if open {
			if err := dst.WriteLine(acc.String()); err != nil {
				return stats, writeError(err)
			}
			stats.LinesEmitted++
		}
		acc.Reset()
		acc.WriteString(value)
		acc.WriteString(Separator)
		key = rowKey
		open = true
	}

	if open {
		if opts.FlushFinal {
			if err := dst.WriteLine(acc.String()); err != nil {
				return stats, writeError(err)
			}
			stats.LinesEmitted++
		} else {
			stats.GroupsDropped++
			logger.Debug("Final group not emitted.", "key", key)
		}
	}

	logger.Debug("Group finished.", "rows_read", stats.RowsRead, "lines_emitted", stats.LinesEmitted)
	return stats, nil
}
