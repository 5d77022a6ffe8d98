package extract

import (
	"context"
	"errors"
	"io"

	"github.com/vk/lineextract/internal/ctxlog"
)

// Split writes the first field of each of the first Limit(splitCount) rows
// to dst, in input order, and stops reading once the limit is reached.
func Split(ctx context.Context, src RowSource, dst LineWriter, splitCount int) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	limit := Limit(splitCount)
	logger.Debug("Split started.", "split_count", splitCount, "limit", limit)

	var stats Stats
	for stats.LinesEmitted < limit {
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
		stats.RowsRead++

		first, ok := row.Field(0)
		if !ok {
			return stats, &RowError{Line: line, Row: row, Need: 1}
		}
		if err := dst.WriteLine(first); err != nil {
			return stats, writeError(err)
		}
		stats.LinesEmitted++
	}

	logger.Debug("Split finished.", "rows_read", stats.RowsRead, "lines_emitted", stats.LinesEmitted)
	return stats, nil
}
