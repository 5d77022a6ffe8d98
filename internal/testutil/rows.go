package testutil

import (
	"fmt"
	"strings"
)

// NumberedRows returns n two-field rows: ("key-1", "value-1") and so on.
func NumberedRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("key-%d", i+1), fmt.Sprintf("value-%d", i+1)}
	}
	return rows
}

// Column returns the i-th field of every row.
func Column(rows [][]string, i int) []string {
	col := make([]string, len(rows))
	for r, row := range rows {
		col[r] = row[i]
	}
	return col
}

// Lines splits newline-terminated output into its lines. Empty output has
// no lines.
func Lines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}
