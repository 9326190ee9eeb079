// Package frame provides tabular result helpers for task bodies and
// registers their renderer with the runtime. Generated artifacts import
// it blank so the registration always happens.
package frame

import (
	"fmt"
	"os"
	"sort"

	"github.com/flowforge/cli/pkg/flowkit"
)

// Row is one record of a tabular result.
type Row map[string]any

// Rows is a tabular task result.
type Rows []Row

func init() {
	flowkit.RegisterDumper(func(w *os.File, v any) bool {
		rows, ok := v.(Rows)
		if !ok {
			return false
		}
		dump(w, rows)
		return true
	})
}

// Columns returns the union of column names across all rows, sorted.
func (r Rows) Columns() []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range r {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// Select returns a copy of the rows restricted to the given columns.
func (r Rows) Select(cols ...string) Rows {
	out := make(Rows, 0, len(r))
	for _, row := range r {
		picked := Row{}
		for _, col := range cols {
			if v, ok := row[col]; ok {
				picked[col] = v
			}
		}
		out = append(out, picked)
	}
	return out
}

// Filter returns the rows for which keep reports true.
func (r Rows) Filter(keep func(Row) bool) Rows {
	var out Rows
	for _, row := range r {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func dump(w *os.File, rows Rows) {
	cols := rows.Columns()
	for i, row := range rows {
		fmt.Fprintf(w, "row %d:\n", i)
		for _, col := range cols {
			if v, ok := row[col]; ok {
				fmt.Fprintf(w, "  %s: %v\n", col, v)
			}
		}
	}
	fmt.Fprintf(w, "%d row(s)\n", len(rows))
}
