package datatable

import (
	"slices"
	"strings"
)

// Search keeps rows where at least one column's formatted value contains
// term, compared case-insensitively. A blank term keeps every row. The result
// is always a new slice in input order.
func Search(rows []Row, term string, columns []Column) []Row {
	if strings.TrimSpace(term) == "" {
		return slices.Clone(rows)
	}

	fold := folder()
	needle := fold(term)

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, needle, columns, fold) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row Row, needle string, columns []Column, fold func(string) string) bool {
	for _, col := range columns {
		if col.Key == ActionsKey {
			continue
		}
		text := FormatValue(row[col.Key])
		if text == "" {
			continue
		}
		if strings.Contains(fold(text), needle) {
			return true
		}
	}
	return false
}
