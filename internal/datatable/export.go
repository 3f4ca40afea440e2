package datatable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportFunc replaces the default CSV export. It receives the filtered,
// unpaginated rows.
type ExportFunc func(rows []Row) error

// WriteCSV writes a header row of column headers followed by one record per
// row with each column's raw value. Quoting follows RFC 4180: fields with a
// comma, quote or newline are quoted and embedded quotes are doubled.
func WriteCSV(w io.Writer, rows []Row, columns []Column) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.Key == ActionsKey {
			continue
		}
		header = append(header, col.Label())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(header))
	for i, row := range rows {
		record = record[:0]
		for _, col := range columns {
			if col.Key == ActionsKey {
				continue
			}
			record = append(record, FormatValue(row[col.Key]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportCSV returns the CSV document for rows as a string.
func ExportCSV(rows []Row, columns []Column) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, columns); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DefaultFilename returns export_<epoch-millis>.<ext>.
func DefaultFilename(now time.Time, ext string) string {
	return fmt.Sprintf("export_%d.%s", now.UnixMilli(), ext)
}
