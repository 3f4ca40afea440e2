// Package export writes the filtered rows of a table as CSV or as an Excel
// workbook. CSV comes from the view engine; XLSX is plugged in as the
// table's export override.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// DefaultSheetName is used when no sheet name is configured.
const DefaultSheetName = "Export"

// ParseFormat accepts "csv" and "xlsx" (any case); "" yields def.
func ParseFormat(s string, def Format) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case string(CSV):
		return CSV, nil
	case string(XLSX), "excel":
		return XLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the HTTP content type of the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension without a dot.
func (f Format) Extension() string {
	return string(f)
}

// Filename returns <screen>_<epoch-millis>.<ext>, or export_<epoch-millis>.<ext>
// when screen is empty.
func (f Format) Filename(screen string, now time.Time) string {
	name := datatable.DefaultFilename(now, f.Extension())
	if screen == "" {
		return name
	}
	return screen + strings.TrimPrefix(name, "export")
}

// Exporter returns the table export override for format, writing to w.
// CSV returns nil: the table's built-in CSV export is used.
func Exporter(format Format, w io.Writer, columns []datatable.Column, sheet string) datatable.ExportFunc {
	if format != XLSX {
		return nil
	}
	return func(rows []datatable.Row) error {
		return WriteXLSX(w, rows, columns, sheet)
	}
}

// WriteXLSX writes a workbook with one sheet: a bold header row of column
// headers followed by one row per record with each column's raw value.
// Numbers, bools and dates keep their cell types.
func WriteXLSX(w io.Writer, rows []datatable.Row, columns []datatable.Column, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}

	cols := make([]datatable.Column, 0, len(columns))
	for _, c := range columns {
		if c.Key != datatable.ActionsKey {
			cols = append(cols, c)
		}
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Label()
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx export header: %w", err)
	}

	if len(cols) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("xlsx export style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("xlsx export style: %w", err)
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("xlsx export style: %w", err)
	}

	for i, row := range rows {
		values := make([]any, len(cols))
		for j, c := range cols {
			values[j] = cellValue(row[c.Key])
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx export row %d: %w", i+1, err)
		}
		for j, v := range values {
			if _, ok := v.(time.Time); ok {
				ref, _ := excelize.CoordinatesToCellName(j+1, i+2)
				if err := f.SetCellStyle(sheet, ref, ref, dateStyle); err != nil {
					return fmt.Errorf("xlsx export row %d: %w", i+1, err)
				}
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx export write: %w", err)
	}
	return nil
}

// cellValue keeps the types excelize writes natively and formats the rest.
func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, int, int32, int64, float32, float64:
		return val
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val
	default:
		return datatable.FormatValue(v)
	}
}
