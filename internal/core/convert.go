package core

// convert.go turns loosely typed source values into the Go natives the view
// engine sorts and filters on. SQLite hands back dates as text and booleans as
// integers; catalog screens over legacy tables often store amounts as
// "$1,200.00". Coercion is driven by the column's FieldType.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// numericRegex validates a number after currency cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot decides the century of two-digit years: years more than
// this far in the future belong to the previous century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06",
	}
	fourDigitYearLayouts = []string{
		time.RFC3339, "2006-01-02 15:04:05",
		"2006-01-02", "2006/01/02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
		"Jan 2, 2006", "2 Jan 2006",
	}
)

// ParseDate parses the date formats seen in CRM exports.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseNumber parses plain and currency-formatted numbers, including the
// accounting form "(123.45)" for negatives.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !numericRegex.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// ParseBool accepts true/false, yes/no, t/f, y/n and 1/0.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	}
	return false, false
}

// CoerceRows returns rows with values converted per column type. Values that
// do not convert are kept as they are. Input rows are not modified.
func CoerceRows(rows []datatable.Row, columns []datatable.Column) []datatable.Row {
	out := make([]datatable.Row, len(rows))
	for i, row := range rows {
		out[i] = coerceRow(row, columns)
	}
	return out
}

func coerceRow(row datatable.Row, columns []datatable.Column) datatable.Row {
	out := make(datatable.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	for _, col := range columns {
		v, ok := out[col.Key]
		if !ok || v == nil {
			continue
		}
		out[col.Key] = coerceValue(v, col.Type)
	}
	return out
}

func coerceValue(v any, ft datatable.FieldType) any {
	switch ft {
	case datatable.FieldDate:
		if s, ok := v.(string); ok {
			if t, ok := ParseDate(s); ok {
				return t
			}
		}
	case datatable.FieldNumeric:
		if s, ok := v.(string); ok {
			if n, ok := ParseNumber(s); ok {
				return n
			}
		}
	case datatable.FieldBool:
		switch b := v.(type) {
		case int64:
			return b != 0
		case int:
			return b != 0
		case string:
			if parsed, ok := ParseBool(b); ok {
				return parsed
			}
		}
	case datatable.FieldText, datatable.FieldEnum:
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return v
}
