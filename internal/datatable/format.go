package datatable

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"golang.org/x/text/cases"
)

// Row is one record. Its shape is defined entirely by the caller.
type Row map[string]any

// FormatValue converts a raw value to its canonical string form. It never
// panics: nil and nil pointers format as "", composite values use fmt.
func FormatValue(v any) string {
	if isNil(v) {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return formatTime(val)
	case *time.Time:
		return formatTime(*val)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// formatTime renders dates without a clock as 2006-01-02 and everything
// else as RFC 3339.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// isNil reports whether v is nil or a nil pointer/interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// folder returns a case-folding func for one stage invocation.
// cases.Caser is stateful, so it is never shared across calls.
func folder() func(string) string {
	c := cases.Fold()
	return func(s string) string {
		return c.String(s)
	}
}
