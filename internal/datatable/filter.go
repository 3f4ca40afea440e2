package datatable

import (
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// predicate reports whether a raw value passes one column filter.
type predicate func(v any) bool

type columnPredicate struct {
	key  string
	test predicate
}

// ApplyFilters keeps rows that satisfy every active column filter (AND).
// Filters on unknown or non-filterable columns, with an operator the column
// type does not support, or with an unparsable value are ignored. Nil values
// fail every filter. The result is always a new slice in input order.
func ApplyFilters(rows []Row, active map[string]FilterValue, columns []Column) []Row {
	preds := compileFilters(active, columns)
	if len(preds) == 0 {
		return slices.Clone(rows)
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, preds) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(row Row, preds []columnPredicate) bool {
	for _, p := range preds {
		v := row[p.key]
		if isNil(v) || !p.test(v) {
			return false
		}
	}
	return true
}

// compileFilters turns filter state into predicates, in key order so
// evaluation is deterministic.
func compileFilters(active map[string]FilterValue, columns []Column) []columnPredicate {
	if len(active) == 0 {
		return nil
	}

	byKey := make(map[string]Column, len(columns))
	for _, col := range columns {
		byKey[col.Key] = col
	}

	keys := make([]string, 0, len(active))
	for k := range active {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var preds []columnPredicate
	for _, key := range keys {
		f := active[key]
		col, ok := byKey[key]
		if !ok || !col.Filterable || f.Value == "" {
			continue
		}
		if !IsValidOperator(f.Op, col.Type) {
			continue
		}
		test := buildPredicate(f, col.Type)
		if test == nil {
			continue
		}
		preds = append(preds, columnPredicate{key: key, test: test})
	}
	return preds
}

// IsValidOperator reports whether op can be applied to a column of type ft.
func IsValidOperator(op FilterOperator, ft FieldType) bool {
	switch ft {
	case FieldText:
		switch op {
		case OpContains, OpEquals, OpStartsWith, OpEndsWith, OpIn:
			return true
		}
	case FieldNumeric:
		switch op {
		case OpEquals, OpGreaterEq, OpLessEq, OpGreater, OpLess, OpBetween, OpIn:
			return true
		}
	case FieldDate:
		switch op {
		case OpEquals, OpGreaterEq, OpLessEq, OpGreater, OpLess, OpBetween:
			return true
		}
	case FieldBool:
		return op == OpEquals
	case FieldEnum:
		switch op {
		case OpEquals, OpIn:
			return true
		}
	}
	return false
}

// Operators returns the operators legal for ft, in display order.
func Operators(ft FieldType) []FilterOperator {
	all := []FilterOperator{
		OpContains, OpEquals, OpStartsWith, OpEndsWith,
		OpGreater, OpGreaterEq, OpLess, OpLessEq, OpBetween, OpIn,
	}
	var ops []FilterOperator
	for _, op := range all {
		if IsValidOperator(op, ft) {
			ops = append(ops, op)
		}
	}
	return ops
}

// buildPredicate returns nil when the filter value cannot be parsed for the
// column type.
func buildPredicate(f FilterValue, ft FieldType) predicate {
	switch ft {
	case FieldNumeric:
		return numericPredicate(f)
	case FieldDate:
		return datePredicate(f)
	case FieldBool:
		return boolPredicate(f)
	default:
		return textPredicate(f)
	}
}

func textPredicate(f FilterValue) predicate {
	fold := folder()
	want := fold(strings.TrimSpace(f.Value))

	switch f.Op {
	case OpContains:
		return func(v any) bool { return strings.Contains(fold(FormatValue(v)), want) }
	case OpStartsWith:
		return func(v any) bool { return strings.HasPrefix(fold(FormatValue(v)), want) }
	case OpEndsWith:
		return func(v any) bool { return strings.HasSuffix(fold(FormatValue(v)), want) }
	case OpEquals:
		return func(v any) bool { return fold(strings.TrimSpace(FormatValue(v))) == want }
	case OpIn:
		set := make(map[string]bool)
		for _, part := range strings.Split(f.Value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				set[fold(part)] = true
			}
		}
		if len(set) == 0 {
			return nil
		}
		return func(v any) bool { return set[fold(strings.TrimSpace(FormatValue(v)))] }
	}
	return nil
}

func numericPredicate(f FilterValue) predicate {
	switch f.Op {
	case OpIn:
		var set []float64
		for _, part := range strings.Split(f.Value, ",") {
			n, ok := parseNumber(part)
			if !ok {
				return nil
			}
			set = append(set, n)
		}
		return func(v any) bool {
			n, ok := numberOf(v)
			return ok && slices.Contains(set, n)
		}
	case OpBetween:
		lo, hi, ok := splitBounds(f.Value)
		if !ok {
			return nil
		}
		lower, okLower := parseNumber(lo)
		upper, okUpper := parseNumber(hi)
		if !okLower || !okUpper {
			return nil
		}
		return func(v any) bool {
			n, ok := numberOf(v)
			return ok && n >= lower && n <= upper
		}
	}

	want, ok := parseNumber(f.Value)
	if !ok {
		return nil
	}
	cmpOp := comparison(f.Op)
	if cmpOp == nil {
		return nil
	}
	return func(v any) bool {
		n, ok := numberOf(v)
		if !ok {
			return false
		}
		switch {
		case n < want:
			return cmpOp(-1)
		case n > want:
			return cmpOp(1)
		default:
			return cmpOp(0)
		}
	}
}

func datePredicate(f FilterValue) predicate {
	if f.Op == OpBetween {
		lo, hi, ok := splitBounds(f.Value)
		if !ok {
			return nil
		}
		from, okFrom := parseDate(lo)
		to, okTo := parseDate(hi)
		if !okFrom || !okTo {
			return nil
		}
		return func(v any) bool {
			d, ok := dateOf(v)
			return ok && !d.Before(from) && !d.After(to)
		}
	}

	want, ok := parseDate(f.Value)
	if !ok {
		return nil
	}
	cmpOp := comparison(f.Op)
	if cmpOp == nil {
		return nil
	}
	return func(v any) bool {
		d, ok := dateOf(v)
		return ok && cmpOp(d.Compare(want))
	}
}

func boolPredicate(f FilterValue) predicate {
	want, ok := parseBool(f.Value)
	if !ok {
		return nil
	}
	return func(v any) bool {
		switch b := v.(type) {
		case bool:
			return b == want
		default:
			got, ok := parseBool(FormatValue(v))
			return ok && got == want
		}
	}
}

// comparison maps an ordering operator to a test on a compare result.
func comparison(op FilterOperator) func(c int) bool {
	switch op {
	case OpEquals:
		return func(c int) bool { return c == 0 }
	case OpGreater:
		return func(c int) bool { return c > 0 }
	case OpGreaterEq:
		return func(c int) bool { return c >= 0 }
	case OpLess:
		return func(c int) bool { return c < 0 }
	case OpLessEq:
		return func(c int) bool { return c <= 0 }
	}
	return nil
}

func splitBounds(s string) (string, string, bool) {
	lo, hi, found := strings.Cut(s, ",")
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if !found || lo == "" || hi == "" {
		return "", "", false
	}
	return lo, hi, true
}

// parseNumber accepts plain numbers plus the currency decorations users type
// into filter boxes ("$1,200.50").
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

func numberOf(v any) (float64, bool) {
	if n, ok := toFloat(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		return parseNumber(s)
	}
	return 0, false
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, "01/02/2006"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), true
		}
	}
	return time.Time{}, false
}

func dateOf(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return truncateDay(d), true
	case string:
		return parseDate(d)
	}
	return time.Time{}, false
}

// truncateDay keeps the calendar date in the value's own location and drops
// the clock, so filters compare whole days.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}
