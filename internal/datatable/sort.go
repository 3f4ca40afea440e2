package datatable

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Sort returns rows ordered by s. With no sort key the input slice itself is
// returned; otherwise the result is a new slice and rows is left untouched.
//
// Nil values sort after every non-nil value in both directions. The sort is
// stable, so rows with equal keys keep their input order.
func Sort(rows []Row, s SortState) []Row {
	if s.Key == "" || s.Key == ActionsKey {
		return rows
	}

	out := slices.Clone(rows)
	desc := s.Direction == Desc
	slices.SortStableFunc(out, func(a, b Row) int {
		return compareRows(a[s.Key], b[s.Key], desc)
	})
	return out
}

// compareRows orders two sort-key values with nils last.
func compareRows(a, b any, desc bool) int {
	aNil, bNil := isNil(a), isNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	case bNil:
		return -1
	}

	c := CompareValues(a, b)
	if desc {
		return -c
	}
	return c
}

// CompareValues compares two non-nil values by native ordering: numbers
// numerically, strings bytewise, times chronologically, false before true.
// Values of different kinds order by kind first (numbers, strings, times,
// bools, then everything else), so the comparison stays a total order over
// mixed columns. Values of unknown types compare by their FormatValue text.
func CompareValues(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNumber:
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return cmp.Compare(af, bf)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankBool:
		return compareBool(a.(bool), b.(bool))
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}

const (
	rankNumber = iota
	rankString
	rankTime
	rankBool
	rankOther
)

func kindRank(v any) int {
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	switch v.(type) {
	case string:
		return rankString
	case time.Time:
		return rankTime
	case bool:
		return rankBool
	}
	return rankOther
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// toFloat converts numeric kinds to float64. Strings are not numbers here;
// only the filter stage parses text.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
