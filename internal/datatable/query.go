package datatable

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query parameter names used by the HTML pages, the JSON API and the CLI.
const (
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamSearch = "search"
	ParamPage   = "page"
)

// ParseValues decodes a ViewState from query parameters:
//
//	sort=<key>&dir=asc|desc&search=<term>&page=<n>&filter[<key>]=<op>:<value>
//
// Malformed values fall back to the initial state for that field. Filters are
// not checked against any column set here; the filter stage ignores filters
// that do not apply.
func ParseValues(q url.Values) ViewState {
	state := NewViewState()

	if key := strings.TrimSpace(q.Get(ParamSort)); key != "" {
		state = state.WithSort(key, ParseDirection(q.Get(ParamDir)))
	}

	state.Filter.SearchTerm = q.Get(ParamSearch)

	if n, err := strconv.Atoi(q.Get(ParamPage)); err == nil && n >= 1 {
		state.Page.CurrentPage = n
	}

	for key, values := range q {
		col, ok := filterKey(key)
		if !ok {
			continue
		}
		for _, raw := range values {
			if f, ok := ParseFilterValue(raw); ok {
				state = state.WithFilter(col, f)
			}
		}
	}
	return state
}

// filterKey extracts <key> from "filter[<key>]".
func filterKey(param string) (string, bool) {
	if !strings.HasPrefix(param, "filter[") || !strings.HasSuffix(param, "]") {
		return "", false
	}
	key := param[len("filter[") : len(param)-1]
	return key, key != ""
}

// Values encodes the state as query parameters; the inverse of ParseValues.
// Default values are omitted so links stay short.
func (v ViewState) Values() url.Values {
	q := url.Values{}
	if v.Sort.Key != "" {
		q.Set(ParamSort, v.Sort.Key)
		q.Set(ParamDir, string(v.Sort.Direction))
	}
	if v.Filter.SearchTerm != "" {
		q.Set(ParamSearch, v.Filter.SearchTerm)
	}
	if v.Page.CurrentPage > 1 {
		q.Set(ParamPage, strconv.Itoa(v.Page.CurrentPage))
	}

	keys := make([]string, 0, len(v.Filter.Active))
	for k := range v.Filter.Active {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set("filter["+k+"]", v.Filter.Active[k].String())
	}
	return q
}

// Encode returns the state as an encoded query string without a leading "?".
func (v ViewState) Encode() string {
	return v.Values().Encode()
}
