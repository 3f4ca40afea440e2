package datatable

import "strings"

// DefaultPageSize is the fixed number of rows per page.
const DefaultPageSize = 10

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Desc for "desc" (any case) and Asc otherwise.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// SortState selects the sort column. An empty Key keeps the snapshot order.
type SortState struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// FilterOperator is a comparison used by a column filter.
type FilterOperator string

const (
	OpContains   FilterOperator = "contains"
	OpEquals     FilterOperator = "eq"
	OpStartsWith FilterOperator = "starts"
	OpEndsWith   FilterOperator = "ends"
	OpGreaterEq  FilterOperator = "gte"
	OpLessEq     FilterOperator = "lte"
	OpGreater    FilterOperator = "gt"
	OpLess       FilterOperator = "lt"
	OpIn         FilterOperator = "in"
	OpBetween    FilterOperator = "between"
)

// FilterValue is the state of one column's filter widget.
// Value is comma-separated for OpIn and OpBetween.
type FilterValue struct {
	Op    FilterOperator `json:"op"`
	Value string         `json:"value"`
}

// String encodes the filter as "op:value", the query-string form.
func (f FilterValue) String() string {
	return string(f.Op) + ":" + f.Value
}

// ParseFilterValue decodes "op:value". ok is false when the separator is
// missing or the value is empty.
func ParseFilterValue(s string) (FilterValue, bool) {
	op, value, found := strings.Cut(s, ":")
	if !found || value == "" {
		return FilterValue{}, false
	}
	return FilterValue{Op: FilterOperator(strings.TrimSpace(op)), Value: value}, true
}

// FilterState holds the free-text search term and the active column filters.
type FilterState struct {
	SearchTerm string                 `json:"searchTerm,omitempty"`
	Active     map[string]FilterValue `json:"active,omitempty"`
}

// PaginationState is the requested page. CurrentPage is 1-based.
type PaginationState struct {
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
}

// ViewState is the complete client-side view state of one table.
// Methods return modified copies; a ViewState is never changed in place.
type ViewState struct {
	Sort   SortState       `json:"sort"`
	Filter FilterState     `json:"filter"`
	Page   PaginationState `json:"page"`
}

// NewViewState returns the initial state: no sort, no search, no filters,
// page 1.
func NewViewState() ViewState {
	return ViewState{
		Sort: SortState{Direction: Asc},
		Page: PaginationState{PageSize: DefaultPageSize, CurrentPage: 1},
	}
}

// ToggleSort applies a header click. Clicking the sorted column flips its
// direction; any other column becomes the sort key ascending. The actions
// column is not sortable.
func (v ViewState) ToggleSort(key string) ViewState {
	if key == "" || key == ActionsKey {
		return v
	}
	if v.Sort.Key == key {
		if v.Sort.Direction == Desc {
			v.Sort.Direction = Asc
		} else {
			v.Sort.Direction = Desc
		}
		return v
	}
	v.Sort = SortState{Key: key, Direction: Asc}
	return v
}

// WithSort sets the sort key and direction directly.
func (v ViewState) WithSort(key string, dir Direction) ViewState {
	if key == ActionsKey {
		return v
	}
	if dir != Desc {
		dir = Asc
	}
	v.Sort = SortState{Key: key, Direction: dir}
	return v
}

// WithSearch sets the search term. A changed term resets the page to 1 so the
// user never lands past the end of a shorter result.
func (v ViewState) WithSearch(term string) ViewState {
	if term == v.Filter.SearchTerm {
		return v
	}
	v.Filter.SearchTerm = term
	v.Page.CurrentPage = 1
	return v
}

// WithFilter sets one column filter. An empty value removes it.
func (v ViewState) WithFilter(key string, f FilterValue) ViewState {
	if f.Value == "" {
		return v.WithoutFilter(key)
	}
	active := make(map[string]FilterValue, len(v.Filter.Active)+1)
	for k, fv := range v.Filter.Active {
		active[k] = fv
	}
	active[key] = f
	v.Filter.Active = active
	return v
}

// WithoutFilter removes one column filter.
func (v ViewState) WithoutFilter(key string) ViewState {
	if _, ok := v.Filter.Active[key]; !ok {
		return v
	}
	active := make(map[string]FilterValue, len(v.Filter.Active))
	for k, fv := range v.Filter.Active {
		if k != key {
			active[k] = fv
		}
	}
	v.Filter.Active = active
	return v
}

// ClearFilters removes every column filter. The search term is kept.
func (v ViewState) ClearFilters() ViewState {
	v.Filter.Active = nil
	return v
}

// GoToPage requests page n. The lower bound is enforced here; the upper bound
// needs the filtered row count and is enforced by Clamp and Paginate.
func (v ViewState) GoToPage(n int) ViewState {
	if n < 1 {
		n = 1
	}
	v.Page.CurrentPage = n
	return v
}

// Clamp bounds CurrentPage to [1, max(1, totalPages)] for a filtered row count.
func (v ViewState) Clamp(filteredRows int) ViewState {
	v.Page.PageSize = v.pageSize()
	total := TotalPages(filteredRows, v.Page.PageSize)
	if v.Page.CurrentPage < 1 {
		v.Page.CurrentPage = 1
	}
	if v.Page.CurrentPage > total {
		v.Page.CurrentPage = total
	}
	return v
}

func (v ViewState) pageSize() int {
	if v.Page.PageSize <= 0 {
		return DefaultPageSize
	}
	return v.Page.PageSize
}
