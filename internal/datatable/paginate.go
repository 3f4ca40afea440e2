package datatable

import "slices"

// maxPageButtons is the number of numbered buttons in the page window.
const maxPageButtons = 5

// PageButton is one entry of the page window: a page number or an ellipsis.
type PageButton struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Page is one page of filtered rows plus everything a pager needs.
type Page struct {
	Rows       []Row        `json:"-"`
	Number     int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalRows  int          `json:"totalRows"`
	TotalPages int          `json:"totalPages"`
	Window     []PageButton `json:"window"`
	ShowPager  bool         `json:"showPager"`
	CanPrev    bool         `json:"canPrev"` // First and Prev buttons
	CanNext    bool         `json:"canNext"` // Next and Last buttons
	Start      int          `json:"start"`   // 1-based index of the first row shown, 0 if empty
	End        int          `json:"end"`
}

// TotalPages returns max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := (n + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// Paginate slices rows into the requested page. The current page is clamped
// to [1, TotalPages]; the returned Page.Number is the clamped value.
func Paginate(rows []Row, p PaginationState) Page {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(rows), size)

	current := p.CurrentPage
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := (current - 1) * size
	end := min(start+size, len(rows))

	page := Page{
		Rows:       slices.Clone(rows[start:end]),
		Number:     current,
		PageSize:   size,
		TotalRows:  len(rows),
		TotalPages: total,
		Window:     PageWindow(current, total),
		ShowPager:  len(rows) > size,
		CanPrev:    current > 1,
		CanNext:    current < total,
	}
	if end > start {
		page.Start = start + 1
		page.End = end
	}
	return page
}

// PageWindow returns the page buttons for the pager: at most five numbered
// buttons around the current page, followed by an ellipsis and the last page
// when the last page is not already reachable from the window.
func PageWindow(current, total int) []PageButton {
	var first, last int
	switch {
	case total <= maxPageButtons || current <= 3:
		first, last = 1, min(maxPageButtons, total)
	case current >= total-2:
		first, last = total-4, total
	default:
		first, last = current-2, current+2
	}

	window := make([]PageButton, 0, maxPageButtons+2)
	for n := first; n <= last; n++ {
		window = append(window, PageButton{Number: n})
	}
	if total > maxPageButtons && current < total-2 {
		window = append(window, PageButton{Ellipsis: true}, PageButton{Number: total})
	}
	return window
}
