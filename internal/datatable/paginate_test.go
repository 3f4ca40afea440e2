package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{"id": i + 1}
	}
	return rows
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.size), "TotalPages(%d, %d)", tt.n, tt.size)
	}
}

func TestPaginate_TwentyThreeRows(t *testing.T) {
	rows := numberedRows(23)

	first := Paginate(rows, PaginationState{PageSize: 10, CurrentPage: 1})
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Rows, 10)
	assert.True(t, first.ShowPager)
	assert.False(t, first.CanPrev)
	assert.True(t, first.CanNext)
	assert.Equal(t, 1, first.Start)
	assert.Equal(t, 10, first.End)

	last := Paginate(rows, PaginationState{PageSize: 10, CurrentPage: 3})
	require.Len(t, last.Rows, 3)
	assert.Equal(t, []any{21, 22, 23}, ids(last.Rows))
	assert.True(t, last.CanPrev)
	assert.False(t, last.CanNext)

	clamped := Paginate(rows, PaginationState{PageSize: 10, CurrentPage: 4})
	assert.Equal(t, 3, clamped.Number)
	assert.Equal(t, ids(last.Rows), ids(clamped.Rows))

	low := Paginate(rows, PaginationState{PageSize: 10, CurrentPage: -2})
	assert.Equal(t, 1, low.Number)
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate(nil, PaginationState{PageSize: 10, CurrentPage: 3})

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Rows)
	assert.False(t, page.ShowPager)
	assert.Zero(t, page.Start)
	assert.Zero(t, page.End)
}

func TestPaginate_ExactlyOnePage(t *testing.T) {
	page := Paginate(numberedRows(10), PaginationState{PageSize: 10, CurrentPage: 1})
	assert.False(t, page.ShowPager)
}

func TestPageWindow(t *testing.T) {
	nums := func(ns ...int) []PageButton {
		out := make([]PageButton, len(ns))
		for i, n := range ns {
			if n == 0 {
				out[i] = PageButton{Ellipsis: true}
			} else {
				out[i] = PageButton{Number: n}
			}
		}
		return out
	}

	tests := []struct {
		current, total int
		want           []PageButton
	}{
		{1, 1, nums(1)},
		{2, 3, nums(1, 2, 3)},
		{5, 5, nums(1, 2, 3, 4, 5)},
		{1, 9, nums(1, 2, 3, 4, 5, 0, 9)},
		{3, 9, nums(1, 2, 3, 4, 5, 0, 9)},
		{5, 9, nums(3, 4, 5, 6, 7, 0, 9)},
		{6, 9, nums(4, 5, 6, 7, 8, 0, 9)},
		{7, 9, nums(5, 6, 7, 8, 9)},
		{9, 9, nums(5, 6, 7, 8, 9)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageWindow(tt.current, tt.total), "PageWindow(%d, %d)", tt.current, tt.total)
	}
}
