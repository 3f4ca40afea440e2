package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var searchColumns = []Column{{Key: "name"}, {Key: "city"}}

func TestSearch_MatchesAnyColumn(t *testing.T) {
	rows := []Row{
		{"name": "Acme", "city": "Reno"},
		{"name": "Globex", "city": "Austin"},
	}

	got := Search(rows, "aus", searchColumns)
	assert.Equal(t, []Row{{"name": "Globex", "city": "Austin"}}, got)

	all := Search(rows, "", searchColumns)
	assert.Equal(t, rows, all)
}

func TestSearch_BlankTermKeepsAll(t *testing.T) {
	rows := []Row{{"name": "a"}, {"name": "b"}}

	for _, term := range []string{"", "   ", "\t"} {
		got := Search(rows, term, searchColumns)
		assert.Equal(t, rows, got, "term %q", term)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	rows := []Row{{"name": "ACME Corp"}, {"name": "Initech"}}

	got := Search(rows, "acme", searchColumns)
	assert.Len(t, got, 1)

	got = Search(rows, "INITECH", searchColumns)
	assert.Len(t, got, 1)
}

func TestSearch_NonStringValues(t *testing.T) {
	rows := []Row{
		{"name": 4200, "city": nil},
		{"name": true, "city": nil},
		{"name": nil, "city": nil},
	}

	assert.Len(t, Search(rows, "420", searchColumns), 1)
	assert.Len(t, Search(rows, "tru", searchColumns), 1)
	assert.Empty(t, Search(rows, "nil", searchColumns))
}

func TestSearch_PreservesOrder(t *testing.T) {
	rows := []Row{{"name": "b1"}, {"name": "a"}, {"name": "b2"}, {"name": "b3"}}

	got := Search(rows, "b", searchColumns)
	assert.Equal(t, []Row{{"name": "b1"}, {"name": "b2"}, {"name": "b3"}}, got)
}

func TestSearch_IgnoresUnlistedColumns(t *testing.T) {
	rows := []Row{{"name": "Acme", "secret": "needle"}}
	assert.Empty(t, Search(rows, "needle", searchColumns))
}
