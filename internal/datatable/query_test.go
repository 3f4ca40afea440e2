package datatable

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	q, err := url.ParseQuery("sort=amount&dir=desc&search=acme&page=2&filter[stage]=eq:won&filter[amount]=gte:100&filter[]=eq:x&filter[bad]=novalue")
	require.NoError(t, err)

	s := ParseValues(q)

	assert.Equal(t, SortState{Key: "amount", Direction: Desc}, s.Sort)
	assert.Equal(t, "acme", s.Filter.SearchTerm)
	assert.Equal(t, 2, s.Page.CurrentPage)
	assert.Equal(t, DefaultPageSize, s.Page.PageSize)
	assert.Equal(t, map[string]FilterValue{
		"stage":  {OpEquals, "won"},
		"amount": {OpGreaterEq, "100"},
	}, s.Filter.Active)
}

func TestParseValues_Defaults(t *testing.T) {
	s := ParseValues(url.Values{"page": {"zero"}, "dir": {"desc"}})
	assert.Equal(t, NewViewState(), s)
}

func TestViewStateValues_RoundTrip(t *testing.T) {
	s := NewViewState().
		ToggleSort("name").
		ToggleSort("name").
		WithSearch("a b&c").
		WithFilter("stage", FilterValue{OpIn, "won,lost"}).
		GoToPage(4)

	q, err := url.ParseQuery(s.Encode())
	require.NoError(t, err)

	assert.Equal(t, s, ParseValues(q))
}

func TestViewStateValues_OmitsDefaults(t *testing.T) {
	assert.Empty(t, NewViewState().Encode())
}
