package templates

import (
	"fmt"
	"net/url"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// ScreenURL returns the list page URL for a screen with an encoded query.
func ScreenURL(key, query string) string {
	u := "/screens/" + key
	if query != "" {
		u += "?" + query
	}
	return u
}

// RowURL returns the detail page URL of a row. The id is path-escaped, so
// ids holding '/', '#' or '?' stay one path segment.
func RowURL(key, id string) string {
	return "/screens/" + key + "/rows/" + url.PathEscape(id)
}

// DeleteURL returns the delete endpoint of a row.
func DeleteURL(key, id string) string {
	return "/api/screens/" + key + "/rows/" + url.PathEscape(id) + "/delete"
}

// ExportURL returns the export download URL for a format and query.
func ExportURL(key, format, query string) string {
	u := "/api/screens/" + key + "/export?format=" + format
	if query != "" {
		u += "&" + query
	}
	return u
}

func sortURL(p TableParams, key string) string {
	return ScreenURL(p.Screen.Key, p.View.State.ToggleSort(key).Encode())
}

func pageURL(p TableParams, n int) string {
	return ScreenURL(p.Screen.Key, p.View.State.GoToPage(n).Encode())
}

func sortMarker(h datatable.Header) string {
	switch {
	case !h.Sorted:
		return ""
	case h.Direction == datatable.Desc:
		return " ▼"
	default:
		return " ▲"
	}
}

func filterName(key string) string {
	return "filter[" + key + "]"
}

func enumOption(v string) string {
	return datatable.FilterValue{Op: datatable.OpEquals, Value: v}.String()
}

// activeFilter returns the encoded filter on a column, or "".
func activeFilter(state datatable.ViewState, key string) string {
	if f, ok := state.Filter.Active[key]; ok {
		return f.String()
	}
	return ""
}

func filterPlaceholder(ft datatable.FieldType) string {
	switch ft {
	case datatable.FieldNumeric:
		return "gte:1000"
	case datatable.FieldDate:
		return "between:2025-01-01,2025-03-31"
	case datatable.FieldBool:
		return "eq:true"
	default:
		return "contains:text"
	}
}

func pageSummary(v datatable.View) string {
	s := fmt.Sprintf("Showing %d to %d of %d", v.Page.Start, v.Page.End, v.Page.TotalRows)
	if v.Page.TotalRows != v.TotalRows {
		s += fmt.Sprintf(" (filtered from %d)", v.TotalRows)
	}
	return s
}

// linked reports whether a row action can be rendered as a working link or
// form. Positional ids do not resolve back to a row.
func linked(row datatable.RenderedRow, a datatable.Action) bool {
	return !a.Disabled && row.Keyed
}
