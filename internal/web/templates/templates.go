// Package templates holds the HTML components of the web front end. The
// components are written in .templ files; the _templ.go files next to them
// are generated with `templ generate` and must not be edited by hand.
package templates

import (
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// Asset URLs loaded by every page. The server's CSP allows these origins.
const (
	HTMXSrc     = "https://unpkg.com/htmx.org@2.0.4"
	TailwindSrc = "https://cdn.tailwindcss.com"
)

// TableContainerID is the element HTMX requests swap.
const TableContainerID = "table-container"

// ParamShownSearch carries the search term a list page was rendered with.
// The filter form posts it back so the handler can tell a new search from a
// filter or sort change.
const ParamShownSearch = "shown_search"

// SidebarParams drives the navigation sidebar.
type SidebarParams struct {
	Groups    []string
	Screens   map[string][]core.ScreenInfo
	ActiveKey string
}

// ScreenGroup is one group of dashboard cards.
type ScreenGroup struct {
	Name  string
	Cards []core.ScreenStats
}

// TableParams is everything the list page needs from one rendered view.
type TableParams struct {
	Screen core.ScreenInfo
	View   datatable.View

	// EditURL returns the edit form URL for a row id; nil hides edit links.
	EditURL func(id string) string

	// Formats are the offered export formats.
	Formats []string

	// Notice is a one-line status message, e.g. after a delete.
	Notice string
}

// DetailParams is one row shown on its own page.
type DetailParams struct {
	Screen  core.ScreenInfo
	ID      string
	Columns []datatable.Column
	Cells   []datatable.Cell
	EditURL string
	BackURL string
}
