package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
	"github.com/JonMunkholm/salesdesk/internal/web/templates"
)

// exportFormats are offered on every list page.
var exportFormats = []string{config.FormatCSV, config.FormatXLSX}

// viewHooks makes the view and edit actions appear. In the browser both are
// plain links, so the handlers themselves do nothing.
func viewHooks() core.Hooks {
	noop := func(datatable.Row) error { return nil }
	return core.Hooks{OnView: noop, OnEdit: noop}
}

// viewState decodes the table state from query parameters and applies the
// screen's default sort when the request has none.
//
// Filter forms post the search term the page was rendered with; the page
// number then survives filter and sort changes and resets only when the
// search term changed.
func viewState(q map[string][]string, def core.ScreenDefinition) datatable.ViewState {
	state := datatable.ParseValues(q)
	if _, ok := q[datatable.ParamSort]; !ok && def.Info.DefaultSort.Key != "" {
		state = state.WithSort(def.Info.DefaultSort.Key, def.Info.DefaultSort.Direction)
	}
	if shown, ok := q[templates.ParamShownSearch]; ok && len(shown) > 0 {
		term := state.Filter.SearchTerm
		state.Filter.SearchTerm = shown[0]
		state = state.WithSearch(term)
	}
	return state
}

// rowID returns the decoded {id} path parameter. chi matches against the
// escaped path when the request has one, so ids holding '/' or '#' arrive
// still escaped.
func rowID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// openScreen loads the table named by the screenKey URL parameter.
func (s *Server) openScreen(r *http.Request, hooks core.Hooks) (*datatable.Table, core.ScreenDefinition, error) {
	return s.service.Open(r.Context(), chi.URLParam(r, "screenKey"), hooks)
}

// sidebar builds the navigation for a page.
func (s *Server) sidebar(activeKey string) templates.SidebarParams {
	return templates.SidebarParams{
		Groups:    core.Groups(),
		Screens:   s.service.ListScreensByGroup(),
		ActiveKey: activeKey,
	}
}

// tableParams adapts a rendered view to the list page template.
func tableParams(def core.ScreenDefinition, view datatable.View) templates.TableParams {
	p := templates.TableParams{
		Screen:  def.Info,
		View:    view,
		Formats: exportFormats,
	}
	if def.Info.EditPath != "" {
		p.EditURL = def.EditURL
	}
	return p
}
