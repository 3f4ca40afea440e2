package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
	"github.com/JonMunkholm/salesdesk/internal/web/templates"
)

// handleDashboard renders row counts for every screen, grouped.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Stats come back sorted by group, then key.
	var groups []templates.ScreenGroup
	for _, st := range s.service.Stats(ctx) {
		if n := len(groups); n == 0 || groups[n-1].Name != st.Info.Group {
			groups = append(groups, templates.ScreenGroup{Name: st.Info.Group})
		}
		last := &groups[len(groups)-1]
		last.Cards = append(last.Cards, st)
	}

	templates.Dashboard(s.sidebar(""), groups).Render(ctx, w)
}

// handleScreenView renders a list page. HTMX requests get only the table
// container.
func (s *Server) handleScreenView(w http.ResponseWriter, r *http.Request) {
	table, def, err := s.openScreen(r, viewHooks())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	view := table.Render(viewState(r.URL.Query(), def))
	params := tableParams(def, view)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		templates.TablePartial(params).Render(r.Context(), w)
		return
	}
	templates.TableView(s.sidebar(def.Info.Key), params).Render(r.Context(), w)
}

// handleRowDetail renders one row on its own page.
func (s *Server) handleRowDetail(w http.ResponseWriter, r *http.Request) {
	table, def, err := s.openScreen(r, viewHooks())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	id := rowID(r)
	row, ok := table.RowByID(id)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%s/%s: %w", def.Info.Key, id, core.ErrRowNotFound), 0)
		return
	}

	cells := make([]datatable.Cell, len(def.Columns))
	for i, col := range def.Columns {
		cells[i] = col.Render.Render(row[col.Key], row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.RowDetail(s.sidebar(def.Info.Key), templates.DetailParams{
		Screen:  def.Info,
		ID:      id,
		Columns: def.Columns,
		Cells:   cells,
		EditURL: def.EditURL(id),
		BackURL: templates.ScreenURL(def.Info.Key, ""),
	}).Render(r.Context(), w)
}
