package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
	"github.com/JonMunkholm/salesdesk/internal/export"
	"github.com/JonMunkholm/salesdesk/internal/logging"
)

// RowsResponse is the JSON form of one rendered page.
type RowsResponse struct {
	Screen     core.ScreenInfo     `json:"screen"`
	State      datatable.ViewState `json:"state"`
	Headers    []datatable.Header  `json:"headers"`
	Rows       []APIRow            `json:"rows"`
	Pagination datatable.Page      `json:"pagination"`
	TotalRows  int                 `json:"totalRows"`
}

// APIRow is one visible row with raw values, rendered cells and the kinds
// of its enabled actions.
type APIRow struct {
	ID      string           `json:"id"`
	Values  map[string]any   `json:"values"`
	Cells   []datatable.Cell `json:"cells"`
	Actions []string         `json:"actions,omitempty"`
}

// handleListScreens returns all screens organized by group.
func (s *Server) handleListScreens(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ListScreensByGroup())
}

// handleScreenRows returns one page of a screen as JSON. It accepts the same
// query parameters as the list page.
func (s *Server) handleScreenRows(w http.ResponseWriter, r *http.Request) {
	table, def, err := s.openScreen(r, viewHooks())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	view := table.Render(viewState(r.URL.Query(), def))

	rows := make([]APIRow, len(view.Rows))
	for i, rr := range view.Rows {
		values := make(map[string]any, len(def.Columns)+1)
		values[def.IDColumn()] = rr.Row[def.IDColumn()]
		for _, col := range def.Columns {
			values[col.Key] = rr.Row[col.Key]
		}
		var actions []string
		for _, a := range rr.Actions {
			if !a.Disabled {
				actions = append(actions, string(a.Kind))
			}
		}
		rows[i] = APIRow{ID: rr.ID, Values: values, Cells: rr.Cells, Actions: actions}
	}

	writeJSON(w, RowsResponse{
		Screen:     def.Info,
		State:      view.State,
		Headers:    view.Headers,
		Rows:       rows,
		Pagination: view.Page,
		TotalRows:  view.TotalRows,
	})
}

// handleExport downloads the filtered, unpaginated rows of a screen. The
// file is built in memory so a failed export still gets an error response.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "screenKey")
	def, err := s.service.Screen(key)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"), export.Format(s.cfg.Export.DefaultFormat))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.exports.Acquire(r.Context()); err != nil {
		if errors.Is(err, core.ErrTooManyExports) {
			w.Header().Set("Retry-After", "5")
		}
		s.respondError(w, r, err, 0)
		return
	}
	defer s.exports.Release()

	var buf bytes.Buffer
	table, _, err := s.service.Open(r.Context(), key, core.Hooks{
		OnExport: export.Exporter(format, &buf, def.Columns, s.cfg.Export.SheetName),
	})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	state := viewState(r.URL.Query(), def)
	if err := table.Export(&buf, state); err != nil {
		s.respondError(w, r, fmt.Errorf("export %s: %w", key, err), http.StatusInternalServerError)
		return
	}

	logging.ForScreen(r.Context(), key).Info("export",
		"format", format,
		"bytes", buf.Len(),
	)

	filename := format.Filename(key, time.Now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}
