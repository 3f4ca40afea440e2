package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
	"github.com/JonMunkholm/salesdesk/internal/web/templates"
)

// DeleteResponse is returned to JSON clients after a delete.
type DeleteResponse struct {
	Screen  string `json:"screen"`
	Deleted string `json:"deleted"`
}

// handleDeleteRow runs the delete action of a row.
//
// Forms from the list page post the page's encoded view state in "state";
// the action is dispatched on the row as rendered under that state. Requests
// without a state delete by identity.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "screenKey")
	id := rowID(r)

	def, err := s.service.Screen(key)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if def.Info.ReadOnly {
		s.respondError(w, r, fmt.Errorf("delete %s/%s: %w", key, id, core.ErrReadOnly), http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("parse delete form: %w", err), http.StatusBadRequest)
		return
	}

	rawState, hasState := r.PostForm["state"]
	if !hasState {
		if err := s.service.DeleteRow(r.Context(), key, id); err != nil {
			s.respondError(w, r, err, 0)
			return
		}
		s.respondDeleted(w, r, def, id, datatable.NewViewState())
		return
	}

	q, err := url.ParseQuery(rawState[0])
	if err != nil {
		s.respondError(w, r, fmt.Errorf("parse view state: %w", err), http.StatusBadRequest)
		return
	}
	state := viewState(q, def)

	table, _, err := s.service.Open(r.Context(), key, viewHooks())
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if err := table.DispatchByID(state, id, datatable.ActionDelete); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if isHTMX(r) {
		if err := s.service.Reload(r.Context(), key, table); err != nil {
			s.respondError(w, r, err, 0)
			return
		}
		params := tableParams(def, table.Render(state))
		params.Notice = "Record deleted"
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.TablePartial(params).Render(r.Context(), w)
		return
	}
	s.respondDeleted(w, r, def, id, state)
}

// respondDeleted answers JSON clients with the deleted id and sends browsers
// back to the list page with their view state.
func (s *Server) respondDeleted(w http.ResponseWriter, r *http.Request, def core.ScreenDefinition, id string, state datatable.ViewState) {
	if acceptsJSON(r) {
		writeJSON(w, DeleteResponse{Screen: def.Info.Key, Deleted: id})
		return
	}
	http.Redirect(w, r, templates.ScreenURL(def.Info.Key, state.Encode()), http.StatusSeeOther)
}
