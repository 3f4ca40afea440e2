package templates

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func renderTable(t *testing.T, rows []datatable.Row, opts datatable.Options, state datatable.ViewState) string {
	t.Helper()
	cols := []datatable.Column{
		{Key: "name", Header: "Name", Filterable: true},
		{Key: "status", Header: "Status", Type: datatable.FieldEnum, EnumValues: []string{"Open", "Closed"}, Filterable: true},
	}
	table, err := datatable.New(cols, rows, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p := TableParams{
		Screen:  core.ScreenInfo{Key: "tickets", Label: "Tickets"},
		View:    table.Render(state),
		EditURL: func(id string) string { return "/tickets/" + id + "/edit" },
		Formats: []string{"csv"},
	}

	var buf bytes.Buffer
	if err := TablePartial(p).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func noop(datatable.Row) error { return nil }

func TestTablePartial_EscapesCells(t *testing.T) {
	rows := []datatable.Row{{"id": "1", "name": `<script>alert("x")</script>`, "status": "Open"}}
	html := renderTable(t, rows, datatable.Options{}, datatable.NewViewState())

	if strings.Contains(html, "<script>") {
		t.Error("cell text was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped cell text missing")
	}
	if strings.Contains(html, "Actions") {
		t.Error("actions header rendered without handlers")
	}
}

func TestTablePartial_ActionsStopPropagation(t *testing.T) {
	rows := []datatable.Row{{"id": "7", "name": "Printer", "status": "Open"}}
	opts := datatable.Options{OnView: noop, OnEdit: noop, OnDelete: noop, ShowEdit: true}
	state := datatable.NewViewState().WithSearch("print")
	html := renderTable(t, rows, opts, state)

	for _, want := range []string{
		`href="/screens/tickets/rows/7"`,
		`href="/tickets/7/edit"`,
		`action="/api/screens/tickets/rows/7/delete"`,
		`<input type="hidden" name="state" value="search=print">`,
		`hx-confirm="Delete this record?"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s", want)
		}
	}
	// view link, edit link and delete form
	if n := strings.Count(html, `onclick="event.stopPropagation()"`); n != 3 {
		t.Errorf("stopPropagation count = %d, want 3", n)
	}
}

func TestTablePartial_DisabledActions(t *testing.T) {
	rows := []datatable.Row{{"id": "7", "name": "Printer", "status": "Open"}}
	opts := datatable.Options{OnView: noop, OnDelete: noop, DisableActions: true}
	html := renderTable(t, rows, opts, datatable.NewViewState())

	if strings.Count(html, `<button type="button" disabled`) != 2 {
		t.Error("expected two disabled buttons")
	}
	if strings.Contains(html, `href="/screens/tickets/rows/7"`) || strings.Contains(html, "/delete") {
		t.Error("disabled actions still link somewhere")
	}
}

func TestTablePartial_RowsAreNotClickable(t *testing.T) {
	rows := []datatable.Row{{"id": "7", "name": "Printer", "status": "Open"}}
	opts := datatable.Options{OnView: noop}
	html := renderTable(t, rows, opts, datatable.NewViewState())

	if !strings.Contains(html, `<tr data-id="7" class="hover:bg-gray-50">`) {
		t.Errorf("row markup = %s", html)
	}
	if strings.Contains(html, "data-href") || strings.Contains(html, "window.location") {
		t.Error("row carries a click navigation")
	}
}

func TestTablePartial_EscapesRowIDsInURLs(t *testing.T) {
	rows := []datatable.Row{{"id": "a/b #1", "name": "Printer", "status": "Open"}}
	opts := datatable.Options{OnView: noop, OnDelete: noop}
	html := renderTable(t, rows, opts, datatable.NewViewState())

	for _, want := range []string{
		`href="/screens/tickets/rows/a%2Fb%20%231"`,
		`action="/api/screens/tickets/rows/a%2Fb%20%231/delete"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s", want)
		}
	}
	if strings.Contains(html, "/rows/a/b") {
		t.Error("raw id leaked into a URL")
	}
}

func TestTablePartial_PositionalRowsDisableActions(t *testing.T) {
	rows := []datatable.Row{{"name": "Printer", "status": "Open"}}
	opts := datatable.Options{OnView: noop, OnDelete: noop}
	html := renderTable(t, rows, opts, datatable.NewViewState())

	if n := strings.Count(html, `<button type="button" disabled`); n != 2 {
		t.Errorf("disabled buttons = %d, want 2", n)
	}
	if strings.Contains(html, "/rows/#") || strings.Contains(html, "/rows/%230") {
		t.Error("positional id rendered as a link")
	}
}

func TestTablePartial_FilterFormCarriesPage(t *testing.T) {
	var rows []datatable.Row
	for i := 1; i <= 95; i++ {
		rows = append(rows, datatable.Row{"id": fmt.Sprint(i), "name": fmt.Sprintf("T%03d", i), "status": "Open"})
	}
	state := datatable.NewViewState().WithSearch("t0").GoToPage(4)
	html := renderTable(t, rows, datatable.Options{}, state)

	for _, want := range []string{
		`<input type="hidden" name="page" value="4">`,
		`<input type="hidden" name="shown_search" value="t0">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestTablePartial_EmptyState(t *testing.T) {
	opts := datatable.Options{OnDelete: noop}
	html := renderTable(t, nil, opts, datatable.NewViewState())

	if !strings.Contains(html, `colspan="3"`) || !strings.Contains(html, "No records found") {
		t.Errorf("empty row missing: %s", html)
	}
	if !strings.Contains(html, "Showing 0 to 0 of 0") {
		t.Error("summary missing")
	}
}

func TestTablePartial_Pager(t *testing.T) {
	var rows []datatable.Row
	for i := 1; i <= 95; i++ {
		rows = append(rows, datatable.Row{"id": fmt.Sprint(i), "name": fmt.Sprintf("T%03d", i), "status": "Open"})
	}
	html := renderTable(t, rows, datatable.Options{}, datatable.NewViewState().GoToPage(4))

	for _, want := range []string{
		"Showing 31 to 40 of 95",
		`href="/screens/tickets?page=3"`,
		`href="/screens/tickets?page=10"`,
		"&hellip;",
		`aria-label="Pagination"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s", want)
		}
	}
	if strings.Contains(html, "filtered from") {
		t.Error("unfiltered view reports a filter")
	}
}

func TestTablePartial_SelectedFilter(t *testing.T) {
	rows := []datatable.Row{{"id": "1", "name": "a", "status": "Closed"}}
	state := datatable.NewViewState().WithFilter("status", datatable.FilterValue{Op: datatable.OpEquals, Value: "Closed"})
	html := renderTable(t, rows, datatable.Options{}, state)

	if !strings.Contains(html, `<option value="eq:Closed" selected>`) {
		t.Error("current filter not selected")
	}
}

func TestURLs(t *testing.T) {
	if got := ScreenURL("leads", ""); got != "/screens/leads" {
		t.Errorf("ScreenURL = %s", got)
	}
	if got := ExportURL("leads", "xlsx", "search=a"); got != "/api/screens/leads/export?format=xlsx&search=a" {
		t.Errorf("ExportURL = %s", got)
	}
	if got := DeleteURL("leads", "9"); got != "/api/screens/leads/rows/9/delete" {
		t.Errorf("DeleteURL = %s", got)
	}
	if got := RowURL("leads", "x?y=1"); got != "/screens/leads/rows/x%3Fy=1" {
		t.Errorf("RowURL = %s", got)
	}
	if got := DeleteURL("leads", "a/b"); got != "/api/screens/leads/rows/a%2Fb/delete" {
		t.Errorf("DeleteURL = %s", got)
	}
}

func TestErrorAlert(t *testing.T) {
	var buf bytes.Buffer
	if err := ErrorAlert("Bad <thing>", "Retry", "DB001").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	if !strings.Contains(html, "Bad &lt;thing&gt;") || !strings.Contains(html, "DB001") {
		t.Errorf("alert = %s", html)
	}
}
