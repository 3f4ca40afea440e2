// Package datatable is the list-view engine shared by every SalesDesk screen.
//
// A screen hands the engine three things: an ordered set of column
// definitions, a snapshot of rows, and the callbacks it wants wired to the
// per-row action buttons. The engine owns no I/O and no view state of its own;
// callers keep a [ViewState] (sort, search, column filters, page) and pass it
// to the pure stage functions or to [Table.Render].
//
// # Pipeline
//
// Every render runs the same ordered stages:
//
//  1. [Sort] orders a copy of the snapshot by one column, nil values last.
//  2. [Search] keeps rows where any column contains the search term.
//  3. [ApplyFilters] keeps rows that satisfy every active column filter.
//  4. [Paginate] slices the result into pages of [DefaultPageSize] rows and
//     computes the page-button window.
//
// Export ([WriteCSV], [Table.Export]) consumes the output of stage 3 so a user
// exporting "everything that matches" gets every match, not the visible page.
//
// # Rendering
//
// Columns carry a tagged [Renderer]: raw values are formatted with
// [FormatValue], custom renderers return a [Cell]. A Cell is plain data, so the
// HTML templates, the terminal browser and the CSV writer all draw the same
// result.
//
// # Actions
//
// When any of OnView, OnEdit, OnDelete or CustomActions is set in [Options],
// the engine appends a synthetic "actions" column. Actions are bound to the
// exact row object on the rendered page; see [Table.Dispatch].
package datatable
