// Package core is the application layer between the list-view engine and its
// hosts.
//
// It owns the screen registry, loads row snapshots through a [RowSource] and
// builds [datatable.Table] values wired with delete, edit and export
// behavior. The web server, the terminal browser and the CLI all go through
// [Service]; none of them sort, search, filter or paginate rows themselves.
//
// # Screens
//
// Built-in screens register themselves at init time from package screens.
// Additional screens can be declared in a YAML catalog and registered with
// [LoadCatalogFile]:
//
//	core.Register(core.ScreenDefinition{
//	    Info: core.ScreenInfo{Key: "clients", Group: "Sales", Label: "Clients", Table: "clients"},
//	    Columns: []datatable.Column{
//	        {Key: "name", Header: "Name", Filterable: true},
//	        {Key: "annual_revenue", Header: "Revenue", Type: datatable.FieldNumeric, Render: core.Currency()},
//	    },
//	})
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Codes
// are grouped by family: DB0xx for the row source, VIEW0xx for screens and
// row actions, EXP0xx for exports, ERR000 for anything unrecognized.
package core
