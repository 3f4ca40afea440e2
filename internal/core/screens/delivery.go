package screens

import (
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func init() {
	registerRFPs()
	registerSOWs()
}

func registerRFPs() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:         "rfps",
			Group:       GroupDelivery,
			Label:       "RFPs",
			Table:       "rfps",
			DefaultSort: datatable.SortState{Key: "due_date", Direction: datatable.Asc},
		},
		Columns: []datatable.Column{
			{Key: "title", Header: "Title", Filterable: true},
			{Key: "client", Header: "Client", Filterable: true},
			{Key: "status", Header: "Status", Type: datatable.FieldEnum, EnumValues: RFPStatuses, Filterable: true,
				Render: core.Badge(map[string]string{
					"Draft":     "bg-gray-100 text-gray-800",
					"Submitted": "bg-blue-100 text-blue-800",
					"Won":       "bg-green-100 text-green-800",
					"Lost":      "bg-red-100 text-red-800",
				})},
			{Key: "due_date", Header: "Due", Type: datatable.FieldDate, Render: core.Date(), Filterable: true},
			{Key: "value", Header: "Value", Type: datatable.FieldNumeric, Render: core.Currency(), Filterable: true},
		},
	})
}

func registerSOWs() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:      "sows",
			Group:    GroupDelivery,
			Label:    "Statements of Work",
			Table:    "sows",
			EditPath: "/delivery/sows/{id}/edit",
		},
		Columns: []datatable.Column{
			{Key: "title", Header: "Title", Filterable: true},
			{Key: "client", Header: "Client", Filterable: true},
			{Key: "status", Header: "Status", Type: datatable.FieldEnum, EnumValues: SOWStatuses, Filterable: true,
				Render: core.Badge(map[string]string{
					"Draft":     "bg-gray-100 text-gray-800",
					"Signed":    "bg-blue-100 text-blue-800",
					"Active":    "bg-green-100 text-green-800",
					"Completed": "bg-purple-100 text-purple-800",
				})},
			{Key: "start_date", Header: "Start", Type: datatable.FieldDate, Render: core.Date(), Filterable: true},
			{Key: "end_date", Header: "End", Type: datatable.FieldDate, Render: core.Date(), Filterable: true},
			{Key: "value", Header: "Value", Type: datatable.FieldNumeric, Render: core.Currency(), Filterable: true},
		},
	})
}
