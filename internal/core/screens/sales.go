package screens

import (
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func init() {
	registerClients()
	registerLeads()
	registerOpportunities()
}

func registerClients() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:         "clients",
			Group:       GroupSales,
			Label:       "Clients",
			Table:       "clients",
			EditPath:    "/crm/clients/{id}/edit",
			DefaultSort: datatable.SortState{Key: "name", Direction: datatable.Asc},
		},
		Columns: []datatable.Column{
			{Key: "name", Header: "Name", Filterable: true},
			{Key: "industry", Header: "Industry", Type: datatable.FieldEnum, EnumValues: Industries, Filterable: true},
			{Key: "city", Header: "City", Filterable: true},
			{Key: "annual_revenue", Header: "Annual Revenue", Type: datatable.FieldNumeric, Render: core.Currency(), Filterable: true},
			{Key: "status", Header: "Status", Type: datatable.FieldEnum, EnumValues: ClientStatuses, Filterable: true,
				Render: core.Badge(map[string]string{
					"Active":   "bg-green-100 text-green-800",
					"Prospect": "bg-blue-100 text-blue-800",
					"Churned":  "bg-red-100 text-red-800",
				})},
			{Key: "created_at", Header: "Created", Type: datatable.FieldDate, Render: core.Date(), Filterable: true},
			{Key: "contact_email", Header: "Contact", Render: core.Email()},
		},
	})
}

func registerLeads() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:         "leads",
			Group:       GroupSales,
			Label:       "Leads",
			Table:       "leads",
			EditPath:    "/crm/leads/{id}/edit",
			DefaultSort: datatable.SortState{Key: "created_at", Direction: datatable.Desc},
		},
		Columns: []datatable.Column{
			{Key: "name", Header: "Name", Filterable: true},
			{Key: "company", Header: "Company", Filterable: true},
			{Key: "email", Header: "Email", Render: core.Email()},
			{Key: "source", Header: "Source", Type: datatable.FieldEnum, EnumValues: LeadSources, Filterable: true},
			{Key: "score", Header: "Score", Type: datatable.FieldNumeric, Filterable: true},
			{Key: "status", Header: "Status", Type: datatable.FieldEnum, EnumValues: LeadStatuses, Filterable: true,
				Render: core.Badge(map[string]string{
					"New":          "bg-blue-100 text-blue-800",
					"Contacted":    "bg-amber-100 text-amber-800",
					"Qualified":    "bg-green-100 text-green-800",
					"Disqualified": "bg-gray-100 text-gray-800",
				})},
			{Key: "created_at", Header: "Created", Type: datatable.FieldDate, Render: core.Date(), Filterable: true},
		},
	})
}

func registerOpportunities() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:         "opportunities",
			Group:       GroupSales,
			Label:       "Opportunities",
			Table:       "opportunities",
			EditPath:    "/crm/opportunities/{id}/edit",
			DefaultSort: datatable.SortState{Key: "close_date", Direction: datatable.Asc},
		},
		Columns: []datatable.Column{
			{Key: "name", Header: "Opportunity", Filterable: true},
			{Key: "client", Header: "Client", Filterable: true},
			{Key: "stage", Header: "Stage", Type: datatable.FieldEnum, EnumValues: OpportunityStages, Filterable: true,
				Render: core.Badge(map[string]string{
					"Discovery":   "bg-blue-100 text-blue-800",
					"Proposal":    "bg-purple-100 text-purple-800",
					"Negotiation": "bg-amber-100 text-amber-800",
					"Closed Won":  "bg-green-100 text-green-800",
					"Closed Lost": "bg-red-100 text-red-800",
				})},
			{Key: "amount", Header: "Amount", Type: datatable.FieldNumeric, Render: core.Currency(), Filterable: true},
			{Key: "probability", Header: "Probability", Type: datatable.FieldNumeric, Render: core.Percent(), Filterable: true},
			{Key: "close_date", Header: "Close Date", Type: datatable.FieldDate, Render: core.Date(), Filterable: true},
			{Key: "owner", Header: "Owner", Filterable: true},
		},
	})
}
