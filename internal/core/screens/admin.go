package screens

import (
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func init() {
	registerUsers()
}

// Users are managed by the identity provider, so the screen is read-only.
func registerUsers() {
	core.Register(core.ScreenDefinition{
		Info: core.ScreenInfo{
			Key:         "users",
			Group:       GroupAdmin,
			Label:       "Users",
			Table:       "users",
			ReadOnly:    true,
			DefaultSort: datatable.SortState{Key: "name", Direction: datatable.Asc},
		},
		Columns: []datatable.Column{
			{Key: "name", Header: "Name", Filterable: true},
			{Key: "email", Header: "Email", Render: core.Email()},
			{Key: "role", Header: "Role", Type: datatable.FieldEnum, EnumValues: UserRoles, Filterable: true},
			{Key: "active", Header: "Active", Type: datatable.FieldBool, Filterable: true},
			{Key: "last_login", Header: "Last Login", Type: datatable.FieldDate, Render: core.Date()},
		},
	})
}
