package screens

import (
	"testing"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func TestBuiltinScreensRegistered(t *testing.T) {
	want := map[string]string{
		"clients":       GroupSales,
		"leads":         GroupSales,
		"opportunities": GroupSales,
		"rfps":          GroupDelivery,
		"sows":          GroupDelivery,
		"users":         GroupAdmin,
	}

	for key, group := range want {
		def, ok := core.Get(key)
		if !ok {
			t.Errorf("screen %s not registered", key)
			continue
		}
		if def.Info.Group != group {
			t.Errorf("%s group = %s, want %s", key, def.Info.Group, group)
		}
		if def.Info.Table == "" {
			t.Errorf("%s has no table", key)
		}
	}

	if got := core.Groups(); len(got) != 3 {
		t.Errorf("Groups() = %v, want 3 groups", got)
	}
}

func TestScreenColumns(t *testing.T) {
	for _, def := range core.All() {
		reg, err := datatable.NewRegistry(def.Columns)
		if err != nil {
			t.Errorf("%s columns invalid: %v", def.Info.Key, err)
			continue
		}
		if s := def.Info.DefaultSort.Key; s != "" {
			if _, ok := reg.Lookup(s); !ok {
				t.Errorf("%s default sort %q is not a column", def.Info.Key, s)
			}
		}
		for _, col := range def.Columns {
			if col.Type == datatable.FieldEnum && len(col.EnumValues) == 0 {
				t.Errorf("%s.%s is an enum without values", def.Info.Key, col.Key)
			}
		}
	}
}

func TestUsersReadOnly(t *testing.T) {
	def, ok := core.Get("users")
	if !ok {
		t.Fatal("users not registered")
	}
	if !def.Info.ReadOnly {
		t.Error("users should be read-only")
	}
	if def.EditURL("42") != "" {
		t.Errorf("users EditURL = %q, want empty", def.EditURL("42"))
	}
}

func TestOpportunityRendering(t *testing.T) {
	def, _ := core.Get("opportunities")
	row := datatable.Row{"id": "o1", "amount": 1500.0, "probability": 40.0, "stage": "Closed Won"}

	table, err := datatable.New(def.Columns, []datatable.Row{row}, datatable.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cells := table.Render(datatable.NewViewState()).Rows[0].Cells

	byKey := make(map[string]datatable.Cell)
	for i, col := range def.Columns {
		byKey[col.Key] = cells[i]
	}
	if byKey["amount"].Text != "$1,500.00" {
		t.Errorf("amount = %q", byKey["amount"].Text)
	}
	if byKey["probability"].Text != "40%" {
		t.Errorf("probability = %q", byKey["probability"].Text)
	}
	if byKey["close_date"].Text != "" {
		t.Errorf("missing close_date = %q, want empty", byKey["close_date"].Text)
	}
	if def.EditURL("o1") != "/crm/opportunities/o1/edit" {
		t.Errorf("EditURL = %q", def.EditURL("o1"))
	}
}
