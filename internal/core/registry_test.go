package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// withScreens resets the global registry to defs for the duration of a test.
func withScreens(t *testing.T, defs ...ScreenDefinition) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
	for _, def := range defs {
		if err := TryRegister(def); err != nil {
			t.Fatalf("TryRegister(%s) error = %v", def.Info.Key, err)
		}
	}
}

func screen(key, group string) ScreenDefinition {
	return ScreenDefinition{
		Info:    ScreenInfo{Key: key, Group: group, Label: strings.ToUpper(key), Table: key},
		Columns: []datatable.Column{{Key: "name", Header: "Name"}},
	}
}

func TestTryRegister_Errors(t *testing.T) {
	withScreens(t, screen("clients", "Sales"))

	tests := []struct {
		name    string
		def     ScreenDefinition
		wantErr error
		wantMsg string
	}{
		{name: "empty key", def: ScreenDefinition{Info: ScreenInfo{Table: "x"}}, wantMsg: "empty key"},
		{name: "empty table", def: ScreenDefinition{Info: ScreenInfo{Key: "x"}}, wantMsg: "empty table"},
		{name: "already registered", def: screen("clients", "Sales"), wantMsg: "already registered"},
		{
			name: "reserved column",
			def: ScreenDefinition{
				Info:    ScreenInfo{Key: "x", Table: "x"},
				Columns: []datatable.Column{{Key: datatable.ActionsKey}},
			},
			wantErr: ErrReservedColumn,
		},
		{
			name: "duplicate column",
			def: ScreenDefinition{
				Info:    ScreenInfo{Key: "y", Table: "y"},
				Columns: []datatable.Column{{Key: "a"}, {Key: "a"}},
			},
			wantErr: ErrDuplicateColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TryRegister(tt.def)
			if err == nil {
				t.Fatal("TryRegister() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("TryRegister() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("TryRegister() error = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	withScreens(t, screen("clients", "Sales"))

	defer func() {
		if recover() == nil {
			t.Error("Register() should panic on duplicate key")
		}
	}()
	Register(screen("clients", "Sales"))
}

func TestRegistryOrdering(t *testing.T) {
	withScreens(t,
		screen("users", "Admin"),
		screen("sows", "Delivery"),
		screen("leads", "Sales"),
		screen("clients", "Sales"),
	)

	var keys []string
	for _, def := range All() {
		keys = append(keys, def.Info.Key)
	}
	if got, want := strings.Join(keys, ","), "users,sows,clients,leads"; got != want {
		t.Errorf("All() keys = %s, want %s", got, want)
	}

	if got, want := strings.Join(Groups(), ","), "Admin,Delivery,Sales"; got != want {
		t.Errorf("Groups() = %s, want %s", got, want)
	}

	sales := ByGroup("Sales")
	if len(sales) != 2 || sales[0].Info.Key != "clients" {
		t.Errorf("ByGroup(Sales) = %+v, want clients then leads", sales)
	}

	if ScreenCount() != 4 {
		t.Errorf("ScreenCount() = %d, want 4", ScreenCount())
	}
}

func TestScreenDefinitionHelpers(t *testing.T) {
	def := ScreenDefinition{
		Info: ScreenInfo{Key: "clients", Table: "clients", EditPath: "/crm/clients/{id}/edit"},
		Columns: []datatable.Column{
			{Key: "name"}, {Key: "id"}, {Key: "city"},
		},
	}

	if got := def.IDColumn(); got != "id" {
		t.Errorf("IDColumn() = %q, want %q", got, "id")
	}
	if got := strings.Join(def.SelectColumns(), ","); got != "id,name,city" {
		t.Errorf("SelectColumns() = %s, want id,name,city", got)
	}
	if got := def.EditURL("42"); got != "/crm/clients/42/edit" {
		t.Errorf("EditURL() = %q", got)
	}
	if got := def.EditURL("a/b #1"); got != "/crm/clients/a%2Fb%20%231/edit" {
		t.Errorf("EditURL() with reserved chars = %q", got)
	}

	def.Info.EditPath = ""
	if got := def.EditURL("42"); got != "" {
		t.Errorf("EditURL() without path = %q, want empty", got)
	}
}
