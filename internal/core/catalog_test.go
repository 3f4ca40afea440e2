package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

const partnersCatalog = `
screens:
  - key: partners
    group: Sales
    label: Partners
    edit_path: /crm/partners/{id}/edit
    default_sort: {key: name, dir: desc}
    columns:
      - {key: name, header: Name, filterable: true}
      - {key: tier, header: Tier, type: enum, render: badge, enum: [gold, silver], filterable: true}
      - {key: revenue, header: Revenue, type: currency, render: currency}
      - {key: signed_on, header: Signed, type: date, render: date}
`

func TestParseCatalog(t *testing.T) {
	defs, err := ParseCatalog(strings.NewReader(partnersCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("ParseCatalog() returned %d screens, want 1", len(defs))
	}

	def := defs[0]
	if def.Info.Table != "partners" {
		t.Errorf("Table = %q, want key as default", def.Info.Table)
	}
	if def.Info.DefaultSort != (datatable.SortState{Key: "name", Direction: datatable.Desc}) {
		t.Errorf("DefaultSort = %+v", def.Info.DefaultSort)
	}
	if len(def.Columns) != 4 {
		t.Fatalf("Columns = %d, want 4", len(def.Columns))
	}

	tier := def.Columns[1]
	if tier.Type != datatable.FieldEnum || tier.Render.Kind != datatable.RenderCustom {
		t.Errorf("tier column = %+v, want enum badge", tier)
	}
	if cell := tier.Render.Render("gold", nil); !strings.Contains(cell.Class, "bg-blue-100") {
		t.Errorf("gold badge class = %q, want first palette color", cell.Class)
	}
	if def.Columns[2].Type != datatable.FieldNumeric {
		t.Errorf("revenue type = %v, want numeric", def.Columns[2].Type)
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown field",
			yaml:    "screens:\n  - key: a\n    colums: []\n",
			wantMsg: "colums",
		},
		{
			name:    "unknown type",
			yaml:    "screens:\n  - key: a\n    columns:\n      - {key: x, type: money}\n",
			wantMsg: "unknown field type",
		},
		{
			name:    "unknown renderer",
			yaml:    "screens:\n  - key: a\n    columns:\n      - {key: x, render: sparkline}\n",
			wantMsg: "unknown renderer",
		},
		{
			name:    "duplicate column",
			yaml:    "screens:\n  - key: a\n    columns:\n      - {key: x}\n      - {key: x}\n",
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "reserved column",
			yaml:    "screens:\n  - key: a\n    columns:\n      - {key: actions}\n",
			wantErr: ErrReservedColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("ParseCatalog() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseCatalog() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ParseCatalog() error = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	defs, err := ParseCatalog(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCatalog(empty) error = %v", err)
	}
	if len(defs) != 0 {
		t.Errorf("ParseCatalog(empty) = %d screens, want 0", len(defs))
	}
}

func TestLoadCatalogFile(t *testing.T) {
	withScreens(t)

	path := filepath.Join(t.TempDir(), "screens.yaml")
	if err := os.WriteFile(path, []byte(partnersCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile() error = %v", err)
	}
	if n != 1 {
		t.Errorf("LoadCatalogFile() = %d, want 1", n)
	}
	if _, ok := Get("partners"); !ok {
		t.Error("partners screen not registered")
	}

	if _, err := LoadCatalogFile(path); err == nil {
		t.Error("loading the same catalog twice should fail on duplicate keys")
	}
	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadCatalogFile() on a missing file should fail")
	}
}
