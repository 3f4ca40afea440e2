package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// Catalog is the YAML screen catalog:
//
//	screens:
//	  - key: partners
//	    group: Sales
//	    label: Partners
//	    table: partners
//	    edit_path: /crm/partners/{id}/edit
//	    default_sort: {key: name, dir: asc}
//	    columns:
//	      - {key: name, header: Name, filterable: true}
//	      - {key: tier, header: Tier, type: enum, render: badge, enum: [gold, silver]}
type Catalog struct {
	Screens []CatalogScreen `yaml:"screens"`
}

// CatalogScreen is one screen entry of a catalog.
type CatalogScreen struct {
	Key         string          `yaml:"key"`
	Group       string          `yaml:"group"`
	Label       string          `yaml:"label"`
	Table       string          `yaml:"table"`
	IDColumn    string          `yaml:"id_column"`
	EditPath    string          `yaml:"edit_path"`
	ReadOnly    bool            `yaml:"read_only"`
	DefaultSort CatalogSort     `yaml:"default_sort"`
	Columns     []CatalogColumn `yaml:"columns"`
}

// CatalogSort is a screen's initial sort.
type CatalogSort struct {
	Key string `yaml:"key"`
	Dir string `yaml:"dir"`
}

// CatalogColumn is one column entry. Render names a built-in renderer.
type CatalogColumn struct {
	Key        string   `yaml:"key"`
	Header     string   `yaml:"header"`
	Type       string   `yaml:"type"`
	Filterable bool     `yaml:"filterable"`
	Render     string   `yaml:"render"`
	Enum       []string `yaml:"enum"`
}

// ParseCatalog decodes a catalog and converts it to screen definitions.
// Unknown YAML fields are rejected so typos surface at startup.
func ParseCatalog(r io.Reader) ([]ScreenDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	defs := make([]ScreenDefinition, 0, len(cat.Screens))
	for i, cs := range cat.Screens {
		def, err := cs.definition()
		if err != nil {
			return nil, fmt.Errorf("catalog screen %d (%s): %w", i+1, cs.Key, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (cs CatalogScreen) definition() (ScreenDefinition, error) {
	def := ScreenDefinition{
		Info: ScreenInfo{
			Key:      cs.Key,
			Group:    cs.Group,
			Label:    cs.Label,
			Table:    cs.Table,
			IDColumn: cs.IDColumn,
			EditPath: cs.EditPath,
			ReadOnly: cs.ReadOnly,
		},
		Columns: make([]datatable.Column, 0, len(cs.Columns)),
	}
	if def.Info.Table == "" {
		def.Info.Table = cs.Key
	}
	if def.Info.Group == "" {
		def.Info.Group = "Custom"
	}
	if cs.DefaultSort.Key != "" {
		def.Info.DefaultSort = datatable.SortState{
			Key:       cs.DefaultSort.Key,
			Direction: datatable.ParseDirection(cs.DefaultSort.Dir),
		}
	}

	for _, cc := range cs.Columns {
		ft, err := datatable.ParseFieldType(cc.Type)
		if err != nil {
			return ScreenDefinition{}, fmt.Errorf("column %s: %w", cc.Key, err)
		}
		render, err := RendererByName(cc.Render, cc.Enum)
		if err != nil {
			return ScreenDefinition{}, fmt.Errorf("column %s: %w", cc.Key, err)
		}
		def.Columns = append(def.Columns, datatable.Column{
			Key:        cc.Key,
			Header:     cc.Header,
			Render:     render,
			Filterable: cc.Filterable,
			Type:       ft,
			EnumValues: cc.Enum,
		})
	}

	if _, err := datatable.NewRegistry(def.Columns); err != nil {
		return ScreenDefinition{}, err
	}
	return def, nil
}

// LoadCatalogFile parses a catalog file and registers its screens. It returns
// the number of screens registered.
func LoadCatalogFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	defs, err := ParseCatalog(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for i, def := range defs {
		if err := TryRegister(def); err != nil {
			return i, fmt.Errorf("%s: %w", path, err)
		}
	}
	return len(defs), nil
}
