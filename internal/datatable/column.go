package datatable

import (
	"errors"
	"fmt"
	"strings"
)

// ActionsKey is the column key reserved for the synthesized actions column.
const ActionsKey = "actions"

var (
	// ErrEmptyColumnKey is returned when a column has no key.
	ErrEmptyColumnKey = errors.New("column key is empty")

	// ErrDuplicateColumn is returned when two columns share a key.
	ErrDuplicateColumn = errors.New("duplicate column key")

	// ErrReservedColumn is returned when a caller column uses ActionsKey.
	ErrReservedColumn = errors.New("column key is reserved")
)

// FieldType is the value type of a column. It decides which filter
// operators are legal for the column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
)

// String returns the lowercase name used in query strings and catalogs.
func (ft FieldType) String() string {
	switch ft {
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldBool:
		return "bool"
	default:
		return "text"
	}
}

// ParseFieldType converts a catalog type name to a FieldType.
// Unknown names are an error; the empty string is FieldText.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "string":
		return FieldText, nil
	case "enum":
		return FieldEnum, nil
	case "date":
		return FieldDate, nil
	case "numeric", "number", "currency":
		return FieldNumeric, nil
	case "bool", "boolean":
		return FieldBool, nil
	default:
		return FieldText, fmt.Errorf("unknown field type %q", s)
	}
}

// Cell is the rendered form of one value. Text is always set; Class and Href
// are hints a target may ignore (the terminal browser drops Href).
type Cell struct {
	Text  string `json:"text"`
	Class string `json:"class,omitempty"`
	Href  string `json:"href,omitempty"`
}

// CellFunc formats a single value. It receives the whole row so a cell can
// combine fields (e.g. a name linked to an email).
type CellFunc func(value any, row Row) Cell

// RenderKind tags a Renderer.
type RenderKind int

const (
	RenderRaw RenderKind = iota
	RenderCustom
)

// Renderer is the per-column cell strategy. The zero value renders raw.
type Renderer struct {
	Kind   RenderKind
	Format CellFunc
}

// Raw returns the default renderer.
func Raw() Renderer {
	return Renderer{Kind: RenderRaw}
}

// Custom returns a renderer that delegates to fn.
func Custom(fn CellFunc) Renderer {
	return Renderer{Kind: RenderCustom, Format: fn}
}

// Render formats value. A custom renderer without a Format func falls back
// to raw rendering.
func (r Renderer) Render(value any, row Row) Cell {
	if r.Kind == RenderCustom && r.Format != nil {
		return r.Format(value, row)
	}
	return Cell{Text: FormatValue(value)}
}

// Column describes one column of a table.
type Column struct {
	Key        string    // Row key looked up for this column
	Header     string    // Display header, also the CSV header
	Render     Renderer  // Cell strategy; zero value is raw
	Filterable bool      // Whether a column filter widget is offered
	Type       FieldType // Value type for filter operators
	EnumValues []string  // Choices offered by enum filter widgets
}

// Label returns the header, falling back to the key.
func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Key
}

// Registry is the immutable, ordered set of columns for one table.
type Registry struct {
	columns []Column
	index   map[string]int
}

// NewRegistry validates columns and returns a registry holding a copy of them.
func NewRegistry(columns []Column) (*Registry, error) {
	r := &Registry{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if strings.TrimSpace(col.Key) == "" {
			return nil, fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if col.Key == ActionsKey {
			return nil, fmt.Errorf("column %q: %w", col.Key, ErrReservedColumn)
		}
		if _, exists := r.index[col.Key]; exists {
			return nil, fmt.Errorf("column %q: %w", col.Key, ErrDuplicateColumn)
		}
		r.index[col.Key] = i
		col.EnumValues = append([]string(nil), col.EnumValues...)
		r.columns[i] = col
	}
	return r, nil
}

// Columns returns a copy of the columns in registry order.
func (r *Registry) Columns() []Column {
	out := make([]Column, len(r.columns))
	copy(out, r.columns)
	return out
}

// Lookup returns the column with the given key.
func (r *Registry) Lookup(key string) (Column, bool) {
	i, ok := r.index[key]
	if !ok {
		return Column{}, false
	}
	return r.columns[i], true
}

// Len returns the number of caller columns (the actions column is not counted).
func (r *Registry) Len() int {
	return len(r.columns)
}
