package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

var columns = []datatable.Column{
	{Key: "name", Header: "Name"},
	{Key: "amount", Header: "Amount", Type: datatable.FieldNumeric},
	{Key: "won", Header: "Won", Type: datatable.FieldBool},
	{Key: "note"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", CSV, false},
		{"csv", CSV, false},
		{"XLSX", XLSX, false},
		{" excel ", XLSX, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in, CSV)
		if tt.wantErr {
			assert.ErrorContains(t, err, "unsupported export format", tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatMetadata(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "clients_1700000000123.xlsx", XLSX.Filename("clients", now))
	assert.Equal(t, "export_1700000000123.csv", CSV.Filename("", now))
	assert.Contains(t, CSV.ContentType(), "text/csv")
	assert.Contains(t, XLSX.ContentType(), "spreadsheetml")
}

func TestExporter_CSVUsesTableDefault(t *testing.T) {
	assert.Nil(t, Exporter(CSV, &bytes.Buffer{}, columns, ""))
}

func TestWriteXLSX(t *testing.T) {
	rows := []datatable.Row{
		{"name": "Acme, Inc.", "amount": 1250.5, "won": true, "note": nil},
		{"name": "Globex", "amount": int64(300), "won": false, "note": "said \"maybe\""},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows, columns, "Clients"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Clients"}, f.GetSheetList())

	got, err := f.GetRows("Clients")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Name", "Amount", "Won", "note"}, got[0])
	assert.Equal(t, "Acme, Inc.", got[1][0])
	assert.Equal(t, "1250.5", got[1][1])
	assert.Equal(t, "TRUE", got[1][2])
	assert.Equal(t, `said "maybe"`, got[2][3])
}

func TestWriteXLSX_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil, columns, ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// The table hands the override its filtered, unpaginated rows.
func TestExporter_ThroughTable(t *testing.T) {
	rows := make([]datatable.Row, 23)
	for i := range rows {
		name := "Other"
		if i%3 == 0 {
			name = "Match"
		}
		rows[i] = datatable.Row{"id": i, "name": name, "amount": float64(i)}
	}

	var buf bytes.Buffer
	table, err := datatable.New(columns, rows, datatable.Options{
		OnExport: Exporter(XLSX, &buf, columns, "Rows"),
	})
	require.NoError(t, err)

	state := datatable.NewViewState().WithSearch("match").GoToPage(2)
	require.NoError(t, table.Export(nil, state))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Rows")
	require.NoError(t, err)
	assert.Len(t, got, 9) // header + 8 matches
}
