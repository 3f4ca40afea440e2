package datatable

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_Quoting(t *testing.T) {
	cols := []Column{{Key: "name", Header: "Client, Name"}, {Key: "note"}}
	rows := []Row{
		{"name": `Acme "Rockets"`, "note": "line1\nline2"},
		{"name": "Plain", "note": nil},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, cols))

	want := "\"Client, Name\",note\n" +
		"\"Acme \"\"Rockets\"\"\",\"line1\nline2\"\n" +
		"Plain,\n"
	assert.Equal(t, want, buf.String())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Acme "Rockets"`, records[1][0])
}

func TestWriteCSV_RawValuesNotRendered(t *testing.T) {
	cols := []Column{{
		Key:    "amount",
		Header: "Amount",
		Render: Custom(func(v any, _ Row) Cell { return Cell{Text: "$$$"} }),
	}}

	out, err := ExportCSV([]Row{{"amount": 12.5}}, cols)
	require.NoError(t, err)
	assert.Equal(t, "Amount\n12.5\n", out)
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	out, err := ExportCSV(nil, []Column{{Key: "a"}, {Key: "b", Header: "B"}})
	require.NoError(t, err)
	assert.Equal(t, "a,B\n", out)
}

func TestDefaultFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "export_1700000000123.csv", DefaultFilename(now, "csv"))
}

func TestFormatValue(t *testing.T) {
	var nilTime *time.Time
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	n := 42

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"nil pointer", nilTime, ""},
		{"string", "x", "x"},
		{"bool", false, "false"},
		{"int", 7, "7"},
		{"float", 1200.5, "1200.5"},
		{"date", day, "2024-05-06"},
		{"timestamp", ts, "2024-05-06T07:08:09Z"},
		{"zero time", time.Time{}, ""},
		{"pointer", &n, "42"},
		{"slice", []int{1, 2}, "[1 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
