package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// run executes the root command against an environment map.
func run(t *testing.T, vars map[string]string, args ...string) (string, error) {
	t.Helper()
	opts := &RootOptions{Getenv: func(k string) string { return vars[k] }}
	cmd := newRootCommand(opts)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// seeded returns an environment pointing at a fresh SQLite file with demo
// data for five clients.
func seeded(t *testing.T) map[string]string {
	t.Helper()
	vars := map[string]string{
		"DB_DRIVER":   "sqlite",
		"SQLITE_PATH": filepath.Join(t.TempDir(), "desk.db"),
		"LOG_LEVEL":   "error",
	}
	out, err := run(t, vars, "seed", "--clients", "5", "--seed", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Seeded")
	return vars
}

func TestOverrides(t *testing.T) {
	tests := []struct {
		name string
		opts RootOptions
		want map[string]string
	}{
		{
			name: "sqlite path",
			opts: RootOptions{DB: "desk.db"},
			want: map[string]string{"DB_DRIVER": config.DriverSQLite, "SQLITE_PATH": "desk.db"},
		},
		{
			name: "postgres url",
			opts: RootOptions{DB: "postgres://u@localhost/crm"},
			want: map[string]string{"DB_DRIVER": config.DriverPostgres, "DATABASE_URL": "postgres://u@localhost/crm"},
		},
		{
			name: "explicit driver wins",
			opts: RootOptions{DB: "postgres://x", Driver: config.DriverSQLite},
			want: map[string]string{"DB_DRIVER": config.DriverSQLite, "SQLITE_PATH": "postgres://x"},
		},
		{
			name: "catalog only",
			opts: RootOptions{Catalog: "screens.yaml"},
			want: map[string]string{"SCREENS_CATALOG": "screens.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.overrides()
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
		})
	}
}

func TestInvalidDriver(t *testing.T) {
	_, err := run(t, nil, "--driver", "oracle", "screens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid driver")
}

func TestScreens(t *testing.T) {
	vars := seeded(t)

	out, err := run(t, vars, "screens")
	require.NoError(t, err)
	assert.Contains(t, out, "clients")
	assert.Contains(t, out, "Users (read-only)")

	out, err = run(t, vars, "screens", "--json")
	require.NoError(t, err)

	var rows []ScreenRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Key] = r.Rows
	}
	assert.EqualValues(t, 5, counts["clients"])
	assert.EqualValues(t, 10, counts["leads"])
	assert.EqualValues(t, 8, counts["users"])
}

func decodeView(t *testing.T, out string) datatable.View {
	t.Helper()
	var v datatable.View
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	return v
}

func TestView(t *testing.T) {
	vars := seeded(t)

	out, err := run(t, vars, "view", "leads", "--json")
	require.NoError(t, err)
	v := decodeView(t, out)
	assert.Len(t, v.Rows, 10)
	assert.Equal(t, 10, v.TotalRows)
	assert.Equal(t, "created_at", v.State.Sort.Key, "default sort applies")

	out, err = run(t, vars, "view", "leads", "--sort", "score", "--desc", "--page", "9", "--json")
	require.NoError(t, err)
	v = decodeView(t, out)
	assert.Equal(t, 1, v.Page.Number, "page is clamped")
	assert.Equal(t, datatable.Desc, v.State.Sort.Direction)

	out, err = run(t, vars, "view", "clients")
	require.NoError(t, err)
	assert.Contains(t, out, "Clients")
	assert.Contains(t, out, "Name (asc)")
	assert.Contains(t, out, "Page 1 of 1, showing 1 to 5 of 5")
}

func TestView_Filters(t *testing.T) {
	vars := seeded(t)

	out, err := run(t, vars, "view", "clients", "--filter", "annual_revenue=gte:0", "--json")
	require.NoError(t, err)
	assert.Equal(t, 5, decodeView(t, out).Page.TotalRows)

	out, err = run(t, vars, "view", "clients", "--search", "no-such-client-anywhere")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found")
	assert.Contains(t, out, "(filtered from 5)")

	_, err = run(t, vars, "view", "clients", "--filter", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
}

func TestView_UnknownScreen(t *testing.T) {
	vars := seeded(t)
	_, err := run(t, vars, "view", "widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widgets")
}

func TestExport_CSV(t *testing.T) {
	vars := seeded(t)
	path := filepath.Join(t.TempDir(), "clients.csv")

	out, err := run(t, vars, "export", "clients", "--format", "csv", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported Clients")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "Name,"))
}

func TestExport_Stdout(t *testing.T) {
	vars := seeded(t)

	out, err := run(t, vars, "export", "users", "-o", "-", "--filter", "role=eq:Nobody")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "header only")
}

func TestExport_XLSX(t *testing.T) {
	vars := seeded(t)
	path := filepath.Join(t.TempDir(), "opps.xlsx")

	_, err := run(t, vars, "export", "opportunities", "--format", "xlsx", "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Export")
	require.NoError(t, err)
	assert.Len(t, rows, 11)
}

func TestExport_BadFormat(t *testing.T) {
	vars := seeded(t)
	_, err := run(t, vars, "export", "clients", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestSeed_IsRepeatable(t *testing.T) {
	vars := seeded(t)

	first, err := run(t, vars, "view", "clients", "--json")
	require.NoError(t, err)

	_, err = run(t, vars, "seed", "--clients", "5", "--seed", "3")
	require.NoError(t, err)

	second, err := run(t, vars, "view", "clients", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, first, second)
}

func TestCatalog(t *testing.T) {
	vars := seeded(t)
	catalog := filepath.Join(t.TempDir(), "screens.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`
screens:
  - key: cli_client_names
    group: Reports
    label: Client Names
    table: clients
    columns:
      - key: name
        header: Name
      - key: city
        header: City
        filterable: true
`), 0o644))

	out, err := run(t, vars, "--catalog", catalog, "view", "cli_client_names", "--json")
	require.NoError(t, err)
	v := decodeView(t, out)
	assert.Len(t, v.Headers, 3, "two columns plus actions")
	assert.Equal(t, 5, v.TotalRows)
}
