package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

func openMemory(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seeded(t *testing.T, nClients int) *SQLite {
	t.Helper()
	s := openMemory(t)
	require.NoError(t, s.Seed(context.Background(), DemoRecords(nClients, 7)))
	return s
}

func TestSelectSQL(t *testing.T) {
	stmt, err := selectSQL(core.SnapshotQuery{Table: "clients", Columns: []string{"id", "name"}, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", "name" FROM "clients" LIMIT 5`, stmt)

	stmt, err = selectSQL(core.SnapshotQuery{Table: `we"ird`})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "we""ird"`, stmt)

	_, err = selectSQL(core.SnapshotQuery{})
	assert.Error(t, err)
}

func TestInsertSQL(t *testing.T) {
	assert.Equal(t, `INSERT INTO "rfps" ("id", "title") VALUES (?, ?)`, insertSQL("rfps", []string{"id", "title"}))
}

func TestNormalize(t *testing.T) {
	id := [16]byte{0x12, 0x3e, 0x45, 0x67, 0xe8, 0x9b, 0x12, 0xd3, 0xa4, 0x56, 0x42, 0x66, 0x14, 0x17, 0x40, 0x00}
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", normalize(id))
	assert.Equal(t, "abc", normalize([]byte("abc")))
	assert.Equal(t, int64(7), normalize(int32(7)))
	assert.Nil(t, normalize(nil))

	local := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, time.UTC, normalize(local).(time.Time).Location())
}

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	s := openMemory(t)
	for _, table := range []string{"clients", "leads", "opportunities", "rfps", "sows", "users"} {
		n, err := s.Count(context.Background(), table)
		require.NoError(t, err, table)
		assert.Zero(t, n, table)
	}
}

func TestSQLite_SeedAndCount(t *testing.T) {
	s := seeded(t, 10)
	ctx := context.Background()

	want := map[string]int64{"clients": 10, "leads": 20, "opportunities": 20, "rfps": 5, "sows": 5, "users": 8}
	for table, n := range want {
		got, err := s.Count(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, n, got, table)
	}

	// Seeding again replaces rather than appends.
	require.NoError(t, s.Seed(ctx, DemoRecords(4, 7)))
	got, err := s.Count(ctx, "clients")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestSQLite_Rows(t *testing.T) {
	s := seeded(t, 10)

	rows, err := s.Rows(context.Background(), core.SnapshotQuery{
		Table:   "clients",
		Columns: []string{"id", "name", "annual_revenue"},
		Limit:   3,
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, row := range rows {
		assert.Len(t, row, 3)
		assert.IsType(t, "", row["id"])
		assert.IsType(t, "", row["name"])
		switch row["annual_revenue"].(type) {
		case int64, float64:
		default:
			t.Errorf("annual_revenue = %T, want a number", row["annual_revenue"])
		}
	}
}

func TestSQLite_Delete(t *testing.T) {
	s := seeded(t, 3)
	ctx := context.Background()
	id := demoID("clients", 1)

	require.NoError(t, s.Delete(ctx, "clients", "id", id))
	n, err := s.Count(ctx, "clients")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	err = s.Delete(ctx, "clients", "id", id)
	assert.ErrorIs(t, err, core.ErrRowNotFound)
}

func TestSQLite_MissingTable(t *testing.T) {
	s := openMemory(t)
	_, err := s.Count(context.Background(), "widgets")
	require.Error(t, err)
	assert.Equal(t, "DB004", core.MapError(err).Code)
}

func TestDemoRecords_Deterministic(t *testing.T) {
	a := DemoRecords(5, 42)
	b := DemoRecords(5, 42)
	c := DemoRecords(5, 43)

	require.Equal(t, len(a), len(b))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Ids depend only on table and position.
	assert.Equal(t, a[0].Values["id"], c[0].Values["id"])
}

func TestDemoRecords_Shape(t *testing.T) {
	records := DemoRecords(0, 1)
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Table]++
		if r.Table == "opportunities" {
			p := r.Values["probability"].(int64)
			assert.True(t, p >= 0 && p <= 100)
		}
	}
	assert.Equal(t, DefaultSeedClients, counts["clients"])
	assert.Equal(t, 8, counts["users"])
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestOpen_SQLite(t *testing.T) {
	src, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer src.Close()

	_, ok := src.(*SQLite)
	assert.True(t, ok)
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "crm", DatabaseName("postgres://u:p@localhost:5432/crm?sslmode=disable"))
}

// The built-in screens read from the schema the store creates.
func TestSQLite_ServesBuiltinScreens(t *testing.T) {
	s := seeded(t, 12)
	svc := core.NewService(s, core.ServiceConfig{})
	ctx := context.Background()

	for _, info := range svc.ListScreens() {
		table, _, err := svc.Open(ctx, info.Key, core.Hooks{})
		require.NoError(t, err, info.Key)
		assert.NotEmpty(t, table.Data(), info.Key)
	}

	table, _, err := svc.Open(ctx, "clients", core.Hooks{})
	require.NoError(t, err)

	state := datatable.NewViewState().
		WithSort("annual_revenue", datatable.Desc).
		WithFilter("status", datatable.FilterValue{Op: datatable.OpEquals, Value: "Active"})
	view := table.Render(state)
	for _, r := range view.Rows {
		assert.Equal(t, "Active", r.Row["status"])
	}

	for _, row := range table.Data() {
		_, isTime := row["created_at"].(time.Time)
		assert.True(t, isTime, "created_at = %T", row["created_at"])
	}

	if len(view.Rows) > 0 {
		id := view.Rows[0].ID
		require.NoError(t, table.DispatchByID(state, id, datatable.ActionDelete))
		_, found := findRow(t, s, "clients", id)
		assert.False(t, found)
	}
}

func findRow(t *testing.T, s *SQLite, table, id string) (datatable.Row, bool) {
	t.Helper()
	rows, err := s.Rows(context.Background(), core.SnapshotQuery{Table: table})
	require.NoError(t, err)
	for _, r := range rows {
		if r["id"] == id {
			return r, true
		}
	}
	return nil, false
}
