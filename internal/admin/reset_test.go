package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/salesdesk/internal/application"
	"github.com/JonMunkholm/salesdesk/internal/store"
)

type recordingSeeder struct {
	records []store.Record
	err     error
}

func (s *recordingSeeder) Seed(_ context.Context, records []store.Record) error {
	s.records = records
	return s.err
}

func TestResetDemo_Run(t *testing.T) {
	seeder := &recordingSeeder{}
	r := &ResetDemo{Store: seeder, Clients: 4, Seed: 7}

	n, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(store.DemoRecords(4, 7)), n)
	assert.Equal(t, store.DemoRecords(4, 7), seeder.records)
}

func TestResetDemo_DefaultClientCount(t *testing.T) {
	seeder := &recordingSeeder{}
	r := &ResetDemo{Store: seeder}

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	clients := 0
	for _, rec := range seeder.records {
		if rec.Table == "clients" {
			clients++
		}
	}
	assert.Equal(t, store.DefaultSeedClients, clients)
}

func TestResetDemo_ResetAll(t *testing.T) {
	ok := &ResetDemo{Store: &recordingSeeder{}, Clients: 2}
	msg := ok.ResetAll()()
	done, isDone := msg.(application.DoneMsg)
	require.True(t, isDone, "got %T", msg)
	assert.Contains(t, string(done), "Demo data reset")

	boom := errors.New("disk full")
	failing := &ResetDemo{Store: &recordingSeeder{err: boom}, Clients: 2}
	msg = failing.ResetAll()()
	errMsg, isErr := msg.(application.ErrMsg)
	require.True(t, isErr, "got %T", msg)
	assert.ErrorIs(t, errMsg.Err, boom)
}

func TestResetDemo_SQLite(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer st.Close()

	r := &ResetDemo{Store: st, Clients: 6, Seed: 1}
	_, err = r.Run(ctx)
	require.NoError(t, err)

	n, err := st.Count(ctx, "clients")
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)
}
