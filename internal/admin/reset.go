// Package admin provides administrative operations for database management.
package admin

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/salesdesk/internal/application"
	"github.com/JonMunkholm/salesdesk/internal/store"
)

// ResetTimeout is the maximum duration for database reset operations.
const ResetTimeout = 30 * time.Second

// Seeder replaces table contents with records.
type Seeder interface {
	Seed(ctx context.Context, records []store.Record) error
}

// ResetDemo reloads every table with generated demo rows.
type ResetDemo struct {
	Store   Seeder
	Clients int
	Seed    uint64
}

// Run replaces all rows with a fresh demo data set and returns the number
// of records written. This is a destructive operation.
func (r *ResetDemo) Run(ctx context.Context) (int, error) {
	n := r.Clients
	if n <= 0 {
		n = store.DefaultSeedClients
	}
	records := store.DemoRecords(n, r.Seed)
	if err := r.Store.Seed(ctx, records); err != nil {
		return 0, fmt.Errorf("reset demo data: %w", err)
	}
	return len(records), nil
}

// ResetAll runs the reset in the background for the terminal menu.
func (r *ResetDemo) ResetAll() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ResetTimeout)
		defer cancel()

		n, err := r.Run(ctx)
		if err != nil {
			return application.ErrMsg{Err: err}
		}
		return application.DoneMsg(fmt.Sprintf("Demo data reset (%d records)", n))
	}
}
