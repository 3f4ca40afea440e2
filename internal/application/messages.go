package application

// Messages returned by background commands.
type (
	// DoneMsg reports a finished command with a status line.
	DoneMsg string

	// ErrMsg reports a failed command.
	ErrMsg struct{ Err error }
)

type openScreenMsg struct{ key string }

type backMsg struct{}

// reloadedMsg carries a status after the table snapshot was replaced.
type reloadedMsg struct{ status string }
