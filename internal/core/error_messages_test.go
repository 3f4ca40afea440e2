package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "wrapped unknown screen",
			err:         fmt.Errorf("open screen %q: %w", "widgets", ErrUnknownScreen),
			wantCode:    "VIEW001",
			wantMessage: "This screen does not exist",
		},
		{
			name:        "row not found from the engine",
			err:         fmt.Errorf("delete: %w", ErrRowNotFound),
			wantCode:    "VIEW002",
			wantMessage: "The record is no longer on this page",
		},
		{
			name:        "read-only screen",
			err:         fmt.Errorf("delete users/7: %w", ErrReadOnly),
			wantCode:    "VIEW003",
			wantMessage: "This screen is read-only",
		},
		{
			name:        "reserved column",
			err:         fmt.Errorf("register screen x: %w", ErrReservedColumn),
			wantCode:    "VIEW006",
			wantMessage: "The screen configuration uses a reserved column name",
		},
		{
			name:        "sentinel wins over text pattern",
			err:         fmt.Errorf("connection refused while deleting: %w", ErrReadOnly),
			wantCode:    "VIEW003",
			wantMessage: "This screen is read-only",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "DB001",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "deadline maps to timeout",
			err:         errors.New("load clients: context deadline exceeded"),
			wantCode:    "DB003",
			wantMessage: "Loading the screen took too long",
		},
		{
			name:        "sqlite missing table",
			err:         errors.New("SQL logic error: no such table: partners (1)"),
			wantCode:    "DB004",
			wantMessage: "The screen's table does not exist",
		},
		{
			name:        "postgres missing table",
			err:         errors.New(`ERROR: relation "partners" does not exist (SQLSTATE 42P01)`),
			wantCode:    "DB004",
			wantMessage: "The screen's table does not exist",
		},
		{
			name:        "foreign key on delete",
			err:         errors.New("update or delete on table \"clients\" violates foreign key constraint"),
			wantCode:    "DB005",
			wantMessage: "The record is still referenced by other records",
		},
		{
			name:        "export format",
			err:         errors.New("unsupported export format \"pdf\""),
			wantCode:    "EXP001",
			wantMessage: "That export format is not supported",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DATABASE IS LOCKED"),
			wantCode:    "DB006",
			wantMessage: "Database was busy with conflicting operations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrUnknownScreen)

	expected := "This screen does not exist (Code: VIEW001). Pick a screen from the dashboard"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", errors.New("connection reset by peer"), true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("delete users/1: %w", ErrReadOnly)
		userErr := NewUserError(techErr)

		if userErr.Error() != "This screen is read-only" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrReadOnly) {
			t.Error("Unwrap() should expose the original error chain")
		}
	})
}
