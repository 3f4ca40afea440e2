// Error codes reference
//
// User-facing errors carry a code that users can quote to support.
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection refused: Unable to connect to database
//	DB002 - Connection reset: Database connection was interrupted
//	DB003 - Timeout: Loading the screen took too long
//	DB004 - Missing table: The screen's table does not exist
//	DB005 - Referenced row: The record is still referenced by other records
//	DB006 - Busy: Database was busy with conflicting operations
//
// # View Errors (VIEW001-VIEW099)
//
//	VIEW001 - Unknown screen
//	VIEW002 - Row not found (not on the current page, or already deleted)
//	VIEW003 - Read-only screen
//	VIEW004 - Actions disabled
//	VIEW005 - Unknown row action
//	VIEW006 - Invalid screen configuration (duplicate or reserved column)
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unsupported export format
//	EXP002 - Export failed while writing
//	EXP003 - Too many exports running
//
// # Other
//
//	RATE001 - Too many requests
//	REQ001  - Request cancelled
//	ERR000  - Unknown error; check the logs for the technical error
//
// Sentinel errors are matched with errors.Is first. Remaining errors are
// matched by case-insensitive substring; the first matching pattern wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	target error
	msg    UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrUnknownScreen, UserMessage{
		Message: "This screen does not exist",
		Action:  "Pick a screen from the dashboard",
		Code:    "VIEW001",
	}},
	{ErrRowNotFound, UserMessage{
		Message: "The record is no longer on this page",
		Action:  "Refresh the list and try again",
		Code:    "VIEW002",
	}},
	{ErrReadOnly, UserMessage{
		Message: "This screen is read-only",
		Action:  "Records on this screen cannot be changed here",
		Code:    "VIEW003",
	}},
	{ErrActionDisabled, UserMessage{
		Message: "Row actions are disabled",
		Action:  "Ask an administrator to enable row actions",
		Code:    "VIEW004",
	}},
	{ErrUnknownAction, UserMessage{
		Message: "That action is not available for this record",
		Action:  "Refresh the list and try again",
		Code:    "VIEW005",
	}},
	{ErrDuplicateColumn, UserMessage{
		Message: "The screen configuration has a duplicate column",
		Action:  "Fix the screen catalog and restart",
		Code:    "VIEW006",
	}},
	{ErrReservedColumn, UserMessage{
		Message: "The screen configuration uses a reserved column name",
		Action:  "Rename the \"actions\" column in the screen catalog",
		Code:    "VIEW006",
	}},
	{ErrTooManyExports, UserMessage{
		Message: "Too many exports are running",
		Action:  "Please try again in a few seconds",
		Code:    "EXP003",
	}},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// Specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Loading the screen took too long",
			Action:  "Narrow the screen or try again later",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Loading the screen took too long",
			Action:  "Narrow the screen or try again later",
			Code:    "DB003",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "The screen's table does not exist",
			Action:  "Run the database migrations or check the screen catalog",
			Code:    "DB004",
		},
	},
	{
		pattern: "no such table",
		msg: UserMessage{
			Message: "The screen's table does not exist",
			Action:  "Run the database migrations or check the screen catalog",
			Code:    "DB004",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "The record is still referenced by other records",
			Action:  "Delete or reassign the dependent records first",
			Code:    "DB005",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "That export format is not supported",
			Action:  "Choose CSV or Excel",
			Code:    "EXP001",
		},
	},
	{
		pattern: "export",
		msg: UserMessage{
			Message: "The export could not be written",
			Action:  "Please try again",
			Code:    "EXP002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
}

// defaultMessage is the ERR000 fallback.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
//	msg := MapError(fmt.Errorf("load clients: %w", ErrUnknownScreen))
//	// msg.Code == "VIEW001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (for logs) with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err; nil stays nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
