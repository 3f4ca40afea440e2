package core

import (
	"errors"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

var (
	// ErrUnknownScreen is returned for a screen key that is not registered.
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrReadOnly is returned when a mutation targets a read-only screen.
	ErrReadOnly = errors.New("screen is read-only")

	// Engine errors, re-exported so hosts only import core for matching.
	ErrRowNotFound     = datatable.ErrRowNotFound
	ErrActionDisabled  = datatable.ErrActionDisabled
	ErrUnknownAction   = datatable.ErrUnknownAction
	ErrDuplicateColumn = datatable.ErrDuplicateColumn
	ErrReservedColumn  = datatable.ErrReservedColumn
)
