package datatable

import (
	"errors"
	"slices"
)

var (
	// ErrActionDisabled is returned when a disabled action is invoked.
	// The handler is not called.
	ErrActionDisabled = errors.New("row actions are disabled")

	// ErrUnknownAction is returned when a row has no action of the requested kind.
	ErrUnknownAction = errors.New("unknown row action")

	// ErrRowNotFound is returned when a dispatch target is not on the rendered page.
	ErrRowNotFound = errors.New("row not found")
)

// ActionKind identifies a row action.
type ActionKind string

const (
	ActionView   ActionKind = "view"
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// RowHandler is a caller callback bound to one row.
type RowHandler func(row Row) error

// ActionClasses overrides the CSS classes of the default action buttons.
// Empty fields use the defaults.
type ActionClasses struct {
	View     string
	Edit     string
	Delete   string
	Disabled string
}

var defaultClasses = ActionClasses{
	View:     "text-blue-600 hover:text-blue-800",
	Edit:     "text-amber-600 hover:text-amber-800",
	Delete:   "text-red-600 hover:text-red-800",
	Disabled: "opacity-50 cursor-not-allowed",
}

func (c ActionClasses) withDefaults() ActionClasses {
	if c.View == "" {
		c.View = defaultClasses.View
	}
	if c.Edit == "" {
		c.Edit = defaultClasses.Edit
	}
	if c.Delete == "" {
		c.Delete = defaultClasses.Delete
	}
	if c.Disabled == "" {
		c.Disabled = defaultClasses.Disabled
	}
	return c
}

// Action is one button in a row's actions cell.
type Action struct {
	Kind     ActionKind
	Label    string
	Class    string
	Disabled bool
	run      func() error
}

// NewAction builds a custom action. Use it from Options.CustomActions; the
// closure should capture the row it acts on.
func NewAction(kind ActionKind, label string, run func() error) Action {
	return Action{Kind: kind, Label: label, run: run}
}

// Invoke runs the action's handler exactly once. Disabled actions do nothing
// and return ErrActionDisabled. Handler errors are returned unchanged.
func (a Action) Invoke() error {
	if a.Disabled {
		return ErrActionDisabled
	}
	if a.run == nil {
		return nil
	}
	return a.run()
}

// hasActions reports whether the options call for an actions column.
func (o Options) hasActions() bool {
	return o.OnView != nil || o.OnEdit != nil || o.OnDelete != nil || o.CustomActions != nil
}

// rowActions builds the action set for one rendered row.
func (o Options) rowActions(row Row) []Action {
	if !o.hasActions() {
		return nil
	}

	classes := o.Classes.withDefaults()

	var actions []Action
	if o.CustomActions != nil {
		actions = slices.Clone(o.CustomActions(row))
	} else {
		if o.OnView != nil {
			actions = append(actions, bind(ActionView, "View", classes.View, o.OnView, row))
		}
		if o.OnEdit != nil && o.ShowEdit {
			actions = append(actions, bind(ActionEdit, "Edit", classes.Edit, o.OnEdit, row))
		}
		if o.OnDelete != nil {
			actions = append(actions, bind(ActionDelete, "Delete", classes.Delete, o.OnDelete, row))
		}
	}

	if o.DisableActions {
		for i := range actions {
			actions[i].Disabled = true
			if actions[i].Class == "" {
				actions[i].Class = classes.Disabled
			} else {
				actions[i].Class += " " + classes.Disabled
			}
		}
	}
	return actions
}

func bind(kind ActionKind, label, class string, h RowHandler, row Row) Action {
	return Action{
		Kind:  kind,
		Label: label,
		Class: class,
		run:   func() error { return h(row) },
	}
}

// findAction returns the first action of the given kind.
func findAction(actions []Action, kind ActionKind) (Action, bool) {
	for _, a := range actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}
