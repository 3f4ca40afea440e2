package application

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	itemStyle   = lipgloss.NewStyle().PaddingLeft(2)
)

// App is the top-level model: the screen menu, or a browser when a screen
// is open.
type App struct {
	screens Screens
	opts    Options
	keys    keyMap

	menu   *Menu
	cursor int

	browser *Browser

	status string
	err    error
}

// NewApp starts at the screen menu.
func NewApp(screens Screens, opts Options) App {
	return App{
		screens: screens,
		opts:    opts.withDefaults(),
		keys:    defaultKeys(),
		menu:    buildMenuTree(screens, opts),
	}
}

// Run starts the terminal front end. With a screen key it opens that screen
// directly; esc still leads to the menu.
func Run(ctx context.Context, screens Screens, key string, opts Options) error {
	app := NewApp(screens, opts)
	if key != "" {
		b, err := NewBrowser(ctx, screens, key, app.opts)
		if err != nil {
			return err
		}
		app.browser = &b
	}
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openScreenMsg:
		b, err := NewBrowser(context.Background(), a.screens, msg.key, a.opts)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.browser, a.err, a.status = &b, nil, ""
		return a, b.Init()
	case backMsg:
		a.browser = nil
		return a, nil
	}

	if a.browser != nil {
		next, cmd := a.browser.Update(msg)
		b := next.(Browser)
		a.browser = &b
		return a, cmd
	}

	switch msg := msg.(type) {
	case DoneMsg:
		a.status, a.err = string(msg), nil
	case ErrMsg:
		a.err = msg.Err
	case tea.KeyMsg:
		return a.updateMenu(msg)
	}
	return a, nil
}

func (a App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.menu.Items)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Back):
		if a.menu.Parent != nil {
			a.menu, a.cursor = a.menu.Parent, 0
		}
	case key.Matches(msg, a.keys.View):
		if len(a.menu.Items) == 0 {
			return a, nil
		}
		item := a.menu.Items[a.cursor]
		if item.Submenu != nil {
			a.menu, a.cursor = item.Submenu, 0
			return a, nil
		}
		if item.Action != nil {
			a.status = item.Label + "..."
			return a, item.Action()
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.browser != nil {
		return a.browser.View()
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(a.menu.Title))
	sb.WriteString("\n")
	for i, item := range a.menu.Items {
		if i == a.cursor {
			sb.WriteString(cursorStyle.Render("> " + item.Label))
		} else {
			sb.WriteString(itemStyle.Render(item.Label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	switch {
	case a.err != nil:
		sb.WriteString(errorStyle.Render("Error: " + a.err.Error()))
	case a.status != "":
		sb.WriteString(statusStyle.Render(a.status))
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("↑/↓ move • enter select • esc back • q quit"))
	return sb.String()
}
