package application

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Padding(0, 1)
	activeHeader  = headerStyle.Foreground(lipgloss.Color("212")).Underline(true)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(18)
)

// View implements tea.Model.
func (b Browser) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.def.Info.Label))
	sb.WriteString("\n")

	if b.detail != nil {
		sb.WriteString(b.detailView())
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("esc back • q quit"))
		return sb.String()
	}

	if b.searching {
		sb.WriteString(b.search.View())
		sb.WriteString("\n")
	} else if term := b.state.Filter.SearchTerm; term != "" {
		sb.WriteString(mutedStyle.Render("search: " + term))
		sb.WriteString("\n")
	}

	sb.WriteString(b.tableView())
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(pagerLine(b.view)))
	sb.WriteString("\n")

	switch {
	case b.err != nil:
		sb.WriteString(errorStyle.Render("Error: " + b.err.Error()))
		sb.WriteString("\n")
	case b.status != "":
		sb.WriteString(statusStyle.Render(b.status))
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render(helpText(b.keys.helpLine())))
	return sb.String()
}

// tableView draws the visible page. The actions column is left out; actions
// are bound to keys instead.
func (b Browser) tableView() string {
	headers := make([]string, 0, len(b.view.Columns))
	for _, h := range b.view.Headers {
		if h.Key == datatable.ActionsKey {
			continue
		}
		label := h.Label
		if h.Sorted {
			if h.Direction == datatable.Desc {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		headers = append(headers, label)
	}

	rows := make([][]string, len(b.view.Rows))
	for i, r := range b.view.Rows {
		cells := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = c.Text
		}
		rows[i] = cells
	}
	if len(rows) == 0 {
		empty := make([]string, len(headers))
		if len(empty) > 0 {
			empty[0] = "No records found"
		}
		rows = append(rows, empty)
	}

	firstRow := table.HeaderRow + 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && col == b.column:
				return activeHeader
			case row == table.HeaderRow:
				return headerStyle
			case row-firstRow == b.cursor && len(b.view.Rows) > 0:
				return selectedStyle
			}
			return cellStyle
		})
	return t.String()
}

func (b Browser) detailView() string {
	var sb strings.Builder
	id := datatable.FormatValue(b.detail[b.def.IDColumn()])
	sb.WriteString(labelStyle.Render("ID"))
	sb.WriteString(id)
	sb.WriteString("\n")
	for _, col := range b.def.Columns {
		cell := col.Render.Render(b.detail[col.Key], b.detail)
		sb.WriteString(labelStyle.Render(col.Label()))
		sb.WriteString(cell.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// pagerLine summarizes the page the way the web pager does.
func pagerLine(v datatable.View) string {
	line := fmt.Sprintf("Page %d of %d • Showing %d to %d of %d",
		v.Page.Number, v.Page.TotalPages, v.Page.Start, v.Page.End, v.Page.TotalRows)
	if v.Page.TotalRows != v.TotalRows {
		line += fmt.Sprintf(" (filtered from %d)", v.TotalRows)
	}
	return line
}

func helpText(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
