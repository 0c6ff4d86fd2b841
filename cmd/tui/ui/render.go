package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	modelpkg "github.com/VoxDroid/dtf/internal/tui/model"
	"github.com/VoxDroid/dtf/internal/tui/sanitize"
)

var (
	accent      = lipgloss.Color("#0ea5a4")
	muted       = lipgloss.Color("#94a3b8")
	paneBorder  = lipgloss.Color("#c084fc")
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tabStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTab   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#0b1226")).Background(accent)
	footerStyle = lipgloss.NewStyle().Italic(true).Foreground(muted)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	paneStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(paneBorder)
)

const helpLine = "(tab) next • (shift+tab) prev • (/) filter • ([ ]) scroll detail • (r) reload • (q) quit"

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#0b1226")).
		Background(accent).
		Bold(false)
	return s
}

// columns sizes the key column and the two value columns to fill width.
func columns(fileA, fileB string, width int) []table.Column {
	keyW := width / 3
	if keyW < 8 {
		keyW = 8
	}
	// each column carries one cell of padding on both sides
	valW := (width - keyW - 6) / 2
	if valW < 6 {
		valW = 6
	}
	return []table.Column{
		{Title: "Key", Width: keyW},
		{Title: filepath.Base(fileA), Width: valW},
		{Title: filepath.Base(fileB), Width: valW},
	}
}

func tableRows(rows []modelpkg.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{sanitize.Line(r.Key), sanitize.Line(r.A), sanitize.Line(r.B)}
	}
	return out
}

// formatDetail renders the selected row with full, prettified values.
func formatDetail(r modelpkg.Row, fileA, fileB string, width int) string {
	var b strings.Builder
	b.WriteString(headStyle.Render("Key") + "\n" + r.Key + "\n\n")
	b.WriteString(headStyle.Render(fileA) + "\n" + r.A + "\n\n")
	b.WriteString(headStyle.Render(fileB) + "\n" + r.B + "\n")
	if width <= 0 {
		return b.String()
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m *TuiModel) renderTabs() string {
	tabs := m.uiModel.Tabs()
	if len(tabs) == 0 {
		return tabStyle.Render("no categories selected")
	}
	parts := make([]string, len(tabs))
	for i, cat := range tabs {
		label := fmt.Sprintf("%s (%d)", cat.Title(), m.uiModel.Count(cat))
		if i == m.uiModel.Active() {
			parts[i] = activeTab.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
