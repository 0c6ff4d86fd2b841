// Package ui is the Bubble Tea browser behind `dtf tui`.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	modelpkg "github.com/VoxDroid/dtf/internal/tui/model"
)

// TuiModel is the Bubble Tea model used by cmd/tui.
type TuiModel struct {
	uiModel Model
	table   table.Model
	vp      viewport.Model
	input   textinput.Model

	width  int
	height int

	rows       []modelpkg.Row
	filterMode bool
	err        error
}

// NewModel constructs the TUI model around an already loaded browser model.
func NewModel(ui Model) *TuiModel {
	t := table.New(table.WithFocused(true), table.WithHeight(10))
	t.SetStyles(tableStyles())
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "filter keys"
	m := &TuiModel{uiModel: ui, table: t, vp: viewport.New(40, 10), input: in, width: 100, height: 24}
	m.layout()
	return m
}

// NewProgram constructs the tea.Program for the TUI.
func NewProgram(ui Model) *tea.Program {
	return tea.NewProgram(NewModel(ui), tea.WithAltScreen())
}

// Init implements tea.Model.
func (m *TuiModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *TuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.uiModel.Filter() == "" {
				return m, tea.Quit
			}
			m.input.Reset()
			m.uiModel.SetFilter("")
			m.refresh()
			return m, nil
		case "tab", "right":
			m.uiModel.NextTab()
			m.refresh()
			return m, nil
		case "shift+tab", "left":
			m.uiModel.PrevTab()
			m.refresh()
			return m, nil
		case "/":
			m.filterMode = true
			m.input.SetValue(m.uiModel.Filter())
			return m, m.input.Focus()
		case "r":
			m.err = m.uiModel.Load(context.Background())
			m.input.Reset()
			m.refresh()
			return m, nil
		case "[":
			m.vp.LineUp(1)
			return m, nil
		case "]":
			m.vp.LineDown(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.updateDetail()
		return m, cmd
	}
	return m, nil
}

func (m *TuiModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.filterMode = false
		m.input.Blur()
		m.input.Reset()
		m.uiModel.SetFilter("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.uiModel.SetFilter(m.input.Value())
	m.refresh()
	return m, cmd
}

func (m *TuiModel) bodyHeight() int {
	// header, footer and the pane borders
	h := m.height - 2 - 2 - 2
	if h < 3 {
		h = 3
	}
	return h
}

func (m *TuiModel) paneWidths() (int, int) {
	tableW := m.width * 3 / 5
	detailW := m.width - tableW - 4
	if detailW < 10 {
		detailW = 10
	}
	return tableW, detailW
}

// layout sizes the table and the detail pane to the window and reloads rows.
func (m *TuiModel) layout() {
	tableW, detailW := m.paneWidths()
	h := m.bodyHeight()
	fileA, fileB := m.uiModel.FileNames()
	m.table.SetColumns(columns(fileA, fileB, tableW))
	m.table.SetWidth(tableW)
	m.table.SetHeight(h)
	m.ensureViewportSize(detailW, h)
	m.refresh()
}

// refresh reloads the rows of the active tab.
func (m *TuiModel) refresh() {
	m.rows = m.uiModel.Rows()
	m.table.SetRows(tableRows(m.rows))
	if m.table.Cursor() >= len(m.rows) || m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
	m.updateDetail()
}

func (m *TuiModel) updateDetail() {
	_, detailW := m.paneWidths()
	i := m.table.Cursor()
	switch {
	case i >= 0 && i < len(m.rows):
		fileA, fileB := m.uiModel.FileNames()
		m.vp.SetContent(formatDetail(m.rows[i], fileA, fileB, detailW))
	case m.uiModel.Filter() != "":
		m.vp.SetContent("No keys match " + m.uiModel.Filter())
	default:
		m.vp.SetContent("No differences")
	}
	m.vp.GotoTop()
}

// View implements tea.Model.
func (m *TuiModel) View() string {
	if !m.uiModel.Loaded() {
		if m.err != nil {
			return errStyle.Render("error: "+m.err.Error()) + "\n"
		}
		return "loading...\n"
	}
	header := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.uiModel.Title()), m.renderTabs())
	_, detailW := m.paneWidths()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.table.View()),
		paneStyle.Width(detailW).Render(m.vp.View()),
	)
	var footer string
	if m.filterMode {
		footer = m.input.View()
	} else {
		footer = footerStyle.Render(m.uiModel.Summary() + " • " + helpLine)
	}
	if m.err != nil {
		footer = lipgloss.JoinVertical(lipgloss.Left, footer, errStyle.Render(m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
