// Package model holds the browser state of the TUI independently of Bubble
// Tea: the loaded result, the active category tab and the key filter.
package model

import (
	"context"

	"github.com/sahilm/fuzzy"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/render"
	"github.com/VoxDroid/dtf/internal/tui/adapters"
	"github.com/VoxDroid/dtf/internal/tui/sanitize"
)

// Row is one difference as shown in the browser. A and B hold the cells for
// file A and file B, prettified and stripped of control sequences.
type Row struct {
	Key string
	A   string
	B   string
}

// UIModel is the framework-agnostic browser state.
type UIModel struct {
	source adapters.Source
	result *adapters.Result
	tabs   []check.Category
	active int
	filter string
}

// New constructs a UIModel reading from src.
func New(src adapters.Source) *UIModel {
	return &UIModel{source: src}
}

// Load fetches the result from the source and resets tabs and filter.
func (m *UIModel) Load(ctx context.Context) error {
	res, err := m.source.Load(ctx)
	if err != nil {
		return err
	}
	m.result = &res
	m.tabs = m.tabs[:0]
	for _, cat := range check.Categories {
		if res.Context.Config.Renders(cat) {
			m.tabs = append(m.tabs, cat)
		}
	}
	m.active = 0
	m.filter = ""
	return nil
}

// Loaded reports whether a result is available.
func (m *UIModel) Loaded() bool { return m.result != nil }

// Title returns the header title of the loaded result.
func (m *UIModel) Title() string {
	if m.result == nil {
		return ""
	}
	if m.result.Title != "" {
		return m.result.Title
	}
	a, b := m.FileNames()
	return a + " ↔ " + b
}

// FileNames returns the names of the compared documents.
func (m *UIModel) FileNames() (string, string) {
	if m.result == nil {
		return "", ""
	}
	return m.result.Context.FileNames()
}

// Tabs returns the categories that can be browsed.
func (m *UIModel) Tabs() []check.Category { return m.tabs }

// Active returns the index of the active tab.
func (m *UIModel) Active() int { return m.active }

// NextTab activates the following tab, wrapping around.
func (m *UIModel) NextTab() {
	if len(m.tabs) > 0 {
		m.active = (m.active + 1) % len(m.tabs)
	}
}

// PrevTab activates the preceding tab, wrapping around.
func (m *UIModel) PrevTab() {
	if len(m.tabs) > 0 {
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
	}
}

// Count returns the number of differences of cat.
func (m *UIModel) Count(cat check.Category) int {
	if m.result == nil {
		return 0
	}
	return m.result.Diffs.Len(cat)
}

// SetFilter sets the fuzzy key filter. An empty query shows every row.
func (m *UIModel) SetFilter(q string) { m.filter = q }

// Filter returns the current key filter.
func (m *UIModel) Filter() string { return m.filter }

// Rows returns the rows of the active tab. With a filter set, only rows whose
// key fuzzily matches are returned, best match first.
func (m *UIModel) Rows() []Row {
	if m.result == nil || len(m.tabs) == 0 {
		return nil
	}
	raw := render.Rows(m.tabs[m.active], m.result.Diffs, m.result.Context, render.Options{})
	rows := make([]Row, len(raw))
	keys := make([]string, len(raw))
	for i, r := range raw {
		rows[i] = Row{Key: sanitize.Cell(r[0]), A: sanitize.Cell(r[1]), B: sanitize.Cell(r[2])}
		keys[i] = rows[i].Key
	}
	if m.filter == "" {
		return rows
	}
	matches := fuzzy.Find(m.filter, keys)
	out := make([]Row, 0, len(matches))
	for _, match := range matches {
		out = append(out, rows[match.Index])
	}
	return out
}

// Summary returns the difference count line for the loaded result.
func (m *UIModel) Summary() string {
	if m.result == nil {
		return ""
	}
	return render.Summary(m.result.Diffs, m.result.Context)
}
