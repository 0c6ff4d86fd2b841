// Package render presents check results as terminal tables and reports.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/config"
	"github.com/VoxDroid/dtf/internal/jsondiff"
)

const (
	// Checkmark marks the side that has a key.
	Checkmark = "✓"
	// Multiply marks the side that misses a key.
	Multiply = "×"
)

var (
	green = lipgloss.Color("2")
	red   = lipgloss.Color("1")
)

// Options control table rendering.
type Options struct {
	MaxColumnWidth int
	Color          bool
}

// DefaultOptions returns uncoloured tables capped at the default column width.
func DefaultOptions() Options {
	return Options{MaxColumnWidth: config.DefaultMaxColumnWidth}
}

// Rows returns the table rows of category cat: the key followed by the cell
// for file A and the cell for file B. Values are prettified but not wrapped.
func Rows(cat check.Category, d check.DiffCollection, wc *check.WorkingContext, opts Options) [][]string {
	fileA, _ := wc.FileNames()
	var rows [][]string
	switch cat {
	case check.Keys:
		for _, kd := range d.Keys {
			rows = append(rows, []string{kd.Key, hasMark(kd.Has == fileA, opts), hasMark(kd.Has != fileA, opts)})
		}
	case check.Types:
		for _, td := range d.Types {
			rows = append(rows, []string{td.Key, td.Type1, td.Type2})
		}
	case check.Values:
		for _, vd := range d.Values {
			rows = append(rows, []string{vd.Key, Prettify(vd.Value1), Prettify(vd.Value2)})
		}
	case check.Arrays:
		for _, ad := range d.Arrays {
			rows = append(rows, arrayRow(ad, opts))
		}
	}
	return rows
}

func arrayRow(ad jsondiff.ArrayDiff, opts Options) []string {
	v := Prettify(ad.Value)
	missing := colorize(Multiply, red, opts)
	if ad.Descriptor.OnA() {
		return []string{ad.Key, v, missing}
	}
	return []string{ad.Key, missing, v}
}

func hasMark(has bool, opts Options) string {
	if has {
		return colorize(Checkmark, green, opts)
	}
	return colorize(Multiply, red, opts)
}

func colorize(s string, c lipgloss.Color, opts Options) string {
	if !opts.Color {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// Table renders one category as a bordered table with a centred title.
func Table(cat check.Category, d check.DiffCollection, wc *check.WorkingContext, opts Options) string {
	fileA, fileB := wc.FileNames()
	rows := Rows(cat, d, wc, opts)
	for _, r := range rows {
		for i := range r {
			r[i] = wrapCell(r[i], opts.MaxColumnWidth)
		}
	}

	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(opts.Color)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Key", wrapCell(fileA, opts.MaxColumnWidth), wrapCell(fileB, opts.MaxColumnWidth)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	body := t.String()

	width := lipgloss.Width(strings.SplitN(body, "\n", 2)[0])
	title := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(opts.Color).Render(cat.Title())
	return title + "\n" + body
}

// Tables renders every category that is selected for rendering and has at
// least one difference, in key, type, value, array order.
func Tables(d check.DiffCollection, wc *check.WorkingContext, opts Options) []string {
	var out []string
	for _, cat := range check.Categories {
		if !wc.Config.Renders(cat) || d.Len(cat) == 0 {
			continue
		}
		out = append(out, Table(cat, d, wc, opts))
	}
	return out
}

// Summary describes how many rendered differences were found.
func Summary(d check.DiffCollection, wc *check.WorkingContext) string {
	n := 0
	for _, cat := range check.Categories {
		if wc.Config.Renders(cat) {
			n += d.Len(cat)
		}
	}
	switch n {
	case 0:
		return "No differences found"
	case 1:
		return "1 difference"
	}
	return fmt.Sprintf("%d differences", n)
}

// Write renders all tables followed by the summary line to w.
func Write(w io.Writer, d check.DiffCollection, wc *check.WorkingContext, opts Options) error {
	for _, t := range Tables(d, wc, opts) {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Summary(d, wc))
	return err
}
