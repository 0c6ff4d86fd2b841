package ui

import (
	"context"

	"github.com/VoxDroid/dtf/internal/check"
	modelpkg "github.com/VoxDroid/dtf/internal/tui/model"
)

// Model is the subset of the framework-agnostic browser model the TUI
// depends on, so tests can drive the view with fakes.
type Model interface {
	Load(ctx context.Context) error
	Loaded() bool
	Title() string
	FileNames() (string, string)
	Tabs() []check.Category
	Active() int
	NextTab()
	PrevTab()
	Count(cat check.Category) int
	SetFilter(q string)
	Filter() string
	Rows() []modelpkg.Row
	Summary() string
}
