// Package adapters loads check results for the TUI so the browser does not
// depend on where a result comes from.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/history"
)

// ErrNotFound is returned when a requested history entry does not exist.
var ErrNotFound = errors.New("not found")

// Result is a check outcome ready for display.
type Result struct {
	Diffs   check.DiffCollection
	Context *check.WorkingContext
	// Title names the result in the header; empty means the file names.
	Title string
}

// Source produces a Result.
type Source interface {
	Load(ctx context.Context) (Result, error)
}

// FileSource compares two documents on load.
type FileSource struct {
	Config check.Config
}

// NewFileSource returns a source comparing the files named in cfg.
func NewFileSource(cfg check.Config) *FileSource { return &FileSource{Config: cfg} }

// Load runs the comparison.
func (s *FileSource) Load(ctx context.Context) (Result, error) {
	wc, err := check.NewWorkingContext(s.Config)
	if err != nil {
		return Result{}, err
	}
	d, err := check.Run(ctx, wc)
	if err != nil {
		return Result{}, err
	}
	return Result{Diffs: d, Context: wc}, nil
}

// SavedSource reads a result written with --write-to-file.
type SavedSource struct {
	Path string
	opts []check.Option
}

// NewSavedSource returns a source for the saved result at path. opts narrow
// what is rendered, typically with check.WithRender.
func NewSavedSource(path string, opts ...check.Option) *SavedSource {
	return &SavedSource{Path: path, opts: opts}
}

// Load reads the saved result.
func (s *SavedSource) Load(ctx context.Context) (Result, error) {
	opts := append([]check.Option{check.WithSavedResult(s.Path)}, s.opts...)
	wc, err := check.NewWorkingContext(check.NewConfig(opts...))
	if err != nil {
		return Result{}, err
	}
	d, err := check.Run(ctx, wc)
	if err != nil {
		return Result{}, err
	}
	return Result{Diffs: d, Context: wc}, nil
}

// HistorySource loads a recorded check.
type HistorySource struct {
	repo *history.Repository
	id   string
	opts []check.Option
}

// NewHistorySource returns a source for the check id (or unique id prefix) in repo.
func NewHistorySource(repo *history.Repository, id string, opts ...check.Option) *HistorySource {
	return &HistorySource{repo: repo, id: id, opts: opts}
}

// Load fetches the recorded check.
func (s *HistorySource) Load(_ context.Context) (Result, error) {
	c, err := s.repo.Get(s.id)
	if err != nil {
		return Result{}, err
	}
	if c == nil {
		return Result{}, fmt.Errorf("check %s: %w", s.id, ErrNotFound)
	}
	saved, err := c.Saved()
	if err != nil {
		return Result{}, err
	}
	wc := check.FromSaved(saved, check.NewConfig(s.opts...))
	title := c.ShortID()
	if c.Label.Valid {
		title = c.Label.String + " (" + title + ")"
	}
	return Result{Diffs: saved.Collection(), Context: wc, Title: title}, nil
}
