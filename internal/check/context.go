package check

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/VoxDroid/dtf/internal/jsondiff"
)

// WorkingContext is the resolved state of one run.
type WorkingContext struct {
	Lib    jsondiff.WorkingContext
	Config Config
	// Saved is set when the run re-uses a saved result.
	Saved *SavedContext
}

// FileNames returns the display names of both sides.
func (wc *WorkingContext) FileNames() (string, string) {
	return wc.Lib.FileA.Name, wc.Lib.FileB.Name
}

// NewWorkingContext resolves cfg into a working context. For saved runs the
// saved result decides what was checked and which files were compared; the
// caller keeps control over output and over which categories are rendered.
func NewWorkingContext(cfg Config) (*WorkingContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.IsSavedRun() {
		lib := jsondiff.NewWorkingContext(cfg.FileA, cfg.FileB, jsondiff.Config{ArraySameOrder: cfg.ArraySameOrder})
		return &WorkingContext{Lib: lib, Config: cfg}, nil
	}

	saved, err := ReadSaved(cfg.ReadFromFile)
	if err != nil {
		return nil, err
	}
	return FromSaved(saved, cfg), nil
}

// FromSaved builds a working context around an already loaded saved result.
func FromSaved(saved *SavedContext, cfg Config) *WorkingContext {
	sc := saved.Config
	merged := cfg
	merged.CheckKeys = sc.CheckForKeyDiffs
	merged.CheckTypes = sc.CheckForTypeDiffs
	merged.CheckValues = sc.CheckForValueDiffs
	merged.CheckArrays = sc.CheckForArrayDiffs
	merged.FileA, merged.FileB = sc.FileA, sc.FileB
	merged.ArraySameOrder = sc.ArraySameOrder
	if cfg.rendersAny() {
		merged.RenderKeys = cfg.RenderKeys && sc.CheckForKeyDiffs
		merged.RenderTypes = cfg.RenderTypes && sc.CheckForTypeDiffs
		merged.RenderValues = cfg.RenderValues && sc.CheckForValueDiffs
		merged.RenderArrays = cfg.RenderArrays && sc.CheckForArrayDiffs
	} else {
		merged.RenderKeys, merged.RenderTypes = sc.CheckForKeyDiffs, sc.CheckForTypeDiffs
		merged.RenderValues, merged.RenderArrays = sc.CheckForValueDiffs, sc.CheckForArrayDiffs
	}
	lib := jsondiff.NewWorkingContext(sc.FileA, sc.FileB, jsondiff.Config{ArraySameOrder: sc.ArraySameOrder})
	return &WorkingContext{Lib: lib, Config: merged, Saved: saved}
}

// LoadDocuments reads both input documents concurrently.
func LoadDocuments(ctx context.Context, fileA, fileB string) (map[string]any, map[string]any, error) {
	var a, b map[string]any
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = jsondiff.ReadJSONFile(fileA)
		if err != nil {
			return fmt.Errorf("couldn't read file: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		b, err = jsondiff.ReadJSONFile(fileB)
		if err != nil {
			return fmt.Errorf("couldn't read file: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// CollectData compares a and b and keeps the categories enabled in wc.
func CollectData(a, b map[string]any, wc *WorkingContext) DiffCollection {
	res := jsondiff.Compare(a, b, wc.Lib)
	var d DiffCollection
	if wc.Config.CheckKeys {
		d.Keys = orEmpty(res.Keys)
	}
	if wc.Config.CheckTypes {
		d.Types = orEmpty(res.Types)
	}
	if wc.Config.CheckValues {
		d.Values = orEmpty(res.Values)
	}
	if wc.Config.CheckArrays {
		d.Arrays = orEmpty(res.Arrays)
	}
	return d
}

// Run produces the outcome of the check described by wc: the saved result
// for saved runs, a fresh comparison otherwise.
func Run(ctx context.Context, wc *WorkingContext) (DiffCollection, error) {
	if wc.Saved != nil {
		log.Debug().Str("file", wc.Config.ReadFromFile).Msg("using saved result")
		return wc.Saved.Collection(), nil
	}
	a, b, err := LoadDocuments(ctx, wc.Config.FileA, wc.Config.FileB)
	if err != nil {
		return DiffCollection{}, err
	}
	d := CollectData(a, b, wc)
	log.Debug().
		Str("file_a", wc.Config.FileA).
		Str("file_b", wc.Config.FileB).
		Int("differences", d.Count()).
		Msg("comparison finished")
	return d, nil
}
