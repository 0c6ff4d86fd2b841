package check

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VoxDroid/dtf/internal/jsondiff"
)

// DiffCollection is the outcome of a check. A nil slice means the category
// was not checked; an empty one means it was checked and nothing was found.
type DiffCollection struct {
	Keys   []jsondiff.KeyDiff
	Types  []jsondiff.TypeDiff
	Values []jsondiff.ValueDiff
	Arrays []jsondiff.ArrayDiff
}

// Len returns the number of differences in category cat.
func (d DiffCollection) Len(cat Category) int {
	switch cat {
	case Keys:
		return len(d.Keys)
	case Types:
		return len(d.Types)
	case Values:
		return len(d.Values)
	case Arrays:
		return len(d.Arrays)
	}
	return 0
}

// Count returns the number of differences across every category.
func (d DiffCollection) Count() int {
	n := 0
	for _, c := range Categories {
		n += d.Len(c)
	}
	return n
}

// HasDifferences reports whether any checked category found something.
func (d DiffCollection) HasDifferences() bool { return d.Count() > 0 }

// SavedConfig is the configuration stored next to a saved result.
type SavedConfig struct {
	CheckForKeyDiffs   bool   `json:"check_for_key_diffs"`
	CheckForTypeDiffs  bool   `json:"check_for_type_diffs"`
	CheckForValueDiffs bool   `json:"check_for_value_diffs"`
	CheckForArrayDiffs bool   `json:"check_for_array_diffs"`
	FileA              string `json:"file_a"`
	FileB              string `json:"file_b"`
	ArraySameOrder     bool   `json:"array_same_order"`
}

// SavedContext is the on-disk form of a check result.
type SavedContext struct {
	KeyDiff   []jsondiff.KeyDiff   `json:"key_diff"`
	TypeDiff  []jsondiff.TypeDiff  `json:"type_diff"`
	ValueDiff []jsondiff.ValueDiff `json:"value_diff"`
	ArrayDiff []jsondiff.ArrayDiff `json:"array_diff"`
	Config    SavedConfig          `json:"config"`
}

// SavedFromCollection converts a check outcome into its saved form.
// Categories that were not checked are stored as empty lists.
func SavedFromCollection(d DiffCollection, c Config) SavedContext {
	return SavedContext{
		KeyDiff:   orEmpty(d.Keys),
		TypeDiff:  orEmpty(d.Types),
		ValueDiff: orEmpty(d.Values),
		ArrayDiff: orEmpty(d.Arrays),
		Config: SavedConfig{
			CheckForKeyDiffs:   c.CheckKeys,
			CheckForTypeDiffs:  c.CheckTypes,
			CheckForValueDiffs: c.CheckValues,
			CheckForArrayDiffs: c.CheckArrays,
			FileA:              c.FileA,
			FileB:              c.FileB,
			ArraySameOrder:     c.ArraySameOrder,
		},
	}
}

// Collection restores the check outcome, leaving unchecked categories nil.
func (s SavedContext) Collection() DiffCollection {
	var d DiffCollection
	if s.Config.CheckForKeyDiffs {
		d.Keys = orEmpty(s.KeyDiff)
	}
	if s.Config.CheckForTypeDiffs {
		d.Types = orEmpty(s.TypeDiff)
	}
	if s.Config.CheckForValueDiffs {
		d.Values = orEmpty(s.ValueDiff)
	}
	if s.Config.CheckForArrayDiffs {
		d.Arrays = orEmpty(s.ArrayDiff)
	}
	return d
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// DecodeSaved reads a saved result from r.
func DecodeSaved(r io.Reader) (*SavedContext, error) {
	var s SavedContext
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode saved result: %w", err)
	}
	return &s, nil
}

// ReadSaved reads the saved result stored at path.
func ReadSaved(path string) (*SavedContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open saved result: %w", err)
	}
	defer func() { _ = f.Close() }()
	s, err := DecodeSaved(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// EncodeSaved writes s as indented JSON.
func EncodeSaved(w io.Writer, s SavedContext) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSaved stores the outcome of a check in the configured output file.
func WriteSaved(d DiffCollection, wc *WorkingContext) error {
	dst := wc.Config.WriteToFile
	if dst == "" {
		return ErrNoOutput
	}
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := EncodeSaved(f, SavedFromCollection(d, wc.Config)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write saved result: %w", err)
	}
	return f.Close()
}
