// Package security guards the files a check writes.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrOverwritesInput is returned when an output path points at an input document.
var ErrOverwritesInput = errors.New("output would overwrite an input file")

// CheckOutputPath returns nil if dst may be written by a check reading
// inputs. Empty paths are ignored.
func CheckOutputPath(dst string, inputs ...string) error {
	if dst == "" {
		return nil
	}
	info, err := os.Stat(dst)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("output %s is a directory", dst)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("output %s: %w", dst, err)
	}
	for _, in := range inputs {
		if in == "" {
			continue
		}
		if samePath(dst, in) {
			return fmt.Errorf("%w: %s", ErrOverwritesInput, in)
		}
		if info == nil {
			continue
		}
		if inInfo, err := os.Stat(in); err == nil && os.SameFile(info, inInfo) {
			return fmt.Errorf("%w: %s", ErrOverwritesInput, in)
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
