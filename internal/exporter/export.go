// Package exporter writes the check history, or single checks, to portable files.
package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/config"
	"github.com/VoxDroid/dtf/internal/history"
)

// ExportDatabase copies the active history database to dstPath.
func ExportDatabase(dstPath string) error {
	src, err := config.DBPath()
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source db: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create dst db: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return out.Sync()
}

// ExportCheck writes the saved result of a recorded check to dstPath, in the
// same format produced by --write-to-file.
func ExportCheck(repo *history.Repository, id string, dstPath string) error {
	c, err := repo.Get(id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("check not found: %s", id)
	}
	saved, err := c.Saved()
	if err != nil {
		return fmt.Errorf("decode check %s: %w", c.ShortID(), err)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	f, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	if err := check.EncodeSaved(f, *saved); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", dstPath, err)
	}
	return f.Close()
}
