// Package importer brings saved results and history databases into the active history.
package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/config"
	dbpkg "github.com/VoxDroid/dtf/internal/db"
	"github.com/VoxDroid/dtf/internal/history"
)

// ImportDatabase copies srcPath into the default database location. If overwrite
// is false and the destination exists, an error is returned.
func ImportDatabase(srcPath string, overwrite bool) error {
	dst, err := config.DBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return errors.New("destination database exists; use overwrite=true to replace")
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create dst: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return nil
}

// MergeDatabase copies every check of the history database at srcPath into
// dst. Checks whose id already exists in dst are skipped. It returns the
// number of imported checks.
func MergeDatabase(srcPath string, dst *sql.DB) (int, error) {
	if _, err := os.Stat(srcPath); err != nil {
		return 0, fmt.Errorf("open src: %w", err)
	}
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return 0, fmt.Errorf("open src: %w", err)
	}
	defer func() { _ = src.Close() }()
	// older exports may predate the label column
	if err := dbpkg.ApplyMigrations(src); err != nil {
		return 0, err
	}

	rows, err := src.Query(`SELECT id, label, file_a, file_b, array_same_order, created_at,
		key_count, type_count, value_count, array_count, payload FROM checks`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		var (
			id, fileA, fileB, created, payload  string
			label                               sql.NullString
			sameOrder                           bool
			keyCnt, typeCnt, valueCnt, arrayCnt int
		)
		if err := rows.Scan(&id, &label, &fileA, &fileB, &sameOrder, &created,
			&keyCnt, &typeCnt, &valueCnt, &arrayCnt, &payload); err != nil {
			return n, err
		}
		res, err := dst.Exec(`INSERT OR IGNORE INTO checks (id, label, file_a, file_b, array_same_order, created_at,
			key_count, type_count, value_count, array_count, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, label, fileA, fileB, sameOrder, created, keyCnt, typeCnt, valueCnt, arrayCnt, payload)
		if err != nil {
			return n, fmt.Errorf("insert check %s: %w", id, err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			n++
		}
	}
	return n, rows.Err()
}

// ImportCheck records the saved result stored at path in repo.
func ImportCheck(repo *history.Repository, path string, label string) (*history.Check, error) {
	saved, err := check.ReadSaved(path)
	if err != nil {
		return nil, err
	}
	if saved.Config.FileA == "" || saved.Config.FileB == "" {
		return nil, fmt.Errorf("%s: saved result does not name the compared files", path)
	}
	return repo.Record(*saved, label)
}
