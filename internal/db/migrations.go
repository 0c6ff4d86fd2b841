package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ApplyMigrations applies the embedded schema SQL to the database and
// performs lightweight post-creation migrations (adding new columns when needed).
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if err := ensureCheckColumns(db); err != nil {
		return fmt.Errorf("migrate checks: %w", err)
	}
	return nil
}

// ensureCheckColumns adds columns missing from databases created before
// they were part of the schema.
func ensureCheckColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(checks)")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_ = rows.Close()
	if !cols["label"] {
		if _, err := db.Exec("ALTER TABLE checks ADD COLUMN label TEXT"); err != nil {
			return err
		}
	}
	return nil
}
