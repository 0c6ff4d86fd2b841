package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestRejectBlobPayloadInsert(t *testing.T) {
	db, err := sql.Open("sqlite", "file:test_blob?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := ApplyMigrations(db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	// []byte params are bound as blobs
	if _, err := db.Exec("INSERT INTO checks (id, file_a, file_b, created_at, payload) VALUES (?, ?, ?, datetime('now'), ?)",
		"blob", "a.json", "b.json", []byte{0xff, 0xfe}); err == nil {
		t.Fatalf("expected blob payload insert to be rejected by trigger")
	}
}
