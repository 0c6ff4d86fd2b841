package history

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/nameutil"
)

// ErrAmbiguousID is returned when an id prefix matches more than one check.
var ErrAmbiguousID = errors.New("id prefix matches more than one check")

const selectColumns = `SELECT id, label, file_a, file_b, array_same_order, created_at,
	key_count, type_count, value_count, array_count, payload FROM checks`

// Repository stores and retrieves recorded checks.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Record stores a saved result and returns the recorded check.
func (r *Repository) Record(saved check.SavedContext, label string) (*Check, error) {
	label, _ = nameutil.SanitizeLabel(label)
	if label != "" {
		if err := nameutil.ValidateLabel(label); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := check.EncodeSaved(&buf, saved); err != nil {
		return nil, fmt.Errorf("encode check: %w", err)
	}
	c := &Check{
		ID:             uuid.NewString(),
		Label:          sql.NullString{String: label, Valid: label != ""},
		FileA:          saved.Config.FileA,
		FileB:          saved.Config.FileB,
		ArraySameOrder: saved.Config.ArraySameOrder,
		CreatedAt:      r.now().UTC(),
		KeyCount:       len(saved.KeyDiff),
		TypeCount:      len(saved.TypeDiff),
		ValueCount:     len(saved.ValueDiff),
		ArrayCount:     len(saved.ArrayDiff),
		Payload:        buf.String(),
	}
	_, err := r.db.Exec(`INSERT INTO checks (id, label, file_a, file_b, array_same_order, created_at,
		key_count, type_count, value_count, array_count, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Label, c.FileA, c.FileB, c.ArraySameOrder, c.CreatedAt.Format(timeLayout),
		c.KeyCount, c.TypeCount, c.ValueCount, c.ArrayCount, c.Payload)
	if err != nil {
		return nil, fmt.Errorf("insert check: %w", err)
	}
	return c, nil
}

// List returns recorded checks, newest first. A limit of 0 returns all.
func (r *Repository) List(limit int) ([]Check, error) {
	q := selectColumns + " ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	return r.query(q, args...)
}

// Get returns the check whose id equals or starts with idOrPrefix.
// It returns (nil, nil) when nothing matches.
func (r *Repository) Get(idOrPrefix string) (*Check, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, nil
	}
	exact, err := r.query(selectColumns+" WHERE id = ?", idOrPrefix)
	if err != nil {
		return nil, err
	}
	if len(exact) == 1 {
		return &exact[0], nil
	}
	pattern := escapeLike(idOrPrefix) + "%"
	found, err := r.query(selectColumns+` WHERE id LIKE ? ESCAPE '\' LIMIT 2`, pattern)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
}

// Delete removes the check with the given id. Deleting a missing id is not an error.
func (r *Repository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM checks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete check: %w", err)
	}
	return nil
}

// Prune keeps the newest keep checks and deletes the rest. It returns the
// number of deleted checks.
func (r *Repository) Prune(keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("invalid keep count %d", keep)
	}
	res, err := r.db.Exec(`DELETE FROM checks WHERE id NOT IN
		(SELECT id FROM checks ORDER BY created_at DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune checks: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of recorded checks.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT count(*) FROM checks").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) query(q string, args ...any) ([]Check, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Check
	for rows.Next() {
		var c Check
		var created string
		if err := rows.Scan(&c.ID, &c.Label, &c.FileA, &c.FileB, &c.ArraySameOrder, &created,
			&c.KeyCount, &c.TypeCount, &c.ValueCount, &c.ArrayCount, &c.Payload); err != nil {
			return nil, err
		}
		c.CreatedAt, err = time.Parse(parseLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
