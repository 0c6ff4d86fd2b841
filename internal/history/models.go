// Package history keeps a local record of completed checks.
package history

import (
	"database/sql"
	"strings"
	"time"

	"github.com/VoxDroid/dtf/internal/check"
)

const (
	// timeLayout is fixed-width so that created_at sorts lexically.
	timeLayout = "2006-01-02 15:04:05.000000"
	// parseLayout also accepts rows written by SQLite's datetime().
	parseLayout = "2006-01-02 15:04:05"
)

// Check is one recorded comparison.
type Check struct {
	ID             string
	Label          sql.NullString
	FileA          string
	FileB          string
	ArraySameOrder bool
	CreatedAt      time.Time
	KeyCount       int
	TypeCount      int
	ValueCount     int
	ArrayCount     int
	Payload        string
}

// Total returns the number of differences recorded for the check.
func (c Check) Total() int {
	return c.KeyCount + c.TypeCount + c.ValueCount + c.ArrayCount
}

// ShortID returns the first eight characters of the id.
func (c Check) ShortID() string {
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

// Saved decodes the stored result.
func (c Check) Saved() (*check.SavedContext, error) {
	return check.DecodeSaved(strings.NewReader(c.Payload))
}

// searchText is what fuzzy search matches against.
func (c Check) searchText() string {
	parts := []string{c.FileA, c.FileB}
	if c.Label.Valid {
		parts = append([]string{c.Label.String}, parts...)
	}
	return strings.Join(parts, " ")
}
