package store

import (
	"database/sql"
	"fmt"

	"github.com/rnleach/satfire/internal/satimage"
)

// PresenceChecker answers "has this image already been ingested?" against
// a prepared statement held open for the lifetime of a presence-filter
// stage run.
type PresenceChecker struct {
	stmt *sql.Stmt
}

// PreparePresenceQuery returns a handle the presence filter can call
// repeatedly without re-preparing the statement per path. Failure to
// prepare is fatal for the calling stage, per spec.md §7 kind 3.
func (db *DB) PreparePresenceQuery() (*PresenceChecker, error) {
	stmt, err := db.Prepare(`
		SELECT EXISTS(
			SELECT 1 FROM clusters
			WHERE satellite = ? AND sector = ? AND scan_start = ? AND scan_end = ?
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("store: preparing presence query: %w", err)
	}
	return &PresenceChecker{stmt: stmt}, nil
}

// Present reports whether a row already exists for key.
func (c *PresenceChecker) Present(key satimage.PresenceKey) (bool, error) {
	var present bool
	row := c.stmt.QueryRow(
		string(key.Satellite), string(key.Sector),
		key.ScanStart.Unix(), key.ScanEnd.Unix(),
	)
	if err := row.Scan(&present); err != nil {
		return false, fmt.Errorf("store: presence query: %w", err)
	}
	return present, nil
}

// Close releases the prepared statement.
func (c *PresenceChecker) Close() error {
	return c.stmt.Close()
}
