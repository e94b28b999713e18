package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rnleach/satfire/internal/satimage"
)

// NewestScanStart returns the largest scan_start already stored for
// (sat, sector), or the satellite's operational-since date if no row
// exists yet for that pair.
func (db *DB) NewestScanStart(sat satimage.Satellite, sector satimage.Sector) (time.Time, error) {
	var maxScanStart sql.NullInt64
	err := db.QueryRow(
		`SELECT MAX(scan_start) FROM clusters WHERE satellite = ? AND sector = ?`,
		string(sat), string(sector),
	).Scan(&maxScanStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: newest scan start for %s/%s: %w", sat, sector, err)
	}

	if maxScanStart.Valid {
		return time.Unix(maxScanStart.Int64, 0).UTC(), nil
	}

	fallback, ok := sat.OperationalSince()
	if !ok {
		return time.Time{}, fmt.Errorf("store: no operational-since cutoff known for satellite %q", sat)
	}
	return fallback, nil
}
