package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/satimage"
)

// QueryFilter narrows a cluster range query. Satellite and Sector are
// optional (zero value matches any); Start/End bound scan_start inclusive;
// BBox, if non-nil, restricts to clusters whose centroid falls inside it.
type QueryFilter struct {
	Satellite satimage.Satellite
	Sector    satimage.Sector
	Start     time.Time
	End       time.Time
	BBox      *geo.BoundingBox
}

// RowIterator lazily yields ClusterRows matching a query. Each call to
// Next advances the cursor; per-row scan failures are returned immediately
// without stopping iteration of subsequent rows (a malformed blob surfaces
// later, when the row's pixels are decoded),
// per spec.md §7 kind 3 — the caller decides whether to skip or stop.
type RowIterator struct {
	rows *sql.Rows
}

// QueryClusters returns a lazy iterator over rows matching filter.
func (db *DB) QueryClusters(filter QueryFilter) (*RowIterator, error) {
	query := `
		SELECT satellite, sector, scan_start, scan_end,
		       centroid_lat, centroid_lon, total_power, total_area,
		       max_temperature, max_scan_angle, pixel_count, pixels_blob
		FROM clusters
		WHERE scan_start >= ? AND scan_start <= ?
	`
	args := []interface{}{filter.Start.Unix(), filter.End.Unix()}

	if filter.Satellite != "" {
		query += " AND satellite = ?"
		args = append(args, string(filter.Satellite))
	}
	if filter.Sector != "" {
		query += " AND sector = ?"
		args = append(args, string(filter.Sector))
	}
	if filter.BBox != nil {
		query += " AND centroid_lat >= ? AND centroid_lat <= ? AND centroid_lon >= ? AND centroid_lon <= ?"
		args = append(args, filter.BBox.LL.Lat, filter.BBox.UR.Lat, filter.BBox.LL.Lon, filter.BBox.UR.Lon)
	}

	query += " ORDER BY scan_start ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: querying clusters: %w", err)
	}

	return &RowIterator{rows: rows}, nil
}

// Next advances the cursor, returning (row, true, nil) on success,
// (zero, false, nil) at exhaustion, and (zero, true, err) for a per-row
// scan error that does not halt iteration.
func (it *RowIterator) Next() (ClusterRow, bool, error) {
	if !it.rows.Next() {
		return ClusterRow{}, false, nil
	}

	var row ClusterRow
	var sat, sector string
	var scanStart, scanEnd int64

	err := it.rows.Scan(
		&sat, &sector, &scanStart, &scanEnd,
		&row.Centroid.Lat, &row.Centroid.Lon, &row.TotalPower, &row.TotalArea,
		&row.MaxTemperature, &row.MaxScanAngle, &row.PixelCount, &row.PixelsBlob,
	)
	if err != nil {
		return ClusterRow{}, true, fmt.Errorf("store: scanning cluster row: %w", err)
	}

	row.Satellite = satimage.Satellite(sat)
	row.Sector = satimage.Sector(sector)
	row.ScanStart = time.Unix(scanStart, 0).UTC()
	row.ScanEnd = time.Unix(scanEnd, 0).UTC()

	return row, true, nil
}

// Close releases the underlying result set.
func (it *RowIterator) Close() error {
	return it.rows.Close()
}
