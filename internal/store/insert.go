package store

import "fmt"

// BufferCapacity is the number of rows the inserter batches in memory
// before flushing as one transaction, grounded on the original source's
// AddFireTransaction::BUFFER_CAPACITY.
const BufferCapacity = 100_000

// Inserter batches ClusterRow inserts and flushes them as a single write
// transaction, either when the buffer fills or when Close/Flush is called.
// The "scoped acquisition" contract (spec.md §5, §9): a flush must happen
// on every exit path, including error unwind, since the in-memory buffer
// cannot be recovered once the process exits.
type Inserter struct {
	db     *DB
	buffer []ClusterRow
}

// PrepareInsert returns a new, empty Inserter bound to db.
func (db *DB) PrepareInsert() *Inserter {
	return &Inserter{db: db, buffer: make([]ClusterRow, 0, BufferCapacity)}
}

// Add appends a row to the buffer, flushing first if the buffer is full.
func (ins *Inserter) Add(row ClusterRow) error {
	if len(ins.buffer) >= BufferCapacity {
		if err := ins.Flush(); err != nil {
			return err
		}
	}
	ins.buffer = append(ins.buffer, row)
	return nil
}

// Flush writes the buffered rows as one BEGIN/COMMIT transaction and
// empties the buffer. A partial flush failure is fatal: the transaction is
// rolled back and none of the buffered rows are stored (they stay in the
// buffer), per spec.md §7 kind 4.
func (ins *Inserter) Flush() error {
	if len(ins.buffer) == 0 {
		return nil
	}

	tx, err := ins.db.Begin()
	if err != nil {
		return fmt.Errorf("store: beginning insert transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO clusters (
			satellite, sector, scan_start, scan_end,
			centroid_lat, centroid_lon, total_power, total_area,
			max_temperature, max_scan_angle, pixel_count, pixels_blob
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("store: preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range ins.buffer {
		_, err := stmt.Exec(
			string(row.Satellite), string(row.Sector),
			row.ScanStart.Unix(), row.ScanEnd.Unix(),
			row.Centroid.Lat, row.Centroid.Lon,
			row.TotalPower, row.TotalArea,
			row.MaxTemperature, row.MaxScanAngle,
			row.PixelCount, row.PixelsBlob,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("store: inserting cluster row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing insert transaction: %w", err)
	}

	ins.buffer = ins.buffer[:0]
	return nil
}

// Close flushes any remaining buffered rows. Callers must call Close on
// every exit path, including error returns, to honor the flush-on-release
// contract.
func (ins *Inserter) Close() error {
	return ins.Flush()
}

// Len reports how many rows are currently buffered, unflushed.
func (ins *Inserter) Len() int {
	return len(ins.buffer)
}
