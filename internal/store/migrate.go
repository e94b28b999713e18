package store

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrateToLatest applies every pending migration under
// internal/store/migrations to bring the database to the latest schema
// version, grounded on the teacher's internal/db migration machinery
// (golang-migrate with the sqlite database driver and an iofs source
// driver over the embedded migrations directory).
func (db *DB) migrateToLatest() error {
	m, err := db.newMigrate()
	if err != nil {
		return err
	}
	// m.Close() is intentionally not called: the sqlite driver's Close
	// closes the underlying *sql.DB, which DB manages separately.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating up: %w", err)
	}

	return nil
}

func (db *DB) newMigrate() (*migrate.Migrate, error) {
	source, err := migrationsSubFS()
	if err != nil {
		return nil, err
	}

	sourceDriver, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("iofs source driver: %w", err)
	}

	dbDriver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("sqlite migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}
	m.Log = migrateLogger{}

	return m, nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) { log.Printf("[store migrate] "+format, v...) }
func (migrateLogger) Verbose() bool                          { return false }
