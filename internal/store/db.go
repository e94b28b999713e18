package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a sqlite connection opened against the cluster store schema.
// Every package-level operation (Inserter, PresenceChecker, QueryClusters,
// NewestScanStart, Meta) is a method on DB; per spec.md §5, stages that
// need the store each open their own DB handle rather than sharing one.
type DB struct {
	*sql.DB
}

func migrationsSubFS() (fs.FS, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("store: sub-filesystem for embedded migrations: %w", err)
	}
	return sub, nil
}

// applyPragmas sets the WAL/busy-timeout PRAGMAs every connection to the
// store needs, since the writer stage mutates the database while the
// walker and presence filter hold concurrent read-only connections
// (spec.md §5).
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("store: executing %q: %w", p, err)
		}
	}
	return nil
}

// Open opens (creating if absent) the cluster store at path, applies the
// concurrency PRAGMAs, and brings the schema up to the latest migration.
// Open is idempotent: calling it against an already-current database is a
// no-op beyond the PRAGMAs.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}

	db := &DB{sqlDB}

	if err := applyPragmas(sqlDB); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.migrateToLatest(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrating %s: %w", path, err)
	}

	return db, nil
}
