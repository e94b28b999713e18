package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rnleach/satfire/internal/satimage"
)

// operationalSinceOverrideLayout is the date format an
// MetaKeyOperationalSinceOverridePrefix value is parsed with.
const operationalSinceOverrideLayout = "2006-01-02"

// MetaGet reads a value from the generic meta key/value table, returning
// ("", false, nil) if the key is absent.
func (db *DB) MetaGet(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT item_value FROM meta WHERE item_name = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: reading meta %q: %w", key, err)
	}
	return value, true, nil
}

// MetaSet upserts a value into the meta table.
func (db *DB) MetaSet(key, value string) error {
	_, err := db.Exec(
		`INSERT INTO meta (item_name, item_value) VALUES (?, ?)
		 ON CONFLICT(item_name) DO UPDATE SET item_value = excluded.item_value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("store: writing meta %q: %w", key, err)
	}
	return nil
}

// MetaKeyOperationalSinceOverridePrefix is the meta key prefix operators can
// set to override a satellite's built-in operational-since cutoff without a
// code change, keyed as "operational_since_override:<satellite>" with a
// "YYYY-MM-DD" value.
const MetaKeyOperationalSinceOverridePrefix = "operational_since_override:"

// OperationalSinceOverride reads the operator-set operational-since
// override for sat, if one has been stored via MetaSet.
func (db *DB) OperationalSinceOverride(sat satimage.Satellite) (time.Time, bool, error) {
	raw, ok, err := db.MetaGet(MetaKeyOperationalSinceOverridePrefix + string(sat))
	if err != nil {
		return time.Time{}, false, err
	}
	if !ok {
		return time.Time{}, false, nil
	}

	t, err := time.Parse(operationalSinceOverrideLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("store: parsing operational-since override for %s: %w", sat, err)
	}
	return t, true, nil
}
