package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Application state is stored as
// whole-collection JSON snapshots in a flat key/value table; every write
// overwrites the previous snapshot (last write wins, single writer).
const schema = `
CREATE TABLE IF NOT EXISTS state (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
