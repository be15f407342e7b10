package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations for the given dialect.
func Migrate(db *sql.DB, dialect Dialect) error {
	stmts, ok := migrations[dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}
	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = map[Dialect][]string{
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS blobs (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS blobs (
			key        TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
}
