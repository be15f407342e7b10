package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/showrunner/internal/db"
)

type sqlQueries struct {
	get    string
	put    string
	delete string
}

var dialectQueries = map[db.Dialect]sqlQueries{
	db.DialectSQLite: {
		get: `SELECT data FROM blobs WHERE key = ?`,
		put: `INSERT INTO blobs (key, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		delete: `DELETE FROM blobs WHERE key = ?`,
	},
	db.DialectPostgres: {
		get: `SELECT data FROM blobs WHERE key = $1`,
		put: `INSERT INTO blobs (key, data, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		delete: `DELETE FROM blobs WHERE key = $1`,
	},
}

// SQLStore keeps blobs in a single "blobs" table. It backs both the sqlite
// and postgres drivers.
type SQLStore struct {
	db      db.DBTX
	closer  func() error
	driver  Driver
	queries sqlQueries
	now     func() time.Time
}

// OpenSQLite opens (and migrates) the SQLite database at path.
func OpenSQLite(path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite blob store requires a path")
	}
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	return newSQLStore(database, database.Close, DriverSQLite, db.DialectSQLite), nil
}

// OpenPostgres connects to PostgreSQL and migrates the blobs table.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	database, err := db.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return newSQLStore(database, database.Close, DriverPostgres, db.DialectPostgres), nil
}

// NewSQLStore wraps an already migrated connection. The caller owns its lifetime.
func NewSQLStore(conn db.DBTX, dialect db.Dialect) *SQLStore {
	driver := DriverSQLite
	if dialect == db.DialectPostgres {
		driver = DriverPostgres
	}
	return newSQLStore(conn, func() error { return nil }, driver, dialect)
}

func newSQLStore(conn db.DBTX, closer func() error, driver Driver, dialect db.Dialect) *SQLStore {
	return &SQLStore{
		db:      conn,
		closer:  closer,
		driver:  driver,
		queries: dialectQueries[dialect],
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *SQLStore) Driver() Driver { return s.driver }

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return data, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, data []byte) error {
	updated := s.now()
	var stamp any = updated
	if s.driver == DriverSQLite {
		stamp = updated.Format(time.RFC3339Nano)
	}
	if _, err := s.db.ExecContext(ctx, s.queries.put, key, data, stamp); err != nil {
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.queries.delete, key); err != nil {
		return fmt.Errorf("deleting blob %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.closer() }
