// Package blob stores opaque named blobs. The workspace keeps each persisted
// collection under its own key, so every backend only needs get/put/delete.
package blob

import (
	"context"
	"errors"
	"fmt"
)

// Driver identifies a blob backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverS3       Driver = "s3"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

// Drivers lists every supported backend.
var Drivers = []Driver{DriverMemory, DriverFile, DriverSQLite, DriverS3, DriverRedis, DriverPostgres}

func (d Driver) Valid() bool {
	for _, v := range Drivers {
		if v == d {
			return true
		}
	}
	return false
}

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// Store is a flat key/blob store. Writes to different keys are independent;
// no backend offers a multi-key transaction.
type Store interface {
	Driver() Driver
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type PostgresConfig struct {
	DSN string
}

// Config selects and parameterizes a backend.
type Config struct {
	Driver   Driver
	Path     string // sqlite database path
	Dir      string // file driver directory
	S3       S3Config
	Redis    RedisConfig
	Postgres PostgresConfig
}

// Open constructs the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFileStore(cfg.Dir)
	case DriverSQLite, "":
		return OpenSQLite(cfg.Path)
	case DriverS3:
		return NewS3Store(ctx, cfg.S3)
	case DriverRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
