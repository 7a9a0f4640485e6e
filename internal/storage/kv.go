package storage

import (
	"fmt"

	"github.com/julianstephens/habitgrid/internal/constants"
)

// KV is a key-value store holding serialized records.
type KV interface {
	// Open prepares the backing store, creating it when missing
	Open() error
	Close() error

	// Get returns the value stored under key; ok is false when absent
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error

	// Location identifies the backing store (a file path, or "postgresql")
	Location() string
}

// SchemaChecker is implemented by backends with a versioned schema
type SchemaChecker interface {
	CheckSchema() error
}

// New returns an unopened KV for the named backend.
// For postgres, location is the connection string.
func New(backend, location string) (KV, error) {
	switch backend {
	case constants.BackendJSON:
		return NewFileKV(location), nil
	case constants.BackendSQLite, "":
		return NewSQLiteKV(location), nil
	case constants.BackendPostgres:
		return NewPostgresKV(location), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected json, sqlite or postgres)", backend)
	}
}
