// Package storage provides a small durable key/value store modelled on the
// browser's local storage: string keys, string values, synchronous calls.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

var (
	// ErrUnavailable is returned when the backing store cannot be used at all.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded is returned when a write would exceed the store's quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrCorrupt is returned when the backing data cannot be decoded.
	ErrCorrupt = errors.New("storage corrupt")
)

// Storage is a durable string key/value store.
type Storage interface {
	// GetItem returns the value under key and whether it was present.
	GetItem(key string) (string, bool, error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
	// Keys lists the stored keys in ascending order.
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open constructs a Storage for the named backend rooted in dir. Recoverable
// problems, such as a corrupt file being replaced, are logged to logger.
func Open(backend, dir string, logger *slog.Logger) (Storage, error) {
	switch backend {
	case "", BackendFile:
		if dir == "" {
			return nil, fmt.Errorf("file storage requires a directory: %w", ErrUnavailable)
		}
		f, err := NewFile(filepath.Join(dir, FileName))
		if err != nil {
			return nil, err
		}
		if logger != nil {
			f.logger = logger
		}
		return f, nil
	case BackendSQLite:
		if dir == "" {
			return nil, fmt.Errorf("sqlite storage requires a directory: %w", ErrUnavailable)
		}
		return NewSQLite(filepath.Join(dir, SQLiteName))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// Path returns the file Watch should observe for the named backend.
func Path(backend, dir string) string {
	switch backend {
	case "", BackendFile:
		return filepath.Join(dir, FileName)
	case BackendSQLite:
		return filepath.Join(dir, SQLiteName)
	default:
		return ""
	}
}
