package features

import (
	"encoding/json"
	"fmt"

	"github.com/wilbur182/portfolio/internal/storage"
)

// StorageKey is the storage record holding persisted flag overrides.
const StorageKey = "portfolio.featureFlags"

// LoadResult is the outcome of reading persisted overrides. Flags is never
// nil; when Err is set it is empty and the caller picks the fallback.
type LoadResult struct {
	Flags Partial
	// Unknown lists names in the record that are not in the schema.
	Unknown []string
	Err     error
}

// OK reports whether the record was read successfully (including absent).
func (r LoadResult) OK() bool { return r.Err == nil }

// Store reads and writes flag overrides in a storage.Storage.
type Store struct {
	storage storage.Storage
}

// NewStore returns a Store over s. A nil s yields a Store whose reads are
// empty and whose writes fail with storage.ErrUnavailable.
func NewStore(s storage.Storage) *Store {
	return &Store{storage: s}
}

// Load reads the persisted overrides.
func (s *Store) Load() LoadResult {
	if s == nil || s.storage == nil {
		return LoadResult{Flags: Partial{}, Err: storage.ErrUnavailable}
	}
	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		return LoadResult{Flags: Partial{}, Err: fmt.Errorf("read %s: %w", StorageKey, err)}
	}
	if !ok {
		return LoadResult{Flags: Partial{}}
	}

	var values map[string]bool
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return LoadResult{Flags: Partial{}, Err: fmt.Errorf("decode %s: %w: %v", StorageKey, storage.ErrCorrupt, err)}
	}
	flags, unknown := PartialFromNames(values)
	return LoadResult{Flags: flags, Unknown: unknown}
}

// Save writes the whole of m, replacing any previous record.
func (s *Store) Save(m Map) error {
	if s == nil || s.storage == nil {
		return storage.ErrUnavailable
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	return nil
}

// Clear removes the persisted record.
func (s *Store) Clear() error {
	if s == nil || s.storage == nil {
		return storage.ErrUnavailable
	}
	if err := s.storage.RemoveItem(StorageKey); err != nil {
		return fmt.Errorf("remove %s: %w", StorageKey, err)
	}
	return nil
}
