package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gofrs/flock"
	"github.com/tidwall/jsonc"
)

// FileName is the file used by the file backend.
const FileName = "storage.json"

// File is a Storage backed by a single JSON object on disk. Every call
// re-reads the file so values written by another process are visible.
// Writes replace the file atomically under an advisory lock.
type File struct {
	mu     sync.Mutex
	path   string
	flock  *flock.Flock
	logger *slog.Logger
}

var _ Storage = (*File)(nil)

// NewFile returns a File store at path, creating its directory.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &File{
		path:   path,
		flock:  flock.New(path + ".lock"),
		logger: slog.Default(),
	}, nil
}

// Path returns the backing file path.
func (s *File) Path() string { return s.path }

// read loads the whole object. A missing file is an empty store.
func (s *File) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return items, nil
}

func (s *File) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// update applies fn to the stored object under the file lock. A corrupt
// file is moved aside to <path>.corrupt and replaced.
func (s *File) update(fn func(items map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flock.Lock(); err != nil {
		return fmt.Errorf("%w: lock: %v", ErrUnavailable, err)
	}
	defer func() { _ = s.flock.Unlock() }()

	items, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		kept := s.path + ".corrupt"
		if rerr := os.Rename(s.path, kept); rerr != nil {
			return fmt.Errorf("%w: keeping corrupt file: %v", ErrUnavailable, rerr)
		}
		s.logger.Warn("storage file corrupt, starting empty", "path", s.path, "kept", kept, "err", err)
		items, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	fn(items)
	return s.write(items)
}

// GetItem implements Storage.
func (s *File) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem implements Storage.
func (s *File) SetItem(key, value string) error {
	return s.update(func(items map[string]string) { items[key] = value })
}

// RemoveItem implements Storage.
func (s *File) RemoveItem(key string) error {
	return s.update(func(items map[string]string) { delete(items, key) })
}

// Keys implements Storage.
func (s *File) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Storage.
func (s *File) Close() error {
	return s.flock.Close()
}
