package storage

import (
	"sort"
	"sync"
)

// Memory is an in-memory Storage. It is used for tests and for sessions
// where persistence is disabled.
type Memory struct {
	mu    sync.Mutex
	items map[string]string

	// Quota caps the total size of keys and values in bytes. Zero means no cap.
	Quota int
	// Unavailable makes every call fail with ErrUnavailable.
	Unavailable bool
}

var _ Storage = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// GetItem implements Storage.
func (s *Memory) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Unavailable {
		return "", false, ErrUnavailable
	}
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem implements Storage.
func (s *Memory) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Unavailable {
		return ErrUnavailable
	}
	if s.Quota > 0 {
		size := len(key) + len(value)
		for k, v := range s.items {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > s.Quota {
			return ErrQuotaExceeded
		}
	}
	s.items[key] = value
	return nil
}

// RemoveItem implements Storage.
func (s *Memory) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Unavailable {
		return ErrUnavailable
	}
	delete(s.items, key)
	return nil
}

// Keys implements Storage.
func (s *Memory) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Unavailable {
		return nil, ErrUnavailable
	}
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Storage.
func (s *Memory) Close() error { return nil }
