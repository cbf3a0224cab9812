package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wilbur182/portfolio/internal/storage"
)

// StorageKey is the storage record holding the notes list.
const StorageKey = "portfolio.notes"

// ErrEmptyNote is returned when adding a note with no text.
var ErrEmptyNote = errors.New("note is empty")

// Note is a single entry in the notes list.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is a list of notes kept in a storage.Storage.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	notes   []Note
	now     func() time.Time
}

// NewStore loads the notes held in s.
func NewStore(s storage.Storage) (*Store, error) {
	st := &Store{storage: s, now: time.Now}
	return st, st.load()
}

func (s *Store) load() error {
	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		return fmt.Errorf("read notes: %w", err)
	}
	if !ok {
		return nil
	}
	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return fmt.Errorf("decode notes: %w: %v", storage.ErrCorrupt, err)
	}
	s.notes = notes
	return nil
}

func (s *Store) save() error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	return nil
}

// List returns the notes, oldest first.
func (s *Store) List() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Add appends a note. The note is kept in memory even if saving fails.
func (s *Store) Add(text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyNote
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := Note{ID: uuid.NewString(), Text: text, CreatedAt: s.now().UTC()}
	s.notes = append(s.notes, n)
	return n, s.save()
}

// Delete removes the note with id. Deleting a missing note is a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return s.save()
		}
	}
	return nil
}
