package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ilm-tools/po-extract/internal/batch"
	"github.com/ilm-tools/po-extract/internal/table"
)

// Entry is one uploaded batch kept in memory: the extraction table plus the
// documents that were skipped while building it.
type Entry struct {
	Table   *table.Table
	Skipped []batch.Skip
	Created time.Time
}

// Store holds extraction results between the upload request and the later
// view and download requests. Entries live for the process lifetime unless
// deleted.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
	}
}

// Put stores a batch result and returns its generated id.
func (s *Store) Put(t *table.Table, skipped []batch.Skip) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &Entry{
		Table:   t,
		Skipped: skipped,
		Created: time.Now(),
	}
	return id
}

// Get returns the entry for id.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("no result with id %s", id)
	}
	return entry, nil
}

// Delete removes the entry for id. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
