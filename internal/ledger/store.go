package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/paisa-pay/paisa_pay/internal/storage"
)

// storageKey is the fixed record under which the full history is
// persisted, most-recent-first.
const storageKey = "payment_history:v1"

// Store is the append-only payment history. Entries live in memory in
// most-recent-first order and the whole list is written through to the
// configured storage backend on every mutation.
type Store struct {
	mu          sync.Mutex
	kv          storage.Storage
	entries     []Entry
	initialized bool
	dirty       bool
}

// NewStore builds a history store over the given persistence backend.
func NewStore(kv storage.Storage) *Store {
	return &Store{kv: kv}
}

// Initialize loads persisted entries, seeding the demo set on first run.
// Calling it again is a no-op. A failed seed write still initializes the
// store and marks it dirty, so the built seed is kept and Flush retries
// the write instead of a later Initialize regenerating it.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	raw, err := s.kv.Get(ctx, storageKey)
	switch {
	case err == nil:
		var loaded []Entry
		if err := json.Unmarshal(raw, &loaded); err != nil {
			return fmt.Errorf("decode payment history: %w", err)
		}
		s.entries = loaded
	case errors.Is(err, storage.ErrNotFound):
		s.entries = seedEntries()
		s.initialized = true
		if err := s.persistLocked(ctx); err != nil {
			s.dirty = true
			return &PersistenceError{Op: "seed", Err: err}
		}
	default:
		return fmt.Errorf("load payment history: %w", err)
	}

	s.initialized = true
	return nil
}

// Append assigns a unique id, prepends the entry and writes the updated
// history through. On a failed write the in-memory append stands and a
// *PersistenceError is returned alongside the stored entry.
func (s *Store) Append(ctx context.Context, input EntryInput) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:              uuid.NewString(),
		Kind:            input.Kind,
		Title:           input.Title,
		Subtitle:        input.Subtitle,
		Amount:          input.Amount,
		Status:          input.Status,
		OccurredAt:      input.OccurredAt,
		TransactionCode: input.TransactionCode,
		Counterparty:    input.Counterparty,
		Provider:        input.Provider,
		Category:        input.Category,
	}

	s.entries = append([]Entry{entry}, s.entries...)

	if err := s.persistLocked(ctx); err != nil {
		s.dirty = true
		return entry, &PersistenceError{Op: "append", Err: err}
	}
	s.dirty = false
	return entry, nil
}

// ByCategory returns entries matching the category in stored order. The
// CategoryAll sentinel returns everything.
func (s *Store) ByCategory(category Category) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == CategoryAll {
		return append([]Entry(nil), s.entries...)
	}

	var matched []Entry
	for _, e := range s.entries {
		if e.Category == category {
			matched = append(matched, e)
		}
	}
	return matched
}

// Recent returns up to limit of the most recent entries.
func (s *Store) Recent(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		return nil
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return append([]Entry(nil), s.entries[:limit]...)
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear empties the history and persists the empty list, so a reload
// stays empty instead of re-seeding. Irreversible.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.persistLocked(ctx); err != nil {
		s.dirty = true
		return &PersistenceError{Op: "clear", Err: err}
	}
	s.dirty = false
	return nil
}

// Flush retries the durable write after an earlier persistence failure.
// It is a no-op when the store is clean.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	if err := s.persistLocked(ctx); err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}
	s.dirty = false
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, storageKey, payload, 0)
}
