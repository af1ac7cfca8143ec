package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/paisa-pay/paisa_pay/internal/storage"
)

const storageKey = "profile:v1"

// Profile holds the display identity referenced by receipts. Not part of
// the payment core; a plain persisted record.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	ImageURL    string `json:"image_url"`
}

// Store persists the single session profile.
type Store struct {
	mu      sync.RWMutex
	kv      storage.Storage
	current Profile
	loaded  bool
}

// NewStore builds a profile store over the given backend.
func NewStore(kv storage.Storage) *Store {
	return &Store{kv: kv}
}

// Initialize loads the persisted profile, writing the demo identity on
// first run. Idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	raw, err := s.kv.Get(ctx, storageKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.current); err != nil {
			return fmt.Errorf("decode profile: %w", err)
		}
	case errors.Is(err, storage.ErrNotFound):
		s.current = defaultProfile()
		if err := s.persistLocked(ctx); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
	default:
		return fmt.Errorf("load profile: %w", err)
	}

	s.loaded = true
	return nil
}

// Get returns the current profile.
func (s *Store) Get() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the profile and persists it.
func (s *Store) Update(ctx context.Context, p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current
	s.current = p
	if err := s.persistLocked(ctx); err != nil {
		s.current = previous
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.current)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, storageKey, payload, 0)
}

func defaultProfile() Profile {
	return Profile{
		Name:        "Keshav Singh",
		Email:       "keshav.singh@example.com",
		Phone:       "+977-9824897066",
		Address:     "Kathmandu, Nepal",
		DateOfBirth: "1990-05-15",
		ImageURL:    "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg",
	}
}
