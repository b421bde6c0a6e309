// Package credential holds the secret that unlocks the gate.
package credential

import (
	"errors"
	"sync"
)

var (
	// ErrEmptyCredential is returned when a store is created without a
	// secret.
	ErrEmptyCredential = errors.New("credential must not be empty")

	// ErrRejected is returned when a credential change is refused, either
	// because the old secret does not match or because the new one is empty.
	ErrRejected = errors.New("credential change rejected")
)

// Store holds the current secret. It is safe for concurrent use because
// credential changes come from the presentation task.
type Store struct {
	lock   sync.RWMutex
	secret string
}

// NewStore creates a store holding the given secret.
func NewStore(secret string) (*Store, error) {
	if secret == "" {
		return nil, ErrEmptyCredential
	}

	return &Store{secret: secret}, nil
}

// Validate tells if the candidate equals the current secret exactly.
func (s *Store) Validate(candidate string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return candidate == s.secret
}

// Rotate replaces the secret with newSecret if old matches the current secret
// and newSecret is not empty. Otherwise the secret is left untouched and
// ErrRejected is returned.
func (s *Store) Rotate(old, newSecret string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if old != s.secret || newSecret == "" {
		return ErrRejected
	}

	s.secret = newSecret

	return nil
}
