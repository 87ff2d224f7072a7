package session

import (
	"context"
	"sync"
	"time"

	"github.com/ppetukhova/recipebox/internal/apperrors"
)

// Store keeps server-side session state keyed by opaque token.
// The in-memory implementation below covers single-instance deployments;
// multi-instance setups would provide an external key-value backed one.
type Store interface {
	// Save token for the user until expiresAt
	Save(ctx context.Context, token string, userID int64, expiresAt time.Time) error

	// Resolve token to a user id
	// Unknown or expired tokens must return apperrors.ErrNoSession
	Get(ctx context.Context, token string) (int64, error)

	// Delete token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = memoryEntry{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return 0, apperrors.ErrNoSession
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return 0, apperrors.ErrNoSession
	}

	return entry.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}
