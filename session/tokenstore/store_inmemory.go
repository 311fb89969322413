package tokenstore

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryStore is an in-memory implementation of Store, used in tests and
// when the portal runs without Redis.
type InMemoryStore struct {
	mu    sync.RWMutex
	pairs map[string]Pair
}

// NewInMemoryStore creates a new in-memory token store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pairs: make(map[string]Pair),
	}
}

// Pair retrieves the token pair for a session. A session that was never
// written (or was cleared) yields an empty pair, not an error.
func (s *InMemoryStore) Pair(_ context.Context, sessionID string) (Pair, error) {
	if sessionID == "" {
		return Pair{}, fmt.Errorf("sessionID is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pairs[sessionID], nil
}

// SetPair stores both tokens of a session in one step
func (s *InMemoryStore) SetPair(_ context.Context, sessionID string, pair Pair) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pairs[sessionID] = pair
	return nil
}

// SetAccess replaces only the access token, keeping the refresh token
func (s *InMemoryStore) SetAccess(_ context.Context, sessionID, access string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pair := s.pairs[sessionID]
	pair.Access = access
	s.pairs[sessionID] = pair
	return nil
}

// Clear removes the token pair of a session. Clearing an absent session is
// not an error.
func (s *InMemoryStore) Clear(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pairs, sessionID)
	return nil
}
