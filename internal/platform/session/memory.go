package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.Mutex
	tokens map[string]map[string]bool
}

// NewMemoryStore returns a process-local Store. Used in tests; entries never
// expire, which only matters over a token's 7-day lifetime.
func NewMemoryStore() Store {
	return &memoryStore{tokens: map[string]map[string]bool{}}
}

func (s *memoryStore) Add(ctx context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens[userID] == nil {
		s.tokens[userID] = map[string]bool{}
	}
	s.tokens[userID][token] = true
	return nil
}

func (s *memoryStore) Contains(ctx context.Context, userID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[userID][token], nil
}

func (s *memoryStore) Remove(ctx context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens[userID], token)
	return nil
}
