package session

import (
	"context"
	"sync"
	"time"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
)

type memoryEntry struct {
	result    *diagnosis.Result
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore returns the default in-process store. Entries expire
// ttl after their last save.
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &memoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) Save(_ context.Context, sessionID string, result *diagnosis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.entries[sessionID] = memoryEntry{result: result, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (*diagnosis.Result, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, false, nil
	}
	return entry.result, true, nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// sweep runs under s.mu.
func (s *memoryStore) sweep() {
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
