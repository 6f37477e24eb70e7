package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/Muliro1/alx-files-manager/internal/common"
)

type memoryItem struct {
	value   string
	expires time.Time
}

// MemoryStore is an in-process Store used in tests and single-node runs.
// Expired keys are dropped lazily on read.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memoryItem{value: value, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	if !ok {
		return "", common.ErrorNotFound
	}
	if s.now().After(item.expires) {
		delete(s.items, key)
		return "", common.ErrorNotFound
	}
	return item.value, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
