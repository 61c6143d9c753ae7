package idempotency

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore guarda as chaves em memória, para uso sem redis
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore cria um MemoryStore; ttl <= 0 usa DefaultTTL
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

// Reserve implementa usecase.IdempotencyStore
func (s *MemoryStore) Reserve(_ context.Context, key, fingerprint string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := saleKey(key)
	if e, ok := s.entries[k]; ok && s.now().Before(e.expiresAt) {
		return resolve(e.value, fingerprint)
	}
	s.entries[k] = entry{value: pendingEntry(fingerprint), expiresAt: s.now().Add(s.ttl)}
	return 0, true, nil
}

// Complete implementa usecase.IdempotencyStore
func (s *MemoryStore) Complete(_ context.Context, key, fingerprint string, saleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[saleKey(key)] = entry{value: completedEntry(saleID, fingerprint), expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Release implementa usecase.IdempotencyStore
func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, saleKey(key))
	return nil
}
