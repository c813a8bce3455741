package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocations is the in-process fallback used when Redis is not
// configured. Entries are dropped lazily once expired.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocations) RevokeToken(ctx context.Context, tokenId string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenId] = m.now().Add(ttl)
	return nil
}

func (m *MemoryRevocations) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[tokenId]
	if !ok {
		return false, nil
	}
	if !m.now().Before(exp) {
		delete(m.revoked, tokenId)
		return false, nil
	}
	return true, nil
}
