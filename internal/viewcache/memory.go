package viewcache

import (
	"context"
	"sync"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
)

type memoryEntry struct {
	links     []models.Link
	expiresAt time.Time
}

// Memory кеш списков в памяти процесса, для SQL-хранилищ без redis.
type Memory struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	listings    map[string]memoryEntry
	generations map[string]int64
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:         ttl,
		now:         time.Now,
		listings:    make(map[string]memoryEntry),
		generations: make(map[string]int64),
	}
}

func (m *Memory) Get(_ context.Context, ownerID string) ([]models.Link, int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gen := m.generations[ownerID]
	entry, ok := m.listings[ownerID]
	if !ok {
		return nil, gen, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.listings, ownerID)
		return nil, gen, false, nil
	}
	return append([]models.Link{}, entry.links...), gen, true, nil
}

func (m *Memory) Set(_ context.Context, ownerID string, generation int64, links []models.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generations[ownerID] != generation {
		return nil
	}
	m.listings[ownerID] = memoryEntry{
		links:     append([]models.Link{}, links...),
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generations[ownerID]++
	delete(m.listings, ownerID)
	return nil
}
