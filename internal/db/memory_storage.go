package db

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/db/memory"
)

type MemoryStorage struct {
	*memory.MStorage
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		MStorage: memory.NewMemStorage(),
	}
}

// Ping хранилище в памяти всегда доступно.
func (s *MemoryStorage) Ping(_ context.Context) error {
	return nil
}
