package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/db/memory"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

// LinkRepo репозиторий ссылок в памяти.
type LinkRepo struct {
	s *db.MemoryStorage
	// codes индекс short_code -> id. Аналог уникального индекса в sql.
	codes map[string]int64
	mu    sync.RWMutex
	now   func() time.Time
}

// NewLinkRepo создает новый экземпляр репозитория.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{
		s:     store,
		codes: make(map[string]int64),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// GetByID находит ссылку по идентификатору.
func (r *LinkRepo) GetByID(ctx context.Context, id int64) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, key(id), r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to get link by id %d: %w", id, convertErrorType(err))
	}
	return link, nil
}

// GetByShortCode находит ссылку по короткому коду.
func (r *LinkRepo) GetByShortCode(ctx context.Context, code string) (*models.Link, error) {
	r.mu.RLock()
	id, ok := r.codes[code]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("failed to get link by short code %s: %w", code, repositories.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// ExistsByShortCode проверяет занят ли короткий код.
func (r *LinkRepo) ExistsByShortCode(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check short code %s: %w", code, convertErrorType(err))
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codes[code]
	return ok, nil
}

// GetAllByOwner возвращает ссылки владельца, новые первыми.
func (r *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	links, err := memory.FilterAll[models.Link](ctx, r.s.MStorage, func(l models.Link) bool {
		return l.OwnerID == ownerID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get links by owner %s: %w", ownerID, convertErrorType(err))
	}
	slices.SortFunc(links, func(a, b models.Link) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return links, nil
}

// Create сохраняет новую ссылку, назначая ей ID и временные метки.
func (r *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.codes[link.ShortCode]; taken {
		return nil, fmt.Errorf("failed to create link %s: %w", link.ShortCode, repositories.ErrDuplicateKey)
	}

	now := r.now()
	created := *link
	created.ID = r.s.NextID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := memory.Set[models.Link](ctx, key(created.ID), &created, r.s.MStorage); err != nil {
		return nil, fmt.Errorf("failed to create link %s: %w", link.ShortCode, convertErrorType(err))
	}
	r.codes[created.ShortCode] = created.ID
	return &created, nil
}

// Update изменяет URL и короткий код ссылки, обновляя UpdatedAt.
func (r *LinkRepo) Update(ctx context.Context, id int64, in models.LinkInput) (*models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := memory.Get[models.Link](ctx, key(id), r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to update link %d: %w", id, convertErrorType(err))
	}

	if owner, taken := r.codes[in.ShortCode]; taken && owner != id {
		return nil, fmt.Errorf("failed to update link %d: %w", id, repositories.ErrDuplicateKey)
	}

	oldCode := link.ShortCode
	link.OriginalURL = in.OriginalURL
	link.ShortCode = in.ShortCode
	link.UpdatedAt = r.now()

	if setErr := memory.Set[models.Link](ctx, key(id), link, r.s.MStorage, memory.WithMustExist()); setErr != nil {
		return nil, fmt.Errorf("failed to update link %d: %w", id, convertErrorType(setErr))
	}
	delete(r.codes, oldCode)
	r.codes[link.ShortCode] = id
	return link, nil
}

// Delete удаляет ссылку безвозвратно.
func (r *LinkRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := memory.Get[models.Link](ctx, key(id), r.s.MStorage)
	if err != nil {
		return fmt.Errorf("failed to delete link %d: %w", id, convertErrorType(err))
	}
	if delErr := memory.Delete(ctx, key(id), r.s.MStorage); delErr != nil {
		return fmt.Errorf("failed to delete link %d: %w", id, convertErrorType(delErr))
	}
	delete(r.codes, link.ShortCode)
	return nil
}
