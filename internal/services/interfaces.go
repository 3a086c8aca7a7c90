package services

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// LinkRepository описывает хранилище ссылок. Все операции атомарны в пределах одной записи.
type LinkRepository interface {
	// GetByID возвращает ссылку по идентификатору либо repositories.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Link, error)
	// GetByShortCode возвращает ссылку по точному совпадению короткого кода.
	GetByShortCode(ctx context.Context, code string) (*models.Link, error)
	ExistsByShortCode(ctx context.Context, code string) (bool, error)
	// GetAllByOwner ссылки владельца, новые первыми.
	GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error)
	// Create сохраняет ссылку. Нарушение уникальности short_code - repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.Link) (*models.Link, error)
	// Update меняет URL и код, обновляя UpdatedAt.
	Update(ctx context.Context, id int64, in models.LinkInput) (*models.Link, error)
	Delete(ctx context.Context, id int64) error
}

// ListingCache кеш списка ссылок владельца. После каждой успешной мутации кеш владельца сбрасывается.
//
// Каждый сброс увеличивает поколение владельца. Set записывает список, только если поколение
// не изменилось с момента Get: список, прочитанный до мутации, не попадет в кеш после неё.
type ListingCache interface {
	// Get возвращает список, текущее поколение и признак попадания в кеш.
	Get(ctx context.Context, ownerID string) (links []models.Link, generation int64, hit bool, err error)
	// Set сохраняет список, если поколение владельца всё ещё равно generation. Иначе ничего не делает.
	Set(ctx context.Context, ownerID string, generation int64, links []models.Link) error
	Invalidate(ctx context.Context, ownerID string) error
}
