package controllers

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/store.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// LinkManager операции владельца над своими ссылками. ownerID пустой для анонимного посетителя.
type LinkManager interface {
	Create(ctx context.Context, ownerID string, in models.LinkInput) (*models.Link, error)
	Update(ctx context.Context, ownerID string, id int64, in models.LinkInput) (*models.Link, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Link, error)
}

type LinkResolver interface {
	Resolve(ctx context.Context, shortCode string) (*models.Link, error)
}

// LinkService всё, что роутеру нужно от сервиса ссылок.
type LinkService interface {
	LinkManager
	LinkResolver
}
