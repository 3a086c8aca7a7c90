package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fsdevblog/shortlinks/internal/metrics"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/fsdevblog/shortlinks/internal/validation"
)

// LinkService управление ссылками владельца и поиск ссылки для редиректа.
//
// Все ожидаемые ошибки возвращаются в виде, пригодном для показа пользователю
// (см. errors.go). Непредвиденные ошибки хранилища логируются и подменяются на *OperationError.
type LinkService struct {
	repo   LinkRepository
	views  ListingCache
	logger *zap.Logger
}

// NewLinkService создает сервис. views и logger могут быть nil.
func NewLinkService(repo LinkRepository, views ListingCache, logger *zap.Logger) *LinkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkService{
		repo:   repo,
		views:  views,
		logger: logger.Named("links"),
	}
}

// Create создает ссылку от имени ownerID.
func (s *LinkService) Create(ctx context.Context, ownerID string, in models.LinkInput) (*models.Link, error) {
	link, err := s.create(ctx, ownerID, in)
	metrics.ObserveMutation(string(OperationCreate), resultLabel(err))
	return link, err
}

func (s *LinkService) create(ctx context.Context, ownerID string, in models.LinkInput) (*models.Link, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	valid, vErr := validateInput(in)
	if vErr != nil {
		return nil, vErr
	}

	exists, existsErr := s.repo.ExistsByShortCode(ctx, valid.ShortCode)
	if existsErr != nil {
		return nil, s.operationFailed(OperationCreate, existsErr, zap.String("shortCode", valid.ShortCode))
	}
	if exists {
		return nil, ErrConflict
	}

	// Между проверкой и вставкой код могут занять. Уникальный индекс хранилища - окончательный арбитр.
	link, createErr := s.repo.Create(ctx, &models.Link{
		OwnerID:     ownerID,
		OriginalURL: valid.OriginalURL,
		ShortCode:   valid.ShortCode,
	})
	if createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, s.operationFailed(OperationCreate, createErr, zap.String("shortCode", valid.ShortCode))
	}

	s.invalidate(ctx, ownerID)
	return link, nil
}

// Update меняет URL и/или короткий код ссылки владельца.
func (s *LinkService) Update(ctx context.Context, ownerID string, id int64, in models.LinkInput) (*models.Link, error) {
	link, err := s.update(ctx, ownerID, id, in)
	metrics.ObserveMutation(string(OperationUpdate), resultLabel(err))
	return link, err
}

func (s *LinkService) update(ctx context.Context, ownerID string, id int64, in models.LinkInput) (*models.Link, error) {
	existing, ownErr := s.getOwned(ctx, OperationUpdate, ownerID, id)
	if ownErr != nil {
		return nil, ownErr
	}

	valid, vErr := validateInput(in)
	if vErr != nil {
		return nil, vErr
	}

	// Проверяем уникальность только если код действительно меняется, иначе ссылка конфликтует сама с собой.
	if existing.ShortCode != valid.ShortCode {
		exists, existsErr := s.repo.ExistsByShortCode(ctx, valid.ShortCode)
		if existsErr != nil {
			return nil, s.operationFailed(OperationUpdate, existsErr, zap.Int64("id", id))
		}
		if exists {
			return nil, ErrConflict
		}
	}

	updated, updateErr := s.repo.Update(ctx, id, valid)
	if updateErr != nil {
		switch {
		case errors.Is(updateErr, repositories.ErrDuplicateKey):
			return nil, ErrConflict
		case errors.Is(updateErr, repositories.ErrNotFound):
			return nil, ErrNotFound
		default:
			return nil, s.operationFailed(OperationUpdate, updateErr, zap.Int64("id", id))
		}
	}

	s.invalidate(ctx, ownerID)
	return updated, nil
}

// Delete безвозвратно удаляет ссылку владельца.
func (s *LinkService) Delete(ctx context.Context, ownerID string, id int64) error {
	err := s.delete(ctx, ownerID, id)
	metrics.ObserveMutation(string(OperationDelete), resultLabel(err))
	return err
}

func (s *LinkService) delete(ctx context.Context, ownerID string, id int64) error {
	if _, ownErr := s.getOwned(ctx, OperationDelete, ownerID, id); ownErr != nil {
		return ownErr
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return s.operationFailed(OperationDelete, err, zap.Int64("id", id))
	}

	s.invalidate(ctx, ownerID)
	return nil
}

// ListByOwner список ссылок владельца, новые первыми. Сначала смотрим в кеш.
func (s *LinkService) ListByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	var (
		generation int64
		cacheable  = s.views != nil
	)
	if cacheable {
		cached, gen, hit, cacheErr := s.views.Get(ctx, ownerID)
		switch {
		case cacheErr != nil:
			// поколение неизвестно, результат в кеш не пишем
			s.logger.Warn("listing cache read failed", zap.String("ownerID", ownerID), zap.Error(cacheErr))
			cacheable = false
		case hit:
			return cached, nil
		default:
			generation = gen
		}
	}

	links, err := s.repo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("list links failed", zap.String("ownerID", ownerID), zap.Error(err))
		return nil, fmt.Errorf("%w: list links", ErrUnknown)
	}

	// Поколение прочитано до запроса в хранилище: если между ними прошла мутация, Set ничего не запишет.
	if cacheable {
		if setErr := s.views.Set(ctx, ownerID, generation, links); setErr != nil {
			s.logger.Warn("listing cache write failed", zap.String("ownerID", ownerID), zap.Error(setErr))
		}
	}
	return links, nil
}

// Resolve ищет ссылку по короткому коду для публичного редиректа.
// Коды неверной формы в хранилище не ищутся.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (*models.Link, error) {
	if !validation.IsShortCode(shortCode) {
		return nil, ErrNotFound
	}

	link, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("resolve short code failed", zap.String("shortCode", shortCode), zap.Error(err))
		return nil, fmt.Errorf("%w: resolve %s", ErrUnknown, shortCode)
	}
	return link, nil
}

// getOwned загружает ссылку и проверяет, что её владелец - ownerID.
func (s *LinkService) getOwned(ctx context.Context, op Operation, ownerID string, id int64) (*models.Link, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, s.operationFailed(op, err, zap.Int64("id", id))
	}
	if link.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	return link, nil
}

// invalidate сбрасывает кеш списка владельца. Ошибка кеша не отменяет уже выполненную мутацию.
func (s *LinkService) invalidate(ctx context.Context, ownerID string) {
	if s.views == nil {
		return
	}
	if err := s.views.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.String("ownerID", ownerID), zap.Error(err))
	}
}

func (s *LinkService) operationFailed(op Operation, err error, fields ...zap.Field) error {
	s.logger.Error("link operation failed",
		append(fields, zap.String("operation", string(op)), zap.Error(err))...,
	)
	return &OperationError{Op: op}
}

func validateInput(in models.LinkInput) (models.LinkInput, error) {
	valid, err := validation.ValidateLink(in)
	if err != nil {
		var vErrs *validation.Errors
		if errors.As(err, &vErrs) {
			return valid, &ValidationError{Errs: vErrs}
		}
		return valid, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return valid, nil
}

// resultLabel метка результата операции для метрик.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "failed"
	}
}
