package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

type LinkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

func (r *LinkRepo) GetByID(ctx context.Context, id int64) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get link by id %d: %w", id, convertErrorType(err))
	}
	return &link, nil
}

func (r *LinkRepo) GetByShortCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).Where("short_code = ?", code).First(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to get link by short code %s: %w", code, convertErrorType(err))
	}
	return &link, nil
}

func (r *LinkRepo) ExistsByShortCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("short_code = ?", code).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check short code %s: %w", code, convertErrorType(err))
	}
	return count > 0, nil
}

// GetAllByOwner ссылки владельца, новые первыми.
func (r *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get links by owner %s: %w", ownerID, convertErrorType(err))
	}
	return links, nil
}

func (r *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	created := models.Link{
		OwnerID:     link.OwnerID,
		OriginalURL: link.OriginalURL,
		ShortCode:   link.ShortCode,
	}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, fmt.Errorf("failed to create link %s: %w", link.ShortCode, convertErrorType(err))
	}
	return &created, nil
}

// Update обновляет запись и перечитывает её в одной транзакции.
func (r *LinkRepo) Update(ctx context.Context, id int64, in models.LinkInput) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// mysql не считает строку затронутой если значения не изменились, поэтому существование
		// проверяем отдельным запросом, а не через RowsAffected.
		if err := tx.First(&link, id).Error; err != nil {
			return err //nolint:wrapcheck
		}
		res := tx.Model(&link).Updates(map[string]any{
			"original_url": in.OriginalURL,
			"short_code":   in.ShortCode,
			"updated_at":   tx.NowFunc(),
		})
		if res.Error != nil {
			return res.Error //nolint:wrapcheck
		}
		var reloaded models.Link
		if err := tx.First(&reloaded, id).Error; err != nil {
			return err //nolint:wrapcheck
		}
		link = reloaded
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update link %d: %w", id, convertErrorType(err))
	}
	return &link, nil
}

func (r *LinkRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Link{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete link %d: %w", id, convertErrorType(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete link %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}
