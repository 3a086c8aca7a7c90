package models

import "time"

// Link структура модели хранения короткой ссылки (таблица `links`).
type Link struct {
	ID          int64     `json:"id"          db:"id"           gorm:"primaryKey;autoIncrement"`
	OwnerID     string    `json:"ownerId"     db:"user_id"      gorm:"column:user_id;not null;index:idx_links_user_id_created_at,priority:1"` //nolint:lll
	OriginalURL string    `json:"originalUrl" db:"original_url" gorm:"not null"`
	ShortCode   string    `json:"shortCode"   db:"short_code"   gorm:"size:20;not null;uniqueIndex:idx_links_short_code"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"   gorm:"not null;index:idx_links_user_id_created_at,priority:2"` //nolint:lll
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"   gorm:"not null"`
}

// LinkInput изменяемые владельцем поля ссылки.
type LinkInput struct {
	OriginalURL string `json:"originalUrl"`
	ShortCode   string `json:"shortCode"`
}
