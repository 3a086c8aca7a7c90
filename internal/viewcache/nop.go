package viewcache

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// Nop кеш-заглушка: списки всегда читаются из хранилища.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]models.Link, int64, bool, error) { return nil, 0, false, nil }
func (Nop) Set(context.Context, string, int64, []models.Link) error        { return nil }
func (Nop) Invalidate(context.Context, string) error                       { return nil }
