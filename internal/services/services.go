package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/repositories/gormstore"
	"github.com/fsdevblog/shortlinks/internal/repositories/memstore"
	"github.com/fsdevblog/shortlinks/internal/repositories/pgstore"
)

type ServiceType string

const (
	ServiceTypePostgres ServiceType = "postgres"
	ServiceTypeGorm     ServiceType = "gorm"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	LinkService *LinkService
	PingService *PingService
}

// Factory собирает сервисный слой поверх соединения, созданного db.NewConnectionFactory.
func Factory(conn any, sType ServiceType, views ListingCache, logger *zap.Logger) (*Services, error) {
	switch sType {
	case ServiceTypePostgres:
		pool, ok := conn.(*pgxpool.Pool)
		if !ok {
			return nil, errors.New("invalid connection type. expected *pgxpool.Pool")
		}
		return &Services{
			LinkService: NewLinkService(pgstore.NewLinkRepo(pool), views, logger),
			PingService: NewPingService(pool),
		}, nil
	case ServiceTypeGorm:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return &Services{
			LinkService: NewLinkService(gormstore.NewLinkRepo(gormDB), views, logger),
			PingService: NewPingService(db.GormPinger{DB: gormDB}),
		}, nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return &Services{
			LinkService: NewLinkService(memstore.NewLinkRepo(store), views, logger),
			PingService: NewPingService(store),
		}, nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}

// ServiceTypeFor тип сервисного слоя для типа хранилища.
func ServiceTypeFor(st db.StorageType) ServiceType {
	switch st {
	case db.StorageTypePostgres:
		return ServiceTypePostgres
	case db.StorageTypeSQLite, db.StorageTypeMySQL:
		return ServiceTypeGorm
	default:
		return ServiceTypeInMemory
	}
}
