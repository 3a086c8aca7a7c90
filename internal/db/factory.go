package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeMySQL    StorageType = "mysql"
	StorageTypeInMemory StorageType = "inMemory"
)

type FactoryConfig struct {
	StorageType StorageType
	// DSN строка подключения. Для sqlite - путь к файлу базы.
	DSN string
}

// NewConnectionFactory создает подключение к хранилищу нужного типа и готовит схему.
//
// Возвращает:
//   - *pgxpool.Pool для postgres
//   - *gorm.DB для sqlite и mysql
//   - *MemoryStorage для inMemory
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (any, error) {
	switch config.StorageType {
	case StorageTypePostgres:
		if config.DSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		pool, err := NewPostgresConnection(ctx, config.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", err)
		}
		if migrateErr := simpleMigrateSchema(ctx, pool); migrateErr != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
		}
		return pool, nil
	case StorageTypeSQLite:
		if config.DSN == "" {
			return nil, errors.New("sqlite path is empty")
		}
		return NewSQLite(config.DSN)
	case StorageTypeMySQL:
		if config.DSN == "" {
			return nil, errors.New("mysql dsn is empty")
		}
		return NewMySQL(config.DSN)
	case StorageTypeInMemory:
		return NewMemStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}

// Close закрывает соединение, созданное NewConnectionFactory.
func Close(conn any) error {
	switch c := conn.(type) {
	case *pgxpool.Pool:
		c.Close()
		return nil
	case *gorm.DB:
		sqlDB, err := c.DB()
		if err != nil {
			return fmt.Errorf("get sql db: %w", err)
		}
		return sqlDB.Close() //nolint:wrapcheck
	default:
		return nil
	}
}
