package db

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// NewSQLite открывает (или создает) базу sqlite по указанному пути и мигрирует схему.
func NewSQLite(dbPath string) (*gorm.DB, error) {
	return openGorm(sqlite.Open(dbPath))
}

// NewMySQL подключается к MySQL и мигрирует схему.
func NewMySQL(dsn string) (*gorm.DB, error) {
	return openGorm(mysql.Open(dsn))
}

func openGorm(dialector gorm.Dialector) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		// Ошибки драйвера переводятся в gorm.ErrDuplicatedKey и т.п.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s database error: %w", dialector.Name(), err)
	}
	if migrateErr := conn.AutoMigrate(&models.Link{}); migrateErr != nil {
		return nil, fmt.Errorf("migrate %s database error: %w", dialector.Name(), migrateErr)
	}
	return conn, nil
}

// GormPinger адаптирует *gorm.DB к проверке соединения.
type GormPinger struct {
	DB *gorm.DB
}

func (g GormPinger) Ping(ctx context.Context) error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		return fmt.Errorf("ping %s: %w", g.DB.Dialector.Name(), pingErr)
	}
	return nil
}
