package config

import (
	"flag"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/fsdevblog/shortlinks/internal/db"
)

const (
	DefaultServerAddress = "localhost:8080"
	DefaultTLSCertPath   = "certs/server.crt"
	DefaultTLSKeyPath    = "certs/server.key"
	DefaultLogLevel      = "info"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Строка подключения к БД. Для sqlite - путь к файлу
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Тип хранилища. Пустое значение - определяется по DatabaseDSN
	StorageType db.StorageType `env:"STORAGE_TYPE"`
	// Адрес redis для кеша списков ссылок. Пустой - кеш отключен
	RedisAddr string `env:"REDIS_ADDR"`
	// Время жизни кеша списка ссылок
	ListingCacheTTL time.Duration `env:"LISTING_CACHE_TTL" envDefault:"5m"`
	// Ключ подписи JWT владельцев ссылок
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`
	EnableHTTPS   bool   `env:"ENABLE_HTTPS"`
	TLSCertPath   string `env:"TLS_CERT_PATH"`
	TLSKeyPath    string `env:"TLS_KEY_PATH"`
	LogLevel      string `env:"LOG_LEVEL"`
}

// LoadConfig собирает конфигурацию из переменных окружения и флагов командной строки.
// Переменные окружения приоритетнее флагов.
//
// Параметры:
//   - args: аргументы командной строки без имени программы
//
// Возвращает:
//   - *Config: итоговая конфигурация
//   - error: ошибка разбора
func LoadConfig(args []string) (*Config, error) {
	var envConfig Config
	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrap(err, "parse ENV config error")
	}

	flagsConfig, flagsErr := loadFlags(args)
	if flagsErr != nil {
		return nil, flagsErr
	}

	conf := mergeConfig(&envConfig, flagsConfig)
	conf.StorageType = ResolveStorageType(conf)

	if conf.AuthJWTSecret == "" {
		return nil, errors.New("auth jwt secret is required (AUTH_JWT_SECRET or -j)")
	}
	return conf, nil
}

// MustLoadConfig то же что LoadConfig для os.Args, паникует при ошибке.
func MustLoadConfig() *Config {
	conf, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(args []string) (*Config, error) {
	var (
		fc          Config
		storageType string
	)
	fs := flag.NewFlagSet("shortlinks", flag.ContinueOnError)

	fs.StringVar(&fc.ServerAddress, "a", DefaultServerAddress, "Адрес сервера")
	fs.StringVar(&fc.DatabaseDSN, "d", "", "Строка подключения к БД (для sqlite - путь к файлу)")
	fs.StringVar(&storageType, "t", "", "Тип хранилища: postgres|sqlite|mysql|inMemory")
	fs.StringVar(&fc.RedisAddr, "r", "", "Адрес redis для кеша списков ссылок")
	fs.StringVar(&fc.AuthJWTSecret, "j", "", "Ключ подписи JWT")
	fs.BoolVar(&fc.EnableHTTPS, "s", false, "Включить HTTPS")
	fs.StringVar(&fc.LogLevel, "l", DefaultLogLevel, "Уровень логирования")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags error")
	}
	fc.StorageType = db.StorageType(storageType)
	return &fc, nil
}

// mergeConfig сливает структуры для env и флагов.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress:   defaultIfBlank(envConfig.ServerAddress, flagsConfig.ServerAddress),
		DatabaseDSN:     defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		StorageType:     defaultIfBlank(envConfig.StorageType, flagsConfig.StorageType),
		RedisAddr:       defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr),
		ListingCacheTTL: envConfig.ListingCacheTTL,
		AuthJWTSecret:   defaultIfBlank(envConfig.AuthJWTSecret, flagsConfig.AuthJWTSecret),
		EnableHTTPS:     envConfig.EnableHTTPS || flagsConfig.EnableHTTPS,
		TLSCertPath:     defaultIfBlank(envConfig.TLSCertPath, DefaultTLSCertPath),
		TLSKeyPath:      defaultIfBlank(envConfig.TLSKeyPath, DefaultTLSKeyPath),
		LogLevel:        defaultIfBlank(envConfig.LogLevel, flagsConfig.LogLevel),
	}
}

func defaultIfBlank[T ~string](value T, defaultValue T) T {
	if value == "" {
		return defaultValue
	}
	return value
}

// ResolveStorageType тип хранилища. Если не задан явно: есть DSN - postgres, иначе память.
func ResolveStorageType(conf *Config) db.StorageType {
	if conf.StorageType != "" {
		return conf.StorageType
	}
	if conf.DatabaseDSN != "" {
		return db.StorageTypePostgres
	}
	return db.StorageTypeInMemory
}
