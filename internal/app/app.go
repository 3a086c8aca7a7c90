package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers"
	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/logs"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/fsdevblog/shortlinks/internal/tlscert"
	"github.com/fsdevblog/shortlinks/internal/viewcache"
)

const (
	shutdownTimeout = 10 * time.Second
	initTimeout     = 10 * time.Second
)

type App struct {
	config     config.Config
	dbServices *services.Services
	closers    []func() error
	Logger     *zap.Logger
}

// New создает логгер, подключается к хранилищу и (если задан REDIS_ADDR) к redis.
func New(appConf config.Config) (*App, error) {
	logger, logErr := logs.New(logs.WithLevel(appConf.LogLevel), logs.WithName("shortlinks"))
	if logErr != nil {
		return nil, fmt.Errorf("init logger: %w", logErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	a := &App{config: appConf, Logger: logger}

	views, viewsErr := a.initListingCache(ctx)
	if viewsErr != nil {
		return nil, viewsErr
	}

	dbServices, servicesErr := a.initServices(ctx, views)
	if servicesErr != nil {
		a.close()
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}
	a.dbServices = dbServices
	return a, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и ждет SIGINT/SIGTERM для плавной остановки.
func (a *App) Run() error {
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := controllers.SetupRouter(controllers.RouterParams{
		LinkService: a.dbServices.LinkService,
		PingService: a.dbServices.PingService,
		AppConf:     a.config,
		Logger:      a.Logger,
	})
	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	if a.config.EnableHTTPS {
		if err := tlscert.EnsurePair(a.config.TLSCertPath, a.config.TLSKeyPath); err != nil {
			return fmt.Errorf("prepare tls certificate: %w", err)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		var err error
		if a.config.EnableHTTPS {
			err = server.ListenAndServeTLS(a.config.TLSCertPath, a.config.TLSKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	a.Logger.Info("Server started",
		zap.String("address", a.config.ServerAddress),
		zap.Bool("https", a.config.EnableHTTPS),
	)

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.Error("server error", zap.Error(serverErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown error", zap.Error(err))
	}
	return serverErr
}

// initServices создает подключение к хранилищу и возвращает сервисный слой приложения.
func (a *App) initServices(ctx context.Context, views services.ListingCache) (*services.Services, error) {
	storageType := config.ResolveStorageType(&a.config)
	conn, connErr := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType: storageType,
		DSN:         a.config.DatabaseDSN,
	})
	if connErr != nil {
		return nil, connErr //nolint:wrapcheck
	}
	a.closers = append(a.closers, func() error { return db.Close(conn) })

	a.Logger.Info("Storage connected", zap.String("type", string(storageType)))
	return services.Factory(conn, services.ServiceTypeFor(storageType), views, a.Logger) //nolint:wrapcheck
}

// initListingCache кеш списков ссылок в redis. Без REDIS_ADDR SQL-хранилища кешируют списки
// в памяти процесса, хранилище в памяти работает без кеша.
func (a *App) initListingCache(ctx context.Context) (services.ListingCache, error) {
	if a.config.RedisAddr == "" {
		if config.ResolveStorageType(&a.config) == db.StorageTypeInMemory {
			return viewcache.Nop{}, nil
		}
		return viewcache.NewMemory(a.config.ListingCacheTTL), nil
	}

	client := redis.NewClient(&redis.Options{Addr: a.config.RedisAddr})
	cache := viewcache.NewRedis(client, a.config.ListingCacheTTL)
	if err := cache.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", a.config.RedisAddr, err)
	}
	a.closers = append(a.closers, client.Close)
	return cache, nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("close resource", zap.Error(err))
		}
	}
	a.closers = nil
	_ = a.Logger.Sync()
}
