package main

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/fsdevblog/shortlinks/internal/app"
	"github.com/fsdevblog/shortlinks/internal/bmeta"
	"github.com/fsdevblog/shortlinks/internal/config"
)

// Заполняются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	bmeta.Print(os.Stdout, bmeta.Info{Version: buildVersion, Date: buildDate, Commit: buildCommit})

	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	a.Logger.Info("Starting server",
		zap.String("address", appConf.ServerAddress),
		zap.String("storage", string(appConf.StorageType)),
		zap.Bool("listingCache", appConf.RedisAddr != ""),
	)
	if err := a.Run(); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Fatal("server stopped", zap.Error(err))
	}
}
