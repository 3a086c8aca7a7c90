package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers/middlewares"
)

const metricsPath = "/metrics"

type RouterParams struct {
	LinkService LinkService
	PingService ConnectionChecker
	AppConf     config.Config
	Logger      *zap.Logger
}

// SetupRouter собирает gin роутер: API управления ссылками, публичный редирект,
// /ping и /metrics.
func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(middlewares.MetricsMiddleware())
	r.Use(middlewares.GzipMiddleware(metricsPath))

	pingController := NewPingController(params.PingService)
	redirectController := NewRedirectController(params.LinkService)
	linksController := NewLinksController(params.LinkService)

	r.GET("/ping", pingController.Ping)
	r.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/links", middlewares.OwnerAuthMiddleware([]byte(params.AppConf.AuthJWTSecret)))
	api.GET("", linksController.List)
	api.POST("", linksController.Create)
	api.PUT("/:id", linksController.Update)
	api.DELETE("/:id", linksController.Delete)

	r.GET("/l/:shortCode", redirectController.Redirect)
	r.GET("/:shortCode", redirectController.Redirect)
	return r
}
