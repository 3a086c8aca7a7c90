package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingController проверка живости сервиса вместе с хранилищем ссылок.
type PingController struct {
	store ConnectionChecker
}

func NewPingController(store ConnectionChecker) *PingController {
	return &PingController{store: store}
}

// Ping обрабатывает GET /ping: 200 "pong" если хранилище отвечает, иначе 500.
func (c *PingController) Ping(ctx *gin.Context) {
	if c.store == nil {
		ctx.String(http.StatusOK, "pong")
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()
	if err := c.store.CheckConnection(pingCtx); err != nil {
		_ = ctx.Error(fmt.Errorf("storage ping: %w", err))
		ctx.Status(http.StatusServiceUnavailable)
		return
	}
	ctx.String(http.StatusOK, "pong")
}
