package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/shortlinks/internal/metrics"
	"github.com/fsdevblog/shortlinks/internal/services"
)

// RedirectController публичный переход по короткому коду.
type RedirectController struct {
	resolver LinkResolver
}

func NewRedirectController(resolver LinkResolver) *RedirectController {
	return &RedirectController{resolver: resolver}
}

// Redirect обрабатывает GET /:shortCode и GET /l/:shortCode.
//
// Ответы:
//   - 307 с Location на исходный URL
//   - 404 "Link not found"
//   - 500 при ошибке хранилища
func (c *RedirectController) Redirect(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.resolver.Resolve(reqCtx, ctx.Param("shortCode"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			metrics.ObserveRedirect("miss")
			ctx.String(http.StatusNotFound, services.ErrNotFound.Error())
			return
		}
		metrics.ObserveRedirect("error")
		_ = ctx.Error(err)
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	metrics.ObserveRedirect("hit")
	ctx.Redirect(http.StatusTemporaryRedirect, link.OriginalURL)
}
