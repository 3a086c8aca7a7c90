package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/shortlinks/internal/controllers/middlewares"
	"github.com/fsdevblog/shortlinks/internal/services"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// requireOwner владелец запроса. Анонимный запрос сразу получает 401, до разбора пути и тела.
func requireOwner(ctx *gin.Context) (string, bool) {
	ownerID := middlewares.OwnerID(ctx)
	if ownerID == "" {
		respondError(ctx, services.ErrUnauthenticated)
		return "", false
	}
	return ownerID, true
}

// parseLinkID читает положительный целый :id из пути.
func parseLinkID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidLinkID
	}
	return id, nil
}

// errorStatus HTTP статус для ошибки сервиса ссылок.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError отдает {"error": "..."}. Внутренние детали ошибки остаются в логах.
func respondError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	if status < http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	_ = ctx.Error(err)
	message := ErrInternal.Error()
	var opErr *services.OperationError
	if errors.As(err, &opErr) {
		message = opErr.Error()
	}
	ctx.JSON(status, gin.H{"error": message})
}

func respondData(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, gin.H{"success": true, "data": data})
}
