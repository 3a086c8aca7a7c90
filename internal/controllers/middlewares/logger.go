package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerMiddleware логирует каждый запрос. Ставится после RequestIDMiddleware.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		statusCode := c.Writer.Status()
		l := logger.With(
			zap.String("requestID", c.GetString(RequestIDKey)),
			zap.String("URI", c.Request.RequestURI),
			zap.String("route", c.FullPath()),
			zap.Duration("latency", latency),
			zap.Int("status", statusCode),
			zap.String("method", c.Request.Method),
		)
		if ownerID := OwnerID(c); ownerID != "" {
			l = l.With(zap.String("ownerID", ownerID))
		}
		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			l = l.With(zap.String("error", errorMessage))
		}

		switch {
		case statusCode >= http.StatusInternalServerError:
			l.Error("Server error")
		case statusCode >= http.StatusBadRequest:
			l.Warn("Client error")
		default:
			l.Info("Request processed")
		}
	}
}
