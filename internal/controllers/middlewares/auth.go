package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/shortlinks/internal/tokens"
)

const (
	OwnerIDKey        = "ownerID"
	SessionCookieName = "session"
	bearerPrefix      = "Bearer "
)

// OwnerAuthMiddleware определяет владельца ссылок по JWT из заголовка Authorization
// либо из куки session. Claim `sub` токена - идентификатор владельца.
//
// Отсутствующий или невалидный токен не прерывает запрос: посетитель считается анонимным,
// а ошибка проверки уходит в c.Errors для логгера.
func OwnerAuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := tokenFromRequest(c.Request)
		if err != nil {
			_ = c.Error(fmt.Errorf("owner auth middleware: %w", err))
			c.Next()
			return
		}
		if raw == "" {
			c.Next()
			return
		}

		ownerID, validateErr := tokens.ValidateOwnerJWT(raw, jwtSecret)
		if validateErr != nil {
			_ = c.Error(fmt.Errorf("owner auth middleware: %w", validateErr))
			c.Next()
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// OwnerID идентификатор владельца текущего запроса. Пустая строка - анонимный посетитель.
func OwnerID(c *gin.Context) string {
	return c.GetString(OwnerIDKey)
}

func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return "", errors.New("unsupported authorization scheme")
		}
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)), nil
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", fmt.Errorf("read session cookie: %w", err)
	}
	return cookie.Value, nil
}
