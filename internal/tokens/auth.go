package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Issuer издатель токенов владельцев ссылок.
const Issuer = "shortlinks"

// OwnerClaims данные JWT токена владельца. Идентификатор владельца хранится в `sub`.
type OwnerClaims struct {
	jwt.RegisteredClaims
}

// GenerateOwnerJWT создает JWT токен владельца ссылок.
//
// Параметры:
//   - ownerID: идентификатор владельца, попадает в claim `sub`
//   - expire: срок действия токена
//   - key: ключ для подписи токена
//
// Возвращает:
//   - string: сгенерированный JWT токен
//   - error: ошибка генерации токена
func GenerateOwnerJWT(ownerID string, expire time.Duration, key []byte) (string, error) {
	if ownerID == "" {
		return "", ErrMissingSubject
	}
	now := time.Now()
	claims := OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token, err := generateJWT(claims, key)
	if err != nil {
		return "", fmt.Errorf("generating owner jwt token: %w", err)
	}
	return token, nil
}

// ValidateOwnerJWT проверяет токен и возвращает идентификатор владельца.
// Истекший токен - ErrTokenExpired.
func ValidateOwnerJWT(tokenString string, key []byte) (string, error) {
	token, err := validateJWT(tokenString, new(OwnerClaims), key)
	if err != nil {
		return "", fmt.Errorf("validating owner jwt token: %w", err)
	}

	claims, ok := token.Claims.(*OwnerClaims)
	if !ok {
		return "", ErrInvalidClaims
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing jwt token: %w", err)
	}

	return tokenString, nil
}

// validateJWT разбирает токен, принимая только HMAC подпись.
func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, "parsing jwt token")
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}
