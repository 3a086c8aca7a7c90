package tokens

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerJWT(t *testing.T) {
	key := []byte("secret")
	ownerID := gofakeit.UUID()

	token, err := GenerateOwnerJWT(ownerID, time.Hour, key)
	require.NoError(t, err)

	got, err := ValidateOwnerJWT(token, key)
	require.NoError(t, err)
	assert.Equal(t, ownerID, got)
}

func TestOwnerJWT_Errors(t *testing.T) {
	key := []byte("secret")

	t.Run("empty owner", func(t *testing.T) {
		_, err := GenerateOwnerJWT("", time.Hour, key)
		require.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateOwnerJWT("user-1", -time.Minute, key)
		require.NoError(t, err)

		_, err = ValidateOwnerJWT(token, key)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateOwnerJWT("user-1", time.Hour, key)
		require.NoError(t, err)

		_, err = ValidateOwnerJWT(token, []byte("other"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateOwnerJWT("not.a.token", key)
		require.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := raw.SignedString(key)
		require.NoError(t, err)

		_, err = ValidateOwnerJWT(token, key)
		require.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("foreign signing method", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "user-1"})
		token, err := raw.SignedString(key)
		require.NoError(t, err)

		_, err = ValidateOwnerJWT(token, key)
		require.Error(t, err)
	})
}
