package jwtauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kyntel/pkg/domain-errors"
)

const testKey = "test-signing-key"

func signToken(t *testing.T, key string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: claims})
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	validator := New(testKey)

	t.Run("valid token returns subject", func(t *testing.T) {
		signed := signToken(t, testKey, jwt.RegisteredClaims{
			Subject:   "analyst@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		subject, err := validator.ValidateToken(signed)
		require.NoError(t, err)
		assert.Equal(t, "analyst@example.com", subject)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		signed := signToken(t, testKey, jwt.RegisteredClaims{
			Subject:   "analyst@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		_, err := validator.ValidateToken(signed)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong signing key is unauthorized", func(t *testing.T) {
		signed := signToken(t, "other-key", jwt.RegisteredClaims{
			Subject:   "analyst@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		_, err := validator.ValidateToken(signed)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.token")
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})
}
