package auth

import (
	"testing"
	"time"

	"github.com/kavara/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	jwtCfg := config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		TokenExpiration: 15 * time.Minute,
		Issuer:          "test-issuer",
	}
	adminCfg := config.AdminConfig{
		Username:     "admin",
		PasswordHash: hash,
	}
	return NewJWTService(jwtCfg, adminCfg)
}

func TestLogin(t *testing.T) {
	svc := newTestJWTService(t)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login("admin", "correct horse battery staple")
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.True(t, token.ExpiresAt.After(time.Now()))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("admin", "guess")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login("root", "correct horse battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	svc := newTestJWTService(t)

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken("admin")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "test-issuer", claims.Issuer)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-key-with-32-chars!",
			TokenExpiration: time.Minute,
			Issuer:          "test-issuer",
		}, config.AdminConfig{Username: "admin"})

		token, err := other.GenerateToken("admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := NewJWTService(config.JWTConfig{
			Secret:          "test-secret-key-at-least-32-chars",
			TokenExpiration: -time.Minute,
			Issuer:          "test-issuer",
		}, config.AdminConfig{Username: "admin"})

		token, err := short.GenerateToken("admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.NotEmpty(t, hash)
}
