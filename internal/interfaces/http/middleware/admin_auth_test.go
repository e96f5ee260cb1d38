package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavara/backend/internal/infrastructure/auth"
	"github.com/kavara/backend/internal/infrastructure/config"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	jwtService := auth.NewJWTService(
		config.JWTConfig{
			Secret:          "test-secret-key-of-decent-length",
			TokenExpiration: time.Hour,
			Issuer:          "kavara-test",
		},
		config.AdminConfig{Username: "admin", PasswordHash: hash},
	)

	router := gin.New()
	router.Use(AdminAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		claims, ok := GetAdminClaims(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Username)
	})
	return router, jwtService
}

func TestAdminAuth(t *testing.T) {
	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		router, jwtService := newAuthRouter(t)
		token, err := jwtService.Login("admin", "secret")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", w.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
