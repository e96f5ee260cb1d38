package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/infrastructure/auth"
	"github.com/kavara/backend/internal/infrastructure/config"
	"github.com/kavara/backend/internal/interfaces/http/dto"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	jwtService := auth.NewJWTService(
		config.JWTConfig{
			Secret:          "test-secret-key-of-decent-length",
			TokenExpiration: time.Hour,
			Issuer:          "kavara-test",
		},
		config.AdminConfig{Username: "admin", PasswordHash: hash},
	)

	h := NewAuthHandler(jwtService, zap.NewNop())
	router := gin.New()
	router.POST("/login", h.Login)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials return a token", func(t *testing.T) {
		router := newAuthRouter(t)
		w := postLogin(t, router, "admin", "correct horse battery staple")
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		router := newAuthRouter(t)
		w := postLogin(t, router, "admin", "nope")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeUnauthorized)
	})

	t.Run("unknown username is unauthorized", func(t *testing.T) {
		router := newAuthRouter(t)
		w := postLogin(t, router, "root", "correct horse battery staple")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		router := newAuthRouter(t)
		w := postLogin(t, router, "admin", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
