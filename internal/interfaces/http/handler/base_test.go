package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handleErrorResponse(t *testing.T, err error) (int, dto.Response) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	h := NewBaseHandler(zap.NewNop())
	h.HandleError(c, err)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return w.Code, resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	entityID := uuid.New()

	t.Run("untracked stock", func(t *testing.T) {
		status, resp := handleErrorResponse(t, &inventory.NotTrackedError{
			Kind: catalog.KindProduct, EntityID: entityID, EntityName: "Scarf",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, dto.ErrCodeStockNotTracked, resp.Error.Code)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		status, resp := handleErrorResponse(t, &inventory.InsufficientStockError{
			Kind: catalog.KindProduct, EntityID: entityID, EntityName: "Scarf",
			Size: "M", Available: 1, Requested: 3,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, `size "M"`)
	})

	t.Run("lock timeout", func(t *testing.T) {
		status, resp := handleErrorResponse(t, &inventory.LockTimeoutError{
			Kind: catalog.KindBox, EntityID: entityID,
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, dto.ErrCodeLockTimeout, resp.Error.Code)
	})

	t.Run("missing entity", func(t *testing.T) {
		status, resp := handleErrorResponse(t, &inventory.EntityNotFoundError{
			Kind: catalog.KindProduct, EntityID: entityID,
		})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("domain not found", func(t *testing.T) {
		status, resp := handleErrorResponse(t, shared.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("domain invalid state", func(t *testing.T) {
		status, resp := handleErrorResponse(t, shared.ErrInvalidState)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("saving order"), shared.ErrInsufficientStock)
		status, resp := handleErrorResponse(t, wrapped)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	})

	t.Run("unknown error hides details", func(t *testing.T) {
		status, resp := handleErrorResponse(t, errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, dto.ErrCodeInternalError, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "pq:")
	})
}
