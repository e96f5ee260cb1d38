package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/interfaces/http/dto"
	"github.com/kavara/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response helpers for HTTP handlers.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler.
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data.
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response for the given code and message.
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 response for a binding or validation failure.
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	h.Error(c, dto.ErrCodeInvalidInput, middleware.FormatValidationError(err))
}

// HandleError maps an application error onto an API error response.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var notTracked *inventory.NotTrackedError
	if errors.As(err, &notTracked) {
		h.Error(c, dto.ErrCodeStockNotTracked, notTracked.Error())
		return
	}

	var insufficient *inventory.InsufficientStockError
	if errors.As(err, &insufficient) {
		h.Error(c, dto.ErrCodeInsufficientStock, insufficient.Error())
		return
	}

	var lockTimeout *inventory.LockTimeoutError
	if errors.As(err, &lockTimeout) {
		h.Error(c, dto.ErrCodeLockTimeout, lockTimeout.Error())
		return
	}

	var entityNotFound *inventory.EntityNotFoundError
	if errors.As(err, &entityNotFound) {
		h.Error(c, dto.ErrCodeNotFound, entityNotFound.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	h.Error(c, dto.ErrCodeInternalError, "internal server error")
}
