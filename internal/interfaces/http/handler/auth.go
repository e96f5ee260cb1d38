package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/infrastructure/auth"
	"github.com/kavara/backend/internal/interfaces/http/dto"
)

// AuthHandler serves admin login.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
}

func NewAuthHandler(jwtService *auth.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		jwtService:  jwtService,
	}
}

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges admin credentials for a bearer token.
// POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	token, err := h.jwtService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Error(c, dto.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}

// toFilter converts list query parameters into a repository filter.
func toFilter(req dto.ListRequest) shared.Filter {
	defaults := dto.DefaultListRequest()
	if req.Page == 0 {
		req.Page = defaults.Page
	}
	if req.PageSize == 0 {
		req.PageSize = defaults.PageSize
	}
	if req.OrderBy == "" {
		req.OrderBy = defaults.OrderBy
	}
	if req.OrderDir == "" {
		req.OrderDir = defaults.OrderDir
	}
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}
}
