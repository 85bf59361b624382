package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

// AuthService defines email/password session operations.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (model.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
}

// Auth handles session endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Login exchanges email and password for a session.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, model.ErrInvalidCredentials)
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		handleError(c, model.ErrMissingToken)
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: refresh rejected",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// Logout revokes the refresh token if one is given. It always succeeds for
// well-formed requests so clients can sign out repeatedly.
func (h *Auth) Logout(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.SignOut(c.Request.Context(), req.RefreshToken); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me describes the authenticated caller.
func (h *Auth) Me(c *gin.Context) {
	p, ok := h.contextManager.GetPrincipalFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	c.JSON(http.StatusOK, meResponse{UID: p.UID, Email: p.Email, Admin: p.Admin})
}
