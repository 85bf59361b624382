package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

// AdminUIDHeader optionally echoes the uid the client believes is privileged.
const AdminUIDHeader = "X-Admin-Uid"

// Authenticate validates bearer tokens and injects the principal into the request context.
type Authenticate struct {
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(verifier model.IdentityVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(c *gin.Context) {
	tokenString := bearerToken(c.GetHeader("Authorization"))
	if tokenString == "" {
		abort(c, http.StatusUnauthorized, model.ErrMissingToken)
		return
	}

	principal, err := m.verifier.Verify(c.Request.Context(), tokenString)
	if err != nil || principal.UID == "" {
		m.logger.Debug("Authenticate middleware: token rejected",
			"path", c.Request.URL.Path)
		abort(c, http.StatusUnauthorized, model.ErrInvalidToken)
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.SetPrincipalToContext(c.Request.Context(), principal))
	c.Next()
}

// RequireAdmin rejects authenticated principals without the admin capability.
type RequireAdmin struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewRequireAdmin(contextManager model.ContextManager, logger *logger.Logger) *RequireAdmin {
	return &RequireAdmin{contextManager: contextManager, logger: logger}
}

func (m *RequireAdmin) Handle(c *gin.Context) {
	principal, ok := m.contextManager.GetPrincipalFromContext(c.Request.Context())
	if !ok {
		abort(c, http.StatusUnauthorized, model.ErrMissingToken)
		return
	}

	claimed := strings.TrimSpace(c.GetHeader(AdminUIDHeader))
	if !principal.Admin || (claimed != "" && claimed != principal.UID) {
		m.logger.Info("RequireAdmin middleware: forbidden",
			"uid", principal.UID,
			"path", c.Request.URL.Path)
		abort(c, http.StatusForbidden, model.ErrForbidden)
		return
	}

	c.Next()
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
