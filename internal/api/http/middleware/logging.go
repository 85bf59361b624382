package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/portfolio/internal/logger"
)

// Logging logs every HTTP request with its status and duration.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()

	c.Next()

	status := c.Writer.Status()
	args := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	}

	switch {
	case len(c.Errors) > 0:
		args = append(args, "error", c.Errors.String())
		l.logger.Error("HTTP request failed", args...)
	case status >= 500:
		l.logger.Error("HTTP request failed", args...)
	default:
		l.logger.Info("HTTP request completed", args...)
	}
}
