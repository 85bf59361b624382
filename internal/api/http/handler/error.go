package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/portfolio/internal/model"
)

// handleError writes the JSON error response matching err and records err on the context.
func handleError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func statusFor(err error) (int, string) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrInvalidFile):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, model.ErrInvalidCredentials.Error()
	case errors.Is(err, model.ErrMissingToken),
		errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		return http.StatusUnauthorized, model.ErrInvalidToken.Error()
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, model.ErrForbidden.Error()
	case errors.Is(err, model.ErrUploadDisabled):
		return http.StatusConflict, "resume upload is disabled: replace the static resume file and redeploy"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
