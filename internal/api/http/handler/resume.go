package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

const resumeFormField = "resume"

// ResumeService defines resume publishing operations.
type ResumeService interface {
	Get(ctx context.Context) (model.ResumeDescriptor, error)
	Upload(ctx context.Context, uploader model.Principal, upload model.Upload) (model.ResumeDescriptor, error)
	Download(ctx context.Context) (io.ReadCloser, model.ResumeDescriptor, error)
}

// Resume handles /api/resume.
type Resume struct {
	resumeService  ResumeService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewResume(resumeService ResumeService, contextManager model.ContextManager, logger *logger.Logger) *Resume {
	return &Resume{
		resumeService:  resumeService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Get answers 204 when no resume is published.
func (h *Resume) Get(c *gin.Context) {
	desc, err := h.resumeService.Get(c.Request.Context())
	if errors.Is(err, model.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(desc))
}

func (h *Resume) Upload(c *gin.Context) {
	principal, ok := h.contextManager.GetPrincipalFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	fh, err := c.FormFile(resumeFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			handleError(c, fmt.Errorf("%w: field %q with a PDF file is required", model.ErrValidation, resumeFormField))
			return
		}
		handleError(c, bindError(err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		handleError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	desc, err := h.resumeService.Upload(c.Request.Context(), principal, model.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Resume handler: resume uploaded",
		"uid", principal.UID,
		"file_name", desc.FileName)

	c.JSON(http.StatusOK, newResumeResponse(desc))
}

// File streams the current resume.
func (h *Resume) File(c *gin.Context) {
	rc, desc, err := h.resumeService.Download(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", rc, map[string]string{
		"Content-Disposition": contentDisposition(desc.FileName),
	})
}
