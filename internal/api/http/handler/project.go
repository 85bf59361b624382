package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

// ProjectService defines showcase project operations.
type ProjectService interface {
	List(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, model.Project, error)
}

// Project handles /api/projects.
type Project struct {
	projectService ProjectService
	logger         *logger.Logger
}

func NewProject(projectService ProjectService, logger *logger.Logger) *Project {
	return &Project{projectService: projectService, logger: logger}
}

func (h *Project) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, newProjectResponse(p))
	}

	c.JSON(http.StatusOK, resp)
}

// Create accepts JSON, or multipart form data when an image is attached.
func (h *Project) Create(c *gin.Context) {
	var (
		req    createProjectRequest
		params model.CreateProjectParams
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			handleError(c, bindError(err))
			return
		}

		fh, err := c.FormFile("image")
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				handleError(c, fmt.Errorf("failed to open image: %w", err))
				return
			}
			defer f.Close()

			params.Image = &model.Upload{
				FileName:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Reader:      f,
			}
		case errors.Is(err, http.ErrMissingFile):
		default:
			handleError(c, bindError(err))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, bindError(err))
		return
	}

	params.Title = req.Title
	params.Description = req.Description
	params.GithubLink = req.GithubLink
	params.LiveLink = req.LiveLink

	project, err := h.projectService.Create(c.Request.Context(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newProjectResponse(project))
}

func (h *Project) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, model.ErrNotFound)
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Project) Image(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, model.ErrNotFound)
		return
	}

	rc, project, err := h.projectService.Image(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	defer rc.Close()

	contentType := project.ImageContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

// bindError keeps body size violations distinguishable from malformed input.
func bindError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return err
	}
	return fmt.Errorf("%w: malformed request body", model.ErrValidation)
}

func contentDisposition(fileName string) string {
	return "inline; filename=" + strconv.Quote(fileName)
}
