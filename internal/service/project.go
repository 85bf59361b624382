package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

const projectsCacheKey = "projects"

// Project manages showcase projects and their optional images.
type Project struct {
	store   model.ProjectStore
	storage model.Storage
	cache   model.Cache
	logger  *logger.Logger
}

// NewProject creates the service. cache may be nil.
func NewProject(store model.ProjectStore, storage model.Storage, cache model.Cache, logger *logger.Logger) *Project {
	return &Project{
		store:   store,
		storage: storage,
		cache:   cache,
		logger:  logger,
	}
}

// List returns live projects in insertion order.
func (s *Project) List(ctx context.Context) ([]model.Project, error) {
	var cached []model.Project
	if s.cacheGet(ctx, projectsCacheKey, &cached) {
		return cached, nil
	}

	projects, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("Project service: failed to list projects",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	s.cacheSet(ctx, projectsCacheKey, projects)

	return projects, nil
}

func (s *Project) Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)

	if params.Title == "" {
		return model.Project{}, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if params.Description == "" {
		return model.Project{}, fmt.Errorf("%w: description is required", model.ErrValidation)
	}

	project := model.Project{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		GithubLink:  strings.TrimSpace(params.GithubLink),
		LiveLink:    strings.TrimSpace(params.LiveLink),
	}

	if params.Image != nil {
		if !strings.HasPrefix(params.Image.ContentType, "image/") {
			return model.Project{}, fmt.Errorf("%w: project image must be an image, got %q", model.ErrInvalidFile, params.Image.ContentType)
		}

		key := imageKey(project.ID, params.Image.FileName)
		if err := s.storage.Upload(ctx, key, params.Image.Reader, params.Image.Size, params.Image.ContentType); err != nil {
			s.logger.Error("Project service: failed to upload image",
				"project_id", project.ID,
				"error", err.Error())
			return model.Project{}, fmt.Errorf("failed to upload project image: %w", err)
		}
		project.ImageKey = key
		project.ImageContentType = params.Image.ContentType
	}

	saved, err := s.store.Create(ctx, project)
	if err != nil {
		s.logger.Error("Project service: failed to save project",
			"project_id", project.ID,
			"error", err.Error())
		if project.HasImage() {
			s.deleteBlob(ctx, project.ImageKey)
		}
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.invalidate(ctx)

	s.logger.Info("Project service: project created",
		"project_id", saved.ID,
		"title", saved.Title,
		"has_image", saved.HasImage())

	return saved, nil
}

func (s *Project) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		s.logger.Error("Project service: failed to delete project",
			"project_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if project.HasImage() {
		s.deleteBlob(ctx, project.ImageKey)
	}

	s.invalidate(ctx)

	s.logger.Info("Project service: project deleted",
		"project_id", id)

	return nil
}

// Image opens the stored image of a project. The caller closes the reader.
func (s *Project) Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, model.Project, error) {
	project, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.Project{}, err
		}
		return nil, model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	if !project.HasImage() {
		return nil, model.Project{}, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, project.ImageKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.Project{}, err
		}
		return nil, model.Project{}, fmt.Errorf("failed to download project image: %w", err)
	}

	return rc, project, nil
}

func (s *Project) deleteBlob(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Project service: failed to delete image blob",
			"key", key,
			"error", err.Error())
	}
}

func (s *Project) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, projectsCacheKey); err != nil {
		s.logger.Warn("Project service: failed to invalidate cache",
			"error", err.Error())
	}
}

func (s *Project) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.Warn("Project service: cache read failed",
			"key", key,
			"error", err.Error())
		return false
	}
	return ok
}

func (s *Project) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Project service: cache write failed",
			"key", key,
			"error", err.Error())
	}
}

func imageKey(id uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("projects/%s/image%s", id, ext)
}
