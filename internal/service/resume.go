package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/portfolio/internal/logger"
	"github.com/dtroode/portfolio/internal/model"
)

const (
	resumeCacheKey = "resume"
	// ResumeFilePath is where the server strategy serves the current resume.
	ResumeFilePath = "/api/resume/file"
	// StaticPrefix is where the static strategy files are mounted.
	StaticPrefix = "/static/"

	pdfContentType = "application/pdf"
)

// ResumeOptions selects how the resume is published.
type ResumeOptions struct {
	Strategy   model.ResumeStrategy
	StaticDir  string
	StaticFile string
}

// Resume publishes a single resume file, either uploaded into object storage
// or shipped as a static file with the deployment.
type Resume struct {
	store   model.ResumeStore
	storage model.Storage
	cache   model.Cache
	logger  *logger.Logger
	opts    ResumeOptions
	now     func() time.Time
}

// NewResume creates the service. cache may be nil.
func NewResume(store model.ResumeStore, storage model.Storage, cache model.Cache, logger *logger.Logger, opts ResumeOptions) *Resume {
	if opts.Strategy == "" {
		opts.Strategy = model.ResumeStrategyServer
	}
	return &Resume{
		store:   store,
		storage: storage,
		cache:   cache,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// Get returns the current descriptor or model.ErrNotFound when nothing is published.
func (s *Resume) Get(ctx context.Context) (model.ResumeDescriptor, error) {
	if s.opts.Strategy == model.ResumeStrategyStatic {
		info, err := os.Stat(s.staticPath())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return model.ResumeDescriptor{}, model.ErrNotFound
			}
			return model.ResumeDescriptor{}, fmt.Errorf("failed to stat static resume: %w", err)
		}
		return model.ResumeDescriptor{
			FileName:   s.opts.StaticFile,
			FilePath:   path.Join(StaticPrefix, s.opts.StaticFile),
			UploadedAt: info.ModTime().UTC(),
		}, nil
	}

	current, err := s.current(ctx)
	if err != nil {
		return model.ResumeDescriptor{}, err
	}
	return describe(current), nil
}

// Upload replaces the published resume with a PDF.
func (s *Resume) Upload(ctx context.Context, uploader model.Principal, upload model.Upload) (model.ResumeDescriptor, error) {
	if s.opts.Strategy == model.ResumeStrategyStatic {
		return model.ResumeDescriptor{}, model.ErrUploadDisabled
	}

	fileName := filepath.Base(strings.TrimSpace(upload.FileName))
	if fileName == "" || fileName == "." || upload.Reader == nil {
		return model.ResumeDescriptor{}, fmt.Errorf("%w: resume file is required", model.ErrValidation)
	}
	if !isPDF(fileName, upload.ContentType) {
		return model.ResumeDescriptor{}, fmt.Errorf("%w: resume must be a PDF", model.ErrInvalidFile)
	}

	id := uuid.New()
	key := fmt.Sprintf("resume/%s.pdf", id)
	if err := s.storage.Upload(ctx, key, upload.Reader, upload.Size, pdfContentType); err != nil {
		s.logger.Error("Resume service: failed to upload file",
			"file_name", fileName,
			"error", err.Error())
		return model.ResumeDescriptor{}, fmt.Errorf("failed to upload resume: %w", err)
	}

	next := model.Resume{
		ID:          id,
		FileName:    fileName,
		ObjectKey:   key,
		ContentType: pdfContentType,
		Size:        upload.Size,
		UploadedBy:  uploader.UID,
		UploadedAt:  s.now().UTC(),
	}

	previous, hadPrevious, err := s.store.Replace(ctx, next)
	if err != nil {
		s.logger.Error("Resume service: failed to save descriptor",
			"key", key,
			"error", err.Error())
		s.deleteBlob(ctx, key)
		return model.ResumeDescriptor{}, fmt.Errorf("failed to save resume: %w", err)
	}

	if hadPrevious && previous.ObjectKey != key {
		s.deleteBlob(ctx, previous.ObjectKey)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, resumeCacheKey); err != nil {
			s.logger.Warn("Resume service: failed to invalidate cache",
				"error", err.Error())
		}
	}

	s.logger.Info("Resume service: resume replaced",
		"file_name", fileName,
		"uploaded_by", uploader.UID)

	return describe(next), nil
}

// Download opens the current resume file. The caller closes the reader.
func (s *Resume) Download(ctx context.Context) (io.ReadCloser, model.ResumeDescriptor, error) {
	if s.opts.Strategy == model.ResumeStrategyStatic {
		desc, err := s.Get(ctx)
		if err != nil {
			return nil, model.ResumeDescriptor{}, err
		}
		f, err := os.Open(s.staticPath())
		if err != nil {
			return nil, model.ResumeDescriptor{}, fmt.Errorf("failed to open static resume: %w", err)
		}
		return f, desc, nil
	}

	current, err := s.current(ctx)
	if err != nil {
		return nil, model.ResumeDescriptor{}, err
	}

	rc, err := s.storage.Download(ctx, current.ObjectKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ResumeDescriptor{}, err
		}
		return nil, model.ResumeDescriptor{}, fmt.Errorf("failed to download resume: %w", err)
	}

	return rc, describe(current), nil
}

// Strategy reports the configured publishing strategy.
func (s *Resume) Strategy() model.ResumeStrategy {
	return s.opts.Strategy
}

func (s *Resume) current(ctx context.Context) (model.Resume, error) {
	var cached model.Resume
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, resumeCacheKey, &cached)
		if err != nil {
			s.logger.Warn("Resume service: cache read failed",
				"error", err.Error())
		}
		if ok {
			return cached, nil
		}
	}

	current, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Resume{}, err
		}
		return model.Resume{}, fmt.Errorf("failed to get resume: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, resumeCacheKey, current); err != nil {
			s.logger.Warn("Resume service: cache write failed",
				"error", err.Error())
		}
	}

	return current, nil
}

func (s *Resume) deleteBlob(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Resume service: failed to delete blob",
			"key", key,
			"error", err.Error())
	}
}

func (s *Resume) staticPath() string {
	return filepath.Join(s.opts.StaticDir, s.opts.StaticFile)
}

func describe(r model.Resume) model.ResumeDescriptor {
	return model.ResumeDescriptor{
		FileName:   r.FileName,
		FilePath:   ResumeFilePath,
		UploadedAt: r.UploadedAt,
	}
}

func isPDF(fileName, contentType string) bool {
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), pdfContentType)
}
