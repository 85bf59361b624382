package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResumeStore persists the single current resume descriptor.
type ResumeStore interface {
	// Get returns the current resume or ErrNotFound.
	Get(ctx context.Context) (Resume, error)
	// Replace stores resume as the current one and returns the descriptor it replaced.
	// The returned bool is false when there was no previous resume.
	Replace(ctx context.Context, resume Resume) (Resume, bool, error)
}

// Resume describes the currently published resume file.
type Resume struct {
	ID          uuid.UUID
	FileName    string
	ObjectKey   string
	ContentType string
	Size        int64
	UploadedBy  string
	UploadedAt  time.Time
}

// ResumeStrategy selects how resume files are published.
type ResumeStrategy string

const (
	// ResumeStrategyServer stores uploads in object storage.
	ResumeStrategyServer ResumeStrategy = "server"
	// ResumeStrategyStatic serves a static file replaced out-of-band.
	ResumeStrategyStatic ResumeStrategy = "static"
)

// ResumeDescriptor is what clients see of the current resume.
type ResumeDescriptor struct {
	FileName   string
	FilePath   string
	UploadedAt time.Time
}
