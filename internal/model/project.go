package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines persistence operations for showcase projects.
type ProjectStore interface {
	Create(ctx context.Context, project Project) (Project, error)
	List(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Project represents a showcase project entry.
type Project struct {
	ID               uuid.UUID
	Title            string
	Description      string
	GithubLink       string
	LiveLink         string
	ImageKey         string
	ImageContentType string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// HasImage reports whether an image blob is attached to the project.
func (p Project) HasImage() bool {
	return p.ImageKey != ""
}

// Upload describes a file received from a client.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateProjectParams contains parameters to create a project.
type CreateProjectParams struct {
	Title       string
	Description string
	GithubLink  string
	LiveLink    string
	Image       *Upload
}
