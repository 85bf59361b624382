package resource

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dtroode/portfolio/internal/client/clienterr"
)

const (
	// ResumeEndpoint is the resume descriptor path.
	ResumeEndpoint = "/api/resume"
	// ResumeField is the multipart field carrying the resume file.
	ResumeField = "resume"
)

// Resume describes the published resume.
type Resume struct {
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
}

// GetResume returns nil without error when no resume is published, whether
// the backend answers 204, 404 or an empty descriptor.
func (c *Client) GetResume(ctx context.Context) (*Resume, error) {
	var out *Resume
	if _, err := c.do(ctx, http.MethodGet, ResumeEndpoint, nil, "", &out); err != nil {
		var netErr *clienterr.NetworkError
		if errors.As(err, &netErr) && netErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if out == nil || out.FilePath == "" {
		return nil, nil
	}
	return out, nil
}

// UploadResume replaces the published resume with file.
func (c *Client) UploadResume(ctx context.Context, file File) (*Resume, error) {
	file.Field = ResumeField
	body, contentType, err := encodeBody(nil, &file)
	if err != nil {
		return nil, err
	}

	var out Resume
	if _, err := c.do(ctx, http.MethodPost, ResumeEndpoint, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
