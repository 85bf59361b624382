package controller

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dtroode/portfolio/internal/client/clienterr"
	"github.com/dtroode/portfolio/internal/client/resource"
	"github.com/dtroode/portfolio/internal/client/session"
)

// ResumeStrategy publishes and locates the resume.
type ResumeStrategy interface {
	Fetch(ctx context.Context) (*resource.Resume, error)
	Upload(ctx context.Context, file resource.File) (*resource.Resume, error)
}

// ServerResume keeps the resume on the backend.
type ServerResume struct {
	client *resource.Client
}

func NewServerResume(client *resource.Client) *ServerResume {
	return &ServerResume{client: client}
}

func (s *ServerResume) Fetch(ctx context.Context) (*resource.Resume, error) {
	return s.client.GetResume(ctx)
}

func (s *ServerResume) Upload(ctx context.Context, file resource.File) (*resource.Resume, error) {
	return s.client.UploadResume(ctx, file)
}

// StaticUploadError explains how to publish a resume served from a static path.
type StaticUploadError struct {
	Path string
}

func (e *StaticUploadError) Error() string {
	return fmt.Sprintf("resume is served from %s: replace the file in the static directory and redeploy", e.Path)
}

// StaticResume serves the resume from a fixed public path.
type StaticResume struct {
	client *resource.Client
	path   string
}

func NewStaticResume(client *resource.Client, staticPath string) *StaticResume {
	return &StaticResume{client: client, path: staticPath}
}

// Fetch reports the static file when it is reachable.
func (s *StaticResume) Fetch(ctx context.Context) (*resource.Resume, error) {
	ok, err := s.client.Head(ctx, s.path)
	if err != nil || !ok {
		return nil, err
	}
	return &resource.Resume{FileName: path.Base(s.path), FilePath: s.path}, nil
}

// Upload never reaches the network.
func (s *StaticResume) Upload(context.Context, resource.File) (*resource.Resume, error) {
	return nil, &StaticUploadError{Path: s.path}
}

// ResumeState is a snapshot for rendering.
type ResumeState struct {
	Resume      *resource.Resume
	DownloadURL string
	Loading     bool
	LoadFailed  bool
	CanUpload   bool
	Uploading   bool
}

// Resume is the home view controller holding the resume singleton.
type Resume struct {
	observable

	strategy ResumeStrategy
	deps     Deps
	sub      *session.Subscription

	mu         sync.RWMutex
	current    *resource.Resume
	loading    bool
	loadFailed bool
	canUpload  bool

	uploading atomic.Bool
}

func NewResume(strategy ResumeStrategy, deps Deps) *Resume {
	r := &Resume{strategy: strategy, deps: deps}
	r.sub = deps.Provider.Subscribe(func(identity *session.Identity) {
		r.mu.Lock()
		r.canUpload = deps.Gate.IsAdmin(identity)
		r.mu.Unlock()
		r.changed()
	})
	return r
}

func (r *Resume) Close() {
	r.sub.Unsubscribe()
}

func (r *Resume) State() ResumeState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := ResumeState{
		Loading:    r.loading,
		LoadFailed: r.loadFailed,
		CanUpload:  r.canUpload,
		Uploading:  r.uploading.Load(),
	}
	if r.current != nil {
		c := *r.current
		st.Resume = &c
		st.DownloadURL = r.deps.Client.URL(c.FilePath)
	}
	return st
}

// Load fetches the descriptor. A missing resume is not an error.
func (r *Resume) Load(ctx context.Context) error {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()
	r.changed()

	current, err := r.strategy.Fetch(ctx)

	r.mu.Lock()
	r.loading = false
	r.loadFailed = err != nil
	if err == nil {
		r.current = current
	}
	r.mu.Unlock()
	r.changed()

	if err != nil {
		r.deps.Logger.Debug("Resume controller: load failed", "error", err)
		if r.deps.Notifier != nil {
			r.deps.Notifier.Notify("Failed to load resume")
		}
		return err
	}
	return nil
}

// Upload replaces the resume with file and re-fetches on success.
func (r *Resume) Upload(ctx context.Context, file *resource.File) error {
	if !r.deps.Gate.IsAdmin(r.deps.Provider.Current()) {
		err := &clienterr.AuthorizationError{Action: "upload the resume"}
		notifyErr(r.deps.Notifier, err)
		return err
	}

	if file == nil || file.Reader == nil {
		err := &clienterr.ValidationError{Field: "a resume file"}
		notifyErr(r.deps.Notifier, err)
		return err
	}
	if !isPDF(*file) {
		err := &clienterr.ValidationError{Field: "a PDF file"}
		notifyErr(r.deps.Notifier, err)
		return err
	}

	if !r.uploading.CompareAndSwap(false, true) {
		return ErrBusy
	}
	r.changed()
	defer func() {
		r.uploading.Store(false)
		r.changed()
	}()

	if _, err := r.strategy.Upload(ctx, *file); err != nil {
		var staticErr *StaticUploadError
		if errors.As(err, &staticErr) {
			if r.deps.Notifier != nil {
				r.deps.Notifier.Notify(staticErr.Error())
			}
			return err
		}

		opErr := &clienterr.OperationError{Op: clienterr.OpUpload, Err: err}
		r.deps.Logger.Info("Resume controller: upload failed", "error", err)
		notifyErr(r.deps.Notifier, opErr)
		return opErr
	}

	if r.deps.Notifier != nil {
		r.deps.Notifier.Notify("Resume uploaded!")
	}
	_ = r.Load(ctx)
	return nil
}

func isPDF(f resource.File) bool {
	return strings.EqualFold(path.Ext(f.Name), ".pdf") || f.ContentType == "application/pdf"
}
