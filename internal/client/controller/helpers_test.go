package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtroode/portfolio/internal/client/authz"
	"github.com/dtroode/portfolio/internal/client/resource"
	"github.com/dtroode/portfolio/internal/client/session"
	"github.com/dtroode/portfolio/internal/testutil"
)

// backend is an in-memory portfolio API.
type backend struct {
	t *testing.T

	mu       sync.Mutex
	projects []resource.Project
	resume   *resource.Resume
	nextID   int

	failList   atomic.Bool
	failCreate atomic.Bool
	failDelete atomic.Bool
	// missingResume404 answers 404 instead of 204 when no resume exists.
	missingResume404 atomic.Bool

	// holdCreate, when set, blocks POST handling until it is closed.
	holdCreate chan struct{}
	createSeen chan struct{}

	gets    atomic.Int32
	posts   atomic.Int32
	deletes atomic.Int32
	uploads atomic.Int32
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	b := &backend{t: t}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) seed(titles ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, title := range titles {
		b.nextID++
		b.projects = append(b.projects, resource.Project{ID: fmt.Sprintf("p%d", b.nextID), Title: title, Description: title + " description"})
	}
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == resource.ProjectsEndpoint:
		b.gets.Add(1)
		if b.failList.Load() {
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}
		b.mu.Lock()
		data, _ := json.Marshal(b.projects)
		b.mu.Unlock()
		_, _ = w.Write(data)

	case r.Method == http.MethodPost && r.URL.Path == resource.ProjectsEndpoint:
		b.posts.Add(1)
		b.mu.Lock()
		seen, hold := b.createSeen, b.holdCreate
		b.mu.Unlock()
		if seen != nil {
			seen <- struct{}{}
		}
		if hold != nil {
			<-hold
		}
		if b.failCreate.Load() {
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}
		var p resource.Project
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			_ = r.ParseMultipartForm(1 << 20)
			p.Title = r.FormValue("title")
			p.Description = r.FormValue("description")
			if _, _, err := r.FormFile("image"); err == nil {
				p.Image = "has-image"
			}
		} else {
			_ = json.NewDecoder(r.Body).Decode(&p)
		}
		b.mu.Lock()
		b.nextID++
		p.ID = fmt.Sprintf("p%d", b.nextID)
		if p.Image != "" {
			p.Image = "/api/projects/" + p.ID + "/image"
		}
		b.projects = append(b.projects, p)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, resource.ProjectsEndpoint+"/"):
		b.deletes.Add(1)
		if b.failDelete.Load() {
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, resource.ProjectsEndpoint+"/")
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, p := range b.projects {
			if p.ID == id {
				b.projects = append(b.projects[:i], b.projects[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)

	case r.Method == http.MethodGet && r.URL.Path == resource.ResumeEndpoint:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.resume == nil {
			if b.missingResume404.Load() {
				http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(b.resume)

	case r.Method == http.MethodPost && r.URL.Path == resource.ResumeEndpoint:
		b.uploads.Add(1)
		_, fh, err := r.FormFile(resource.ResumeField)
		if err != nil {
			http.Error(w, `{"error":"validation failed"}`, http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.resume = &resource.Resume{FileName: fh.Filename, FilePath: "/api/resume/file"}
		out := *b.resume
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(out)

	case r.Method == http.MethodHead && r.URL.Path == "/static/resume.pdf":
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// holdCreates makes POST /api/projects wait for release and report arrival on seen.
func (b *backend) holdCreates() (seen <-chan struct{}, release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createSeen = make(chan struct{}, 1)
	b.holdCreate = make(chan struct{})
	hold := b.holdCreate
	return b.createSeen, func() { close(hold) }
}

func (b *backend) titles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.projects))
	for _, p := range b.projects {
		out = append(out, p.Title)
	}
	return out
}

// fakeAuth signs in known users without a network.
type fakeAuth struct {
	users map[string]session.Identity
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (session.Identity, error) {
	identity, ok := f.users[email]
	if !ok || password != "secret" {
		return session.Identity{}, errors.New("invalid email or password")
	}
	return identity, nil
}

func (f *fakeAuth) SignOut(context.Context, session.Identity) error { return nil }

type notifications struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notifications) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notifications) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

type navigation struct {
	mu    sync.Mutex
	paths []string
}

func (n *navigation) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navigation) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type scriptedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *scriptedConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type harness struct {
	backend   *backend
	provider  *session.Provider
	notes     *notifications
	nav       *navigation
	confirmer *scriptedConfirmer
	deps      Deps
}

// newHarness wires controllers against an in-memory backend with
// ADMIN123 as the privileged uid.
func newHarness(t *testing.T) *harness {
	t.Helper()

	b, srv := newBackend(t)
	auth := &fakeAuth{users: map[string]session.Identity{
		"admin@example.com": {Token: "admin-token", UID: "ADMIN123", Email: "admin@example.com"},
		"user@example.com":  {Token: "user-token", UID: "USER456", Email: "user@example.com"},
	}}
	provider := session.NewProvider(auth, testutil.MakeNoopLogger())

	h := &harness{
		backend:   b,
		provider:  provider,
		notes:     &notifications{},
		nav:       &navigation{},
		confirmer: &scriptedConfirmer{answer: true},
	}
	h.deps = Deps{
		Client:    resource.NewClient(srv.URL, time.Second, provider, provider),
		Provider:  provider,
		Gate:      authz.NewGate("ADMIN123"),
		Notifier:  h.notes,
		Navigator: h.nav,
		Confirmer: h.confirmer,
		Logger:    testutil.MakeNoopLogger(),
	}
	return h
}

func (h *harness) signIn(t *testing.T, email string) {
	t.Helper()
	if _, err := h.provider.SignIn(context.Background(), email, "secret"); err != nil {
		t.Fatalf("sign in %s: %v", email, err)
	}
}

func pdf(name string) *resource.File {
	return &resource.File{Name: name, ContentType: "application/pdf", Reader: io.NopCloser(strings.NewReader("%PDF-1.7"))}
}
