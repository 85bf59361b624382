package resource

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/portfolio/internal/client/clienterr"
)

type staticIdentity struct{ token, uid string }

func (s staticIdentity) Token() string { return s.token }
func (s staticIdentity) UID() string   { return s.uid }

type capture struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
}

func (c *capture) add(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, r)
	c.bodies = append(c.bodies, string(body))
}

func TestList_AcceptsLegacyIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ProjectsEndpoint, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"_id":"a1","title":"Old"},{"id":"b2","title":"New","githubLink":"https://github.com/x"}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nil, nil)
	projects, err := List[Project](context.Background(), c, ProjectsEndpoint)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "a1", projects[0].GetID())
	assert.Equal(t, "b2", projects[1].ID)
	assert.Equal(t, "https://github.com/x", projects[1].GithubLink)
}

func TestCreate_JSONAndMultipart(t *testing.T) {
	captured := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			f, fh, err := r.FormFile("image")
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			assert.Equal(t, "png-bytes", string(data))
			assert.Equal(t, "shot.png", fh.Filename)
			assert.Equal(t, "Site", r.FormValue("title"))
		}
		captured.add(r)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"new-id","title":"Site","description":"D"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticIdentity{token: "tok", uid: "ADMIN123"}, staticIdentity{token: "tok", uid: "ADMIN123"})
	fields := map[string]string{"title": "Site", "description": "D"}

	p, err := Create[Project](context.Background(), c, ProjectsEndpoint, fields, nil)
	require.NoError(t, err)
	assert.Equal(t, "new-id", p.ID)

	_, err = Create[Project](context.Background(), c, ProjectsEndpoint, fields, &File{
		Field: "image", Name: "shot.png", ContentType: "image/png", Reader: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	require.Len(t, captured.requests, 2)
	first := captured.requests[0]
	assert.Equal(t, "application/json", first.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok", first.Header.Get("Authorization"))
	assert.Equal(t, "ADMIN123", first.Header.Get(AdminUIDHeader))

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(captured.bodies[0]), &sent))
	assert.Equal(t, fields, sent)
}

func TestDelete_ErrorsBecomeNetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == ProjectsEndpoint+"/ok" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"admin privileges required"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)
	require.NoError(t, c.Delete(context.Background(), ProjectsEndpoint, "ok"))

	err := c.Delete(context.Background(), ProjectsEndpoint, "other")
	var netErr *clienterr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusForbidden, netErr.Status)
	assert.Contains(t, netErr.Error(), "admin privileges required")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, nil, nil)
	_, err := List[Project](context.Background(), c, ProjectsEndpoint)

	var netErr *clienterr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.Status)
}

func TestResume(t *testing.T) {
	var published atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if !published.Load() {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			_, _ = io.WriteString(w, `{"fileName":"cv.pdf","filePath":"/api/resume/file"}`)
		case http.MethodPost:
			f, fh, err := r.FormFile(ResumeField)
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, "cv.pdf", fh.Filename)
			published.Store(true)
			_, _ = io.WriteString(w, `{"fileName":"cv.pdf","filePath":"/api/resume/file"}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)

	got, err := c.GetResume(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)

	up, err := c.UploadResume(context.Background(), File{Name: "cv.pdf", ContentType: "application/pdf", Reader: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "/api/resume/file", up.FilePath)

	got, err = c.GetResume(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, srv.URL+"/api/resume/file", c.URL(got.FilePath))
}

func TestResume_NullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, time.Second, nil, nil).GetResume(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResume_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, time.Second, nil, nil).GetResume(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResume_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil, nil).GetResume(context.Background())
	var netErr *clienterr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.Status)
}

func TestHead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/static/resume.pdf" {
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)

	ok, err := c.Head(context.Background(), "/static/resume.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Head(context.Background(), "/static/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthAPI(t *testing.T) {
	logout := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "right" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"error":"invalid email or password"}`)
				return
			}
			_, _ = io.WriteString(w, `{"accessToken":"acc","refreshToken":"ref","uid":"ADMIN123","email":"a@example.com","admin":true}`)
		case "/api/auth/logout":
			logout.add(r)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	api := NewAuthAPI(NewClient(srv.URL, time.Second, nil, nil))

	identity, err := api.SignIn(context.Background(), "a@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN123", identity.UID)
	assert.True(t, identity.Admin)
	assert.Equal(t, "acc", identity.Token)

	_, err = api.SignIn(context.Background(), "a@example.com", "wrong")
	var netErr *clienterr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusUnauthorized, netErr.Status)

	require.NoError(t, api.SignOut(context.Background(), identity))
	require.Len(t, logout.bodies, 1)
	assert.JSONEq(t, `{"refreshToken":"ref"}`, logout.bodies[0])
}
