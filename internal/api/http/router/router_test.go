package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/portfolio/internal/api/http/context"
	"github.com/dtroode/portfolio/internal/api/http/handler"
	"github.com/dtroode/portfolio/internal/config"
	"github.com/dtroode/portfolio/internal/mocks"
	"github.com/dtroode/portfolio/internal/model"
	"github.com/dtroode/portfolio/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	auth     *mocks.AuthService
	projects *mocks.ProjectService
	resume   *mocks.ResumeService
	verifier *mocks.IdentityVerifier
	engine   *gin.Engine
}

func newFixture(t *testing.T, withAuth bool, staticDir string) *fixture {
	t.Helper()

	f := &fixture{
		auth:     mocks.NewAuthService(t),
		projects: mocks.NewProjectService(t),
		resume:   mocks.NewResumeService(t),
		verifier: mocks.NewIdentityVerifier(t),
	}

	deps := Deps{
		Config: config.HTTP{
			AllowedOrigins:     []string{"http://localhost:5173"},
			RequestTimeout:     time.Second,
			MaxUploadBytes:     1 << 20,
			LoginRatePerMinute: 2,
		},
		ProjectService: f.projects,
		ResumeService:  f.resume,
		Verifier:       f.verifier,
		ContextManager: httpcontext.NewManager(),
		Health:         handler.NewHealth("portfolio-api", "test", nil),
		StaticDir:      staticDir,
		Logger:         testutil.MakeNoopLogger(),
	}
	if withAuth {
		deps.AuthService = f.auth
	}

	f.engine = New(deps).Register()
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicReads(t *testing.T) {
	f := newFixture(t, true, "")

	f.projects.On("List", mock.Anything).Return([]model.Project{{ID: uuid.New(), Title: "A"}}, nil)
	f.resume.On("Get", mock.Anything).Return(model.ResumeDescriptor{}, model.ErrNotFound)

	rec := f.do(http.MethodGet, "/api/projects", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/resume", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminGate(t *testing.T) {
	f := newFixture(t, true, "")

	f.verifier.On("Verify", mock.Anything, "admin-token").Return(model.Principal{UID: "ADMIN123", Admin: true}, nil)
	f.verifier.On("Verify", mock.Anything, "user-token").Return(model.Principal{UID: "USER456"}, nil)
	f.projects.On("Create", mock.Anything, mock.Anything).Return(model.Project{ID: uuid.New(), Title: "T", Description: "D"}, nil).Once()

	body := `{"title":"T","description":"D"}`

	rec := f.do(http.MethodPost, "/api/projects", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/projects", "user-token", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodDelete, "/api/projects/"+uuid.NewString(), "user-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/api/resume", "user-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/api/projects", "admin-token", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_AuthRoutes(t *testing.T) {
	t.Run("local provider", func(t *testing.T) {
		f := newFixture(t, true, "")
		f.auth.On("SignIn", mock.Anything, "a@example.com", "bad").Return(model.Session{}, model.ErrInvalidCredentials)

		body := `{"email":"a@example.com","password":"bad"}`
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/api/auth/login", "", body).Code)
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/api/auth/login", "", body).Code)
		assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/api/auth/login", "", body).Code)
	})

	t.Run("external provider", func(t *testing.T) {
		f := newFixture(t, false, "")

		rec := f.do(http.MethodPost, "/api/auth/login", "", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		f.verifier.On("Verify", mock.Anything, "firebase-id-token").Return(model.Principal{UID: "USER456"}, nil)
		rec = f.do(http.MethodGet, "/api/auth/me", "firebase-id-token", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_CORS(t *testing.T) {
	f := newFixture(t, true, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	f.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	f.engine.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Static(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.pdf"), []byte("%PDF-static"), 0o644))

	f := newFixture(t, true, dir)

	rec := f.do(http.MethodGet, "/static/resume.pdf", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-static", rec.Body.String())
}
