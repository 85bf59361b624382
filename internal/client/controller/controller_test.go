package controller

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/portfolio/internal/client/clienterr"
	"github.com/dtroode/portfolio/internal/client/resource"
)

func projectTitles(st CollectionState[resource.Project]) []string {
	out := make([]string, 0, len(st.Items))
	for _, p := range st.Items {
		out = append(out, p.Title)
	}
	return out
}

func TestCollection_AdminAndUserScenario(t *testing.T) {
	h := newHarness(t)
	h.backend.seed("Alpha", "Beta")
	ctx := context.Background()

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()

	require.NoError(t, projects.Load(ctx))
	assert.Equal(t, []string{"Alpha", "Beta"}, projectTitles(projects.State()))
	assert.False(t, projects.State().CanMutate)

	t.Run("USER456 cannot mutate", func(t *testing.T) {
		h.signIn(t, "user@example.com")
		assert.False(t, projects.State().CanMutate)

		_, err := projects.Create(ctx, map[string]string{"title": "Nope", "description": "x"}, nil)
		var authErr *clienterr.AuthorizationError
		require.ErrorAs(t, err, &authErr)

		_, err = projects.Delete(ctx, "p1")
		require.ErrorAs(t, err, &authErr)

		assert.Zero(t, h.backend.posts.Load())
		assert.Zero(t, h.backend.deletes.Load())
		assert.Equal(t, []string{"Alpha", "Beta"}, projectTitles(projects.State()))
		assert.Empty(t, h.confirmer.prompts)
	})

	t.Run("ADMIN123 creates and deletes", func(t *testing.T) {
		h.signIn(t, "admin@example.com")
		assert.True(t, projects.State().CanMutate)

		created, err := projects.Create(ctx, map[string]string{"title": "Gamma", "description": "Third"}, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		st := projects.State()
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, projectTitles(st))
		ids := map[string]bool{}
		for _, p := range st.Items {
			ids[p.ID] = true
		}
		assert.Len(t, ids, 3)

		deleted, err := projects.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []string{"Delete this project?"}, h.confirmer.prompts)

		for _, p := range projects.State().Items {
			assert.NotEqual(t, created.ID, p.ID)
		}
		assert.Contains(t, h.notes.all(), "Project added!")
		assert.Contains(t, h.notes.all(), "Project deleted!")
	})
}

func TestCollection_CreateWithImageUsesMultipart(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "admin@example.com")

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()

	created, err := projects.Create(context.Background(),
		map[string]string{"title": "Shot", "description": "With image"},
		&resource.File{Name: "shot.png", ContentType: "image/png", Reader: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "/api/projects/"+created.ID+"/image", created.Image)
}

func TestCollection_RequiredFields(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "admin@example.com")

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()

	_, err := projects.Create(context.Background(), map[string]string{"title": "  ", "description": "x"}, nil)

	var valErr *clienterr.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "title", valErr.Field)
	assert.Zero(t, h.backend.posts.Load())
}

func TestCollection_DoubleSubmit(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "admin@example.com")
	seen, release := h.backend.holdCreates()

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()

	fields := map[string]string{"title": "Once", "description": "Only one"}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = projects.Create(context.Background(), fields, nil)
	}()

	select {
	case <-seen:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the server")
	}
	assert.True(t, projects.State().Submitting)

	_, err := projects.Create(context.Background(), fields, nil)
	assert.ErrorIs(t, err, ErrBusy)

	release()
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, int32(1), h.backend.posts.Load())
	assert.False(t, projects.State().Submitting)
}

func TestCollection_Failures(t *testing.T) {
	h := newHarness(t)
	h.backend.seed("Alpha")
	h.signIn(t, "admin@example.com")
	ctx := context.Background()

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()
	require.NoError(t, projects.Load(ctx))

	t.Run("load keeps previous items", func(t *testing.T) {
		h.backend.failList.Store(true)
		defer h.backend.failList.Store(false)

		err := projects.Load(ctx)
		var netErr *clienterr.NetworkError
		require.ErrorAs(t, err, &netErr)

		st := projects.State()
		assert.True(t, st.LoadFailed)
		assert.Equal(t, []string{"Alpha"}, projectTitles(st))
		assert.Contains(t, h.notes.all(), "Failed to load projects")
	})

	t.Run("create failure", func(t *testing.T) {
		h.backend.failCreate.Store(true)
		defer h.backend.failCreate.Store(false)

		_, err := projects.Create(ctx, map[string]string{"title": "X", "description": "Y"}, nil)
		assert.True(t, clienterr.IsUpload(err))
		assert.Contains(t, h.notes.all(), "Upload failed")
	})

	t.Run("delete failure keeps item", func(t *testing.T) {
		h.backend.failDelete.Store(true)
		defer h.backend.failDelete.Store(false)

		_, err := projects.Delete(ctx, "p1")
		assert.True(t, clienterr.IsDelete(err))
		assert.Contains(t, h.notes.all(), "Delete failed")
		assert.Equal(t, []string{"Alpha"}, h.backend.titles())
	})

	t.Run("declined confirmation", func(t *testing.T) {
		h.confirmer.answer = false
		defer func() { h.confirmer.answer = true }()

		before := h.backend.deletes.Load()
		deleted, err := projects.Delete(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Equal(t, before, h.backend.deletes.Load())
	})
}

func TestCollection_TracksSignOut(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "admin@example.com")

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()

	renders := 0
	projects.OnChange(func() { renders++ })

	assert.True(t, projects.State().CanMutate)
	require.NoError(t, h.provider.SignOut(context.Background()))
	assert.False(t, projects.State().CanMutate)
	assert.Equal(t, 1, renders)
}

func TestResume_ServerStrategy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	home := NewResume(NewServerResume(h.deps.Client), h.deps)
	defer home.Close()

	require.NoError(t, home.Load(ctx))
	assert.Nil(t, home.State().Resume)
	assert.False(t, home.State().LoadFailed)

	h.signIn(t, "user@example.com")
	err := home.Upload(ctx, pdf("cv.pdf"))
	var authErr *clienterr.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	h.signIn(t, "admin@example.com")

	err = home.Upload(ctx, nil)
	var valErr *clienterr.ValidationError
	require.ErrorAs(t, err, &valErr)

	err = home.Upload(ctx, &resource.File{Name: "cv.docx", ContentType: "application/msword", Reader: strings.NewReader("doc")})
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, h.backend.uploads.Load())

	require.NoError(t, home.Upload(ctx, pdf("cv.pdf")))
	assert.Equal(t, int32(1), h.backend.uploads.Load())

	st := home.State()
	require.NotNil(t, st.Resume)
	assert.Equal(t, "cv.pdf", st.Resume.FileName)
	assert.True(t, strings.HasSuffix(st.DownloadURL, "/api/resume/file"))
	assert.Contains(t, h.notes.all(), "Resume uploaded!")
}

func TestResume_StaticStrategy(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "admin@example.com")
	ctx := context.Background()

	home := NewResume(NewStaticResume(h.deps.Client, "/static/resume.pdf"), h.deps)
	defer home.Close()

	require.NoError(t, home.Load(ctx))
	st := home.State()
	require.NotNil(t, st.Resume)
	assert.Equal(t, "resume.pdf", st.Resume.FileName)

	err := home.Upload(ctx, pdf("cv.pdf"))
	var staticErr *StaticUploadError
	require.ErrorAs(t, err, &staticErr)
	assert.Zero(t, h.backend.uploads.Load())
}

func TestLogin_Submit(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		h := newHarness(t)
		login := NewLogin(h.deps)

		err := login.Submit(context.Background(), "admin@example.com", "wrong")
		var credErr *clienterr.CredentialError
		require.ErrorAs(t, err, &credErr)

		assert.Nil(t, h.provider.Current())
		assert.Equal(t, []string{"Invalid email or password."}, h.notes.all())
		assert.Empty(t, h.nav.last())
	})

	t.Run("empty fields", func(t *testing.T) {
		h := newHarness(t)
		login := NewLogin(h.deps)

		err := login.Submit(context.Background(), " ", "")
		require.Error(t, err)
		assert.Equal(t, []string{"Invalid email or password."}, h.notes.all())
	})

	t.Run("valid credentials", func(t *testing.T) {
		h := newHarness(t)
		login := NewLogin(h.deps)

		require.NoError(t, login.Submit(context.Background(), "admin@example.com", "secret"))
		require.NotNil(t, h.provider.Current())
		assert.Equal(t, "ADMIN123", h.provider.Current().UID)
		assert.Equal(t, []string{"Logged in successfully!"}, h.notes.all())
		assert.Equal(t, LandingPath, h.nav.last())
	})
}

func TestNavbar(t *testing.T) {
	h := newHarness(t)
	nav := NewNavbar(h.deps)
	defer nav.Close()

	labels := func() []string {
		var out []string
		for _, l := range nav.Links() {
			out = append(out, l.Label)
		}
		return out
	}

	assert.Contains(t, labels(), "Login")

	h.signIn(t, "user@example.com")
	assert.Contains(t, labels(), "Logout")
	assert.NotContains(t, labels(), "Login")

	require.NoError(t, nav.Logout(context.Background()))
	require.NoError(t, nav.Logout(context.Background()))

	assert.Nil(t, nav.Identity())
	assert.Contains(t, labels(), "Login")
	assert.Equal(t, LoginPath, h.nav.last())
	assert.Equal(t, []string{"Logged out successfully!", "Logged out successfully!"}, h.notes.all())
}

func TestCollection_DeleteWithoutConfirmer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.backend.seed("Site")
	h.deps.Confirmer = nil

	projects := NewCollection[resource.Project](ProjectsConfig, h.deps)
	defer projects.Close()

	h.signIn(t, "admin@example.com")

	deleted, err := projects.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, h.backend.deletes.Load())
	assert.Equal(t, []string{"Site"}, h.backend.titles())
}

func TestResume_MissingIsNotAFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.missingResume404.Store(true)

	home := NewResume(NewServerResume(h.deps.Client), h.deps)
	defer home.Close()

	require.NoError(t, home.Load(context.Background()))
	st := home.State()
	assert.Nil(t, st.Resume)
	assert.False(t, st.LoadFailed)
	assert.Empty(t, h.notes.all())
}
