package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/filestore"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/studyplan"
)

var testToday = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	repo      store.Repository
	files     *filestore.Local
	uploadDir string
	tokens    *identity.TokenIssuer
	router    http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, nil)
}

// newTestEnvWithRepo lets wrap replace the repository the handlers see.
func newTestEnvWithRepo(t *testing.T, wrap func(store.Repository) store.Repository) *testEnv {
	t.Helper()
	dir := t.TempDir()

	repo, err := store.NewSQLite(filepath.Join(dir, "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	if wrap != nil {
		repo = wrap(repo)
	}

	uploadDir := filepath.Join(dir, "uploads")
	files, err := filestore.NewLocal(uploadDir, 1<<20)
	require.NoError(t, err)

	tokens := identity.NewTokenIssuer("test-secret", time.Hour)
	h := NewHandler(Options{
		Repo:      repo,
		Files:     files,
		Tokens:    tokens,
		Planner:   studyplan.NewPlanner(func() time.Time { return testToday }),
		MaxUpload: 1 << 20,
		IsDev:     true,
	})

	r := chi.NewRouter()
	r.Use(identity.Middleware(tokens, repo))
	h.RegisterRoutes(r)

	return &testEnv{repo: repo, files: files, uploadDir: uploadDir, tokens: tokens, router: r}
}

// createAccount stores a user directly and returns a login token for it.
func (e *testEnv) createAccount(t *testing.T, username string, role domain.Role, attendance float64) (*domain.User, string) {
	t.Helper()
	hash, err := identity.HashPassword("secret123")
	require.NoError(t, err)

	user := &domain.User{Username: username, Email: username + "@college.test", PasswordHash: hash, Role: role}
	var profile *domain.StudentProfile
	if role == domain.RoleStudent {
		profile = &domain.StudentProfile{Semester: 3, Branch: "CSE", AttendancePercentage: attendance}
	}
	require.NoError(t, e.repo.CreateUser(context.Background(), user, profile))

	token, _, err := e.tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) upload(t *testing.T, path, token string, fields map[string]string, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}
