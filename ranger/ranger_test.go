package ranger_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/auth"
	"github.com/xy-planning-network/writium/http/middleware"
	"github.com/xy-planning-network/writium/logger"
	"github.com/xy-planning-network/writium/ranger"
)

func quietLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
}

// newConfig lays out a blog with one article and one asset.
func newConfig(t *testing.T) ranger.Config {
	t.Helper()

	posts := t.TempDir()
	require.Nil(t, os.MkdirAll(filepath.Join(posts, "hello"), 0o755))
	require.Nil(t, os.WriteFile(filepath.Join(posts, "hello", "content.md"), []byte("# Hello\n\nWelcome.\n"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(posts, "hello", "metadata.json"), []byte(`{"title": "Hello"}`), 0o644))

	static := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(static, "style.css"), []byte("body {}"), 0o644))

	return ranger.Config{
		Env:            writium.Development,
		LogLevel:       logger.LogLevelError,
		Host:           "localhost",
		Port:           ":0",
		PostDir:        posts,
		StaticDir:      static,
		TemplateDir:    t.TempDir(),
		DigestsPerPage: 10,
		CacheCapacity:  4,
	}
}

func do(h http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestNewInvalidConfig(t *testing.T) {
	// Act
	r, err := ranger.New(ranger.Config{})

	// Assert
	require.Nil(t, r)
	require.ErrorIs(t, err, writium.ErrBadConfig)
}

func TestRangerServesBlog(t *testing.T) {
	// Arrange
	r, err := ranger.New(newConfig(t), ranger.WithLogger(quietLogger()))
	require.Nil(t, err)

	tcs := []struct {
		name        string
		target      string
		status      int
		contentType string
		body        string
	}{
		{"article", "/articles/hello/", http.StatusOK, "text/html; charset=utf-8", "Welcome."},
		{"index", "/articles", http.StatusOK, "text/html; charset=utf-8", `href="/articles/hello/"`},
		{"latest", "/articles/latest", http.StatusOK, "text/html; charset=utf-8", "<title>Hello</title>"},
		{"static", "/static/style.css", http.StatusOK, "text/css", "body {}"},
		{"admin", "/admin/cache", http.StatusOK, "application/json", `"capacity":4`},
		{"missing-article", "/articles/nope/", http.StatusNotFound, "text/html; charset=utf-8", "article not found"},
		{"not-found", "/nope", http.StatusNotFound, "application/json", `{"msg":"api not found"}`},
		{"health", "/healthz", http.StatusOK, "application/json", `"status":"ok"`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			w := do(r.Handler(), http.MethodGet, tc.target)

			// Assert
			require.Equal(t, tc.status, w.Code)
			require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), tc.contentType))
			require.Contains(t, w.Body.String(), tc.body)
			require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRangerGuardsAdmin(t *testing.T) {
	// Arrange
	cfg := newConfig(t)
	cfg.JWTSecret = "secret"

	r, err := ranger.New(cfg, ranger.WithLogger(quietLogger()))
	require.Nil(t, err)

	svc, err := auth.NewService("secret")
	require.Nil(t, err)
	token, err := svc.Issue("ops", ranger.AdminScope)
	require.Nil(t, err)

	// Act
	w := do(r.Handler(), http.MethodGet, "/admin/cache")

	// Assert
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Act
	w = do(r.Handler(), http.MethodDelete, "/admin/cache", "Authorization", "Bearer "+token)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"purged": 0}`, w.Body.String())
}

func TestRangerDisablesUnguardedAdmin(t *testing.T) {
	// Arrange
	cfg := newConfig(t)
	cfg.Env = writium.Production

	r, err := ranger.New(cfg, ranger.WithLogger(quietLogger()))
	require.Nil(t, err)

	// Act
	w := do(r.Handler(), http.MethodGet, "/admin/cache", "X-Forwarded-Proto", "https")

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)

	// Act
	w = do(r.Handler(), http.MethodGet, "/articles/hello/")

	// Assert
	require.Equal(t, http.StatusPermanentRedirect, w.Code)
}

// ping answers GET /ping.
type ping struct{ deps [][]string }

func (ping) Name() []string             { return []string{"ping"} }
func (p ping) Dependencies() [][]string { return p.deps }
func (ping) Get(*api.Request) (*api.Response, error) {
	return api.NewResponse(http.StatusOK).WithBody("text/plain", []byte("pong")), nil
}

func TestRangerWithApis(t *testing.T) {
	// Arrange
	r, err := ranger.New(newConfig(t), ranger.WithLogger(quietLogger()), ranger.WithApis(ping{deps: [][]string{{"articles"}}}))
	require.Nil(t, err)

	// Act
	w := do(r.Handler(), http.MethodGet, "/ping")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
}

func TestRangerWithApisMissingDependency(t *testing.T) {
	// Act
	r, err := ranger.New(newConfig(t), ranger.WithLogger(quietLogger()), ranger.WithApis(ping{deps: [][]string{{"comments"}}}))

	// Assert
	require.Nil(t, r)
	require.ErrorIs(t, err, writium.ErrBadConfig)
}

func TestRangerGuide(t *testing.T) {
	// Arrange
	r, err := ranger.New(newConfig(t), ranger.WithLogger(quietLogger()))
	require.Nil(t, err)

	done := make(chan error, 1)
	go func() { done <- r.Guide() }()

	// Act
	r.Cancel()()

	// Assert
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Guide did not stop")
	}
}

func TestRangerConsoleCloses(t *testing.T) {
	// Arrange
	pr, pw := io.Pipe()
	r, err := ranger.New(
		newConfig(t),
		ranger.WithContext(context.Background()),
		ranger.WithLogger(quietLogger()),
		ranger.WithConsole(pr),
	)
	require.Nil(t, err)

	w := do(r.Handler(), http.MethodGet, "/articles/hello/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, r.Articles().Cache().Len())

	done := make(chan error, 1)
	go func() { done <- r.Guide() }()

	// Act
	_, err = io.WriteString(pw, "recache\n")
	require.Nil(t, err)
	_, err = io.WriteString(pw, "close\n")
	require.Nil(t, err)

	// Assert
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Guide did not stop")
	}

	require.Equal(t, 0, r.Articles().Cache().Len())
	pw.Close()
}
