package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
			ReadTimeoutSeconds:     5,
			WriteTimeoutSeconds:    5,
		},
		Database: config.DatabaseConfig{Driver: sqlite.DriverName, URL: sqlite.MemoryURL},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes: 60,
			BCryptCost:           bcrypt.MinCost,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer serves the full router on a migrated in-memory SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testdb.OpenSQLite(t)
	app, err := newApplication(testConfig(), discardLogger(), db, sqlite.Dialect{})
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

// as returns a copy of c that reports failures to t.
func (c *client) as(t *testing.T) *client {
	cp := *c
	cp.t = t
	return &cp
}

func (c *client) do(method, path string, body interface{}) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// signUpAndIn registers username and returns a client carrying its token.
func signUpAndIn(t *testing.T, srv *httptest.Server, username string) *client {
	t.Helper()

	anon := &client{t: t, base: srv.URL}
	creds := map[string]string{"username": username, "password": "secret123"}

	resp := anon.do(http.MethodPost, "/authentication/signup", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = anon.do(http.MethodPost, "/authentication/signin", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	require.NotEmpty(t, body["accessToken"])

	return &client{t: t, base: srv.URL, token: body["accessToken"]}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	resp := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestRouter_Authentication(t *testing.T) {
	srv := newTestServer(t)
	anon := &client{t: t, base: srv.URL}
	creds := map[string]string{"username": "alice1", "password": "secret123"}

	resp := anon.do(http.MethodPost, "/authentication/signup", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("duplicate username", func(t *testing.T) {
		anon := anon.as(t)
		resp := anon.do(http.MethodPost, "/authentication/signup", creds)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("invalid credentials shape", func(t *testing.T) {
		anon := anon.as(t)
		resp := anon.do(http.MethodPost, "/authentication/signup",
			map[string]string{"username": "bob", "password": "secret123"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		anon := anon.as(t)
		resp := anon.do(http.MethodPost, "/authentication/signin",
			map[string]string{"username": "alice1", "password": "wrong123"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		anon := anon.as(t)
		resp := anon.do(http.MethodPost, "/authentication/signin",
			map[string]string{"username": "nobody1", "password": "secret123"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("task routes require a token", func(t *testing.T) {
		anon := anon.as(t)
		resp := anon.do(http.MethodGet, "/tasks", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		bad := &client{t: t, base: srv.URL, token: "not-a-jwt"}
		resp = bad.do(http.MethodGet, "/tasks", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRouter_TaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	alice := signUpAndIn(t, srv, "alice1")

	resp := alice.do(http.MethodPost, "/tasks", map[string]string{"title": "Buy milk", "description": "2 liters"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[domain.Task](t, resp)
	assert.Equal(t, domain.TaskStatusOpen, created.Status)
	assert.Equal(t, "Buy milk", created.Title)

	resp = alice.do(http.MethodPost, "/tasks", map[string]string{"title": "Walk dog", "description": "Park"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode[domain.Task](t, resp)

	t.Run("list in creation order", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodGet, "/tasks", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tasks := decode[[]domain.Task](t, resp)
		require.Len(t, tasks, 2)
		assert.Equal(t, created.ID, tasks[0].ID)
		assert.Equal(t, second.ID, tasks[1].ID)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodGet, "/tasks?search=MILK", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tasks := decode[[]domain.Task](t, resp)
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodGet, "/tasks/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.ID, decode[domain.Task](t, resp).ID)
	})

	t.Run("update status then filter", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodPatch, "/tasks/"+created.ID.String()+"/status", map[string]string{"status": "DONE"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.TaskStatusDone, decode[domain.Task](t, resp).Status)

		resp = alice.do(http.MethodGet, "/tasks?status=DONE", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tasks := decode[[]domain.Task](t, resp)
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodPatch, "/tasks/"+created.ID.String()+"/status", map[string]string{"status": "LATER"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodGet, "/tasks/12345", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete then not found", func(t *testing.T) {
		alice := alice.as(t)
		resp := alice.do(http.MethodDelete, "/tasks/"+second.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = alice.do(http.MethodDelete, "/tasks/"+second.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = alice.do(http.MethodGet, "/tasks/"+second.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	srv := newTestServer(t)
	alice := signUpAndIn(t, srv, "alice1")
	bob := signUpAndIn(t, srv, "bob12345")

	resp := alice.do(http.MethodPost, "/tasks", map[string]string{"title": "Private", "description": "Alice only"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[domain.Task](t, resp)

	resp = bob.do(http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]domain.Task](t, resp))

	resp = bob.do(http.MethodGet, "/tasks/"+task.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = bob.do(http.MethodPatch, "/tasks/"+task.ID.String()+"/status", map[string]string{"status": "DONE"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = bob.do(http.MethodDelete, "/tasks/"+task.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = alice.do(http.MethodGet, "/tasks/"+task.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.TaskStatusOpen, decode[domain.Task](t, resp).Status)
}
