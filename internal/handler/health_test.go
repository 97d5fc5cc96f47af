package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/label-lookup/internal/config"
)

func okPing(context.Context) error { return nil }

func failingPing(context.Context) error { return errors.New("connection refused") }

func serveHealth(t *testing.T, h *HealthHandler) (int, map[string]interface{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, h.CheckHealth(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthHandler_CheckHealth(t *testing.T) {
	tests := []struct {
		name           string
		checks         []dependencyCheck
		expectedStatus int
		expectedState  string
	}{
		{
			name: "all healthy",
			checks: []dependencyCheck{
				{name: checkDatabase, required: true, ping: okPing},
				{name: checkRedis, required: false, ping: okPing},
			},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
		},
		{
			name: "optional redis down",
			checks: []dependencyCheck{
				{name: checkDatabase, required: true, ping: okPing},
				{name: checkRedis, required: false, ping: failingPing},
			},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
		},
		{
			name: "required redis down",
			checks: []dependencyCheck{
				{name: checkDatabase, required: true, ping: okPing},
				{name: checkRedis, required: true, ping: failingPing},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
		},
		{
			name: "database down",
			checks: []dependencyCheck{
				{name: checkDatabase, required: true, ping: failingPing},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &HealthHandler{
				Handler: NewHandler(newTestServer()),
				checks:  tc.checks,
				timeout: time.Second,
			}

			status, body := serveHealth(t, h)

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedState, body["status"])
			assert.Equal(t, "test", body["environment"])

			checks, ok := body["checks"].(map[string]interface{})
			require.True(t, ok)
			assert.Len(t, checks, len(tc.checks))
		})
	}
}

func TestHealthHandler_PingTimeout(t *testing.T) {
	h := &HealthHandler{
		Handler: NewHandler(newTestServer()),
		timeout: 10 * time.Millisecond,
		checks: []dependencyCheck{{
			name:     checkDatabase,
			required: true,
			ping: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}},
	}

	status, body := serveHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	check := body["checks"].(map[string]interface{})[checkDatabase].(map[string]interface{})
	assert.Equal(t, context.DeadlineExceeded.Error(), check["error"])
}

func TestNewHealthHandler_NoDependencies(t *testing.T) {
	s := newTestServer()
	s.Config.Observability = config.DefaultObservabilityConfig()
	s.Config.Observability.HealthChecks.Timeout = 2 * time.Second

	h := NewHealthHandler(s)

	assert.Empty(t, h.checks)
	assert.Equal(t, 2*time.Second, h.timeout)
}

func TestOpenAPIHandler_ServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	h := &OpenAPIHandler{Handler: NewHandler(newTestServer()), staticDir: dir}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)

	require.NoError(t, h.ServeOpenAPIUI(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "<html>docs</html>", rec.Body.String())
}

func TestOpenAPIHandler_MissingTemplate(t *testing.T) {
	h := &OpenAPIHandler{Handler: NewHandler(newTestServer()), staticDir: t.TempDir()}
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())

	assert.Error(t, h.ServeOpenAPIUI(c))
}
