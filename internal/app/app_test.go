package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetexport/internal/config"
	"sheetexport/internal/infrastructure"
	"sheetexport/internal/shared/testutil"
)

func newTestApplication(t *testing.T, mutate ...func(*config.Config)) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.Export.OutputDir = t.TempDir()
	cfg.Security.RateLimit.Enabled = false
	for _, m := range mutate {
		m(cfg)
	}
	logger, _ := testutil.NewTestLogger(t)

	app, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = app.OTelProviders.Shutdown(context.Background())
	})
	return app
}

func serve(app *Application, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.NotNil(t, app.ExportService)
	assert.NotNil(t, app.HealthService)
	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Len(t, app.Registry.Profiles(), 3)
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHEETEXPORT_SERVER_PORT", "-1")

	app, err := NewApplication()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
	assert.Nil(t, app)
}

func TestRouter_Endpoints(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"health", http.MethodGet, "/api/health", http.StatusOK},
		{"readiness", http.MethodGet, "/api/health/ready", http.StatusOK},
		{"profiles", http.MethodGet, "/api/v1/profiles", http.StatusOK},
		{"profile", http.MethodGet, "/api/v1/profiles/hooks", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v2/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt.method, tt.path, nil)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_ExportRecordsMetrics(t *testing.T) {
	app := newTestApplication(t)

	body, err := json.Marshal(map[string]any{
		"profile":     "hooks",
		"destination": "hooks.xlsx",
		"records":     testutil.SampleHooks(),
	})
	require.NoError(t, err)

	rec := serve(app, http.MethodPost, "/api/v1/exports", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.FileExists(t, filepath.Join(app.Config.Export.OutputDir, "hooks.xlsx"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	metrics := serve(app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "sheetexport_exports_total")
	assert.Contains(t, metrics.Body.String(), "sheetexport_rows_written_total")
	assert.Contains(t, metrics.Body.String(), "http_requests_total")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.Telemetry.EnableMetrics = false
	})

	rec := serve(app, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	app := newTestApplication(t, func(cfg *config.Config) {
		cfg.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	})

	first := serve(app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := serve(app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestApplication_StopWithoutStart(t *testing.T) {
	app := newTestApplication(t)
	assert.NoError(t, app.Stop(context.Background()))
}

func TestApplication_StopClosesLogFile(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	cfg := config.Default()
	cfg.Export.OutputDir = t.TempDir()
	cfg.Security.RateLimit.Enabled = false
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = filepath.Join(t.TempDir(), "logs", "server.log")

	logger, err := infrastructure.NewLogger(cfg.Logging)
	require.NoError(t, err)
	app, err := New(cfg, logger)
	require.NoError(t, err)

	require.NoError(t, app.Stop(context.Background()))
	logger.Info("written after shutdown")

	content, err := os.ReadFile(cfg.Logging.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Application shutdown complete")
	assert.NotContains(t, string(content), "written after shutdown")
}
