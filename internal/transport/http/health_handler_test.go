package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetexport/internal/services"
	"sheetexport/internal/shared/testutil"
)

func newHealthRouter(t *testing.T, outputDir string, registry *services.Registry) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewHealthHandler(services.NewHealthService("v1.0.0-test", outputDir, registry, logger), logger)
	r := chi.NewRouter()
	r.Mount("/api/health", h.Routes())
	return r
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	r := newHealthRouter(t, t.TempDir(), services.DefaultRegistry())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "v1.0.0-test", status.Version)
}

func TestHealthHandler_ReadinessCheck(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	tests := []struct {
		name       string
		outputDir  string
		registry   *services.Registry
		wantStatus int
		want       string
	}{
		{"ready", t.TempDir(), services.DefaultRegistry(), http.StatusOK, "ready"},
		{"output dir is a file", blocked, services.DefaultRegistry(), http.StatusServiceUnavailable, "not_ready"},
		{"no profiles", t.TempDir(), services.NewRegistry(), http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newHealthRouter(t, tt.outputDir, tt.registry)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var status services.HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
			assert.Equal(t, tt.want, status.Status)
		})
	}
}
