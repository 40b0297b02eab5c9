package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sheetexport/internal/config"
	apierrors "sheetexport/internal/errors"
	"sheetexport/internal/files"
	"sheetexport/internal/middleware"
	"sheetexport/internal/services"
	"sheetexport/internal/shared/testutil"
)

type mockExportService struct {
	mock.Mock
}

func (m *mockExportService) Export(ctx context.Context, req services.ExportRequest) (*services.ExportResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*services.ExportResult)
	return result, args.Error(1)
}

func (m *mockExportService) ExportBatch(ctx context.Context, reqs []services.ExportRequest) ([]services.BatchItem, error) {
	args := m.Called(ctx, reqs)
	items, _ := args.Get(0).([]services.BatchItem)
	return items, args.Error(1)
}

func (m *mockExportService) Preview(req services.ExportRequest) ([]string, [][]string, error) {
	args := m.Called(req)
	headers, _ := args.Get(0).([]string)
	rows, _ := args.Get(1).([][]string)
	return headers, rows, args.Error(2)
}

func (m *mockExportService) ListExports() ([]files.FileInfo, error) {
	args := m.Called()
	docs, _ := args.Get(0).([]files.FileInfo)
	return docs, args.Error(1)
}

func (m *mockExportService) Profiles() []services.ProfileInfo {
	return m.Called().Get(0).([]services.ProfileInfo)
}

func newRouter(t *testing.T, svc ExportServiceInterface) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewExportHandler(svc, logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Mount("/api/v1/exports", h.Routes())
	r.Mount("/api/v1/profiles", h.ProfileRoutes())
	return r
}

func newRealService(t *testing.T) (*services.ExportService, string) {
	t.Helper()
	cfg := config.Default().Export
	cfg.OutputDir = t.TempDir()
	logger, _ := testutil.NewTestLogger(t)
	svc, err := services.NewExportService(cfg, services.DefaultRegistry(), nil, logger)
	require.NoError(t, err)
	return svc, cfg.OutputDir
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestExportHandler_CreateExport(t *testing.T) {
	svc, dir := newRealService(t)
	r := newRouter(t, svc)

	rec := do(t, r, http.MethodPost, "/api/v1/exports", map[string]any{
		"profile":     "hooks",
		"destination": "hooks.xlsx",
		"records":     testutil.SampleHooks(),
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, filepath.Join(dir, "hooks.xlsx"), body["path"])
	assert.EqualValues(t, 3, body["rows"])
	assert.EqualValues(t, 4, body["columns"])
	assert.Equal(t, "A1:D1", body["header_range"])
	assert.FileExists(t, filepath.Join(dir, "hooks.xlsx"))
}

func TestExportHandler_CreateExportRejections(t *testing.T) {
	svc, _ := newRealService(t)
	r := newRouter(t, svc)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantType   string
	}{
		{
			name:       "missing profile",
			body:       map[string]any{"destination": "x.xlsx"},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "unknown profile",
			body:       map[string]any{"profile": "nope", "destination": "x.xlsx", "records": []any{}},
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeNotFound,
		},
		{
			name:       "escaping destination",
			body:       map[string]any{"profile": "hooks", "destination": "../x.xlsx", "records": []any{}},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "malformed body",
			body:       "not an object",
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/api/v1/exports", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			body := decode(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.NotEmpty(t, body["trace_id"])
		})
	}
}

func TestExportHandler_AbsoluteDestinationOutsideOutputDir(t *testing.T) {
	svc, _ := newRealService(t)
	r := newRouter(t, svc)
	outside := filepath.Join(t.TempDir(), "victim", "x.csv")

	tests := []struct {
		name string
		path string
		body any
	}{
		{
			name: "single",
			path: "/api/v1/exports",
			body: map[string]any{"profile": "hooks", "destination": outside, "records": testutil.SampleHooks(), "Local": true},
		},
		{
			name: "batch",
			path: "/api/v1/exports/batch",
			body: map[string]any{"requests": []map[string]any{
				{"profile": "hooks", "destination": outside, "records": testutil.SampleHooks(), "Local": true},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, apierrors.TypeValidation, decode(t, rec)["type"])
			assert.NoDirExists(t, filepath.Dir(outside))
		})
	}
}

func TestExportHandler_ExportErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"contract violation", apierrors.NewContractViolation("bad profile"), http.StatusUnprocessableEntity, apierrors.TypeContractViolation},
		{"session unavailable", apierrors.NewSessionUnavailable("no engine", errors.New("down")), http.StatusServiceUnavailable, apierrors.TypeServiceDown},
		{"range write", apierrors.NewRangeWriteError("bad range", nil), http.StatusBadRequest, apierrors.TypeRangeWrite},
		{"persist", apierrors.NewPersistError("disk full", nil), http.StatusInternalServerError, apierrors.TypePersist},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apierrors.TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockExportService{}
			svc.On("Export", mock.Anything, mock.Anything).Return(nil, tt.err)
			r := newRouter(t, svc)

			rec := do(t, r, http.MethodPost, "/api/v1/exports", map[string]any{"profile": "hooks", "destination": "a.xlsx"})
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, decode(t, rec)["type"])
			svc.AssertExpectations(t)
		})
	}
}

func TestExportHandler_CreateBatch(t *testing.T) {
	svc, dir := newRealService(t)
	r := newRouter(t, svc)

	rec := do(t, r, http.MethodPost, "/api/v1/exports/batch", map[string]any{
		"requests": []map[string]any{
			{"profile": "hooks", "destination": "a.xlsx", "records": testutil.SampleHooks()},
			{"profile": "trades", "destination": "b.csv", "records": testutil.SampleTrades()},
			{"profile": "missing", "destination": "c.xlsx", "records": []any{}},
		},
	})

	require.Equal(t, http.StatusMultiStatus, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.EqualValues(t, 2, body["succeeded"])
	assert.EqualValues(t, 1, body["failed"])
	assert.FileExists(t, filepath.Join(dir, "a.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "b.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "c.xlsx"))
}

func TestExportHandler_CreateBatchRejections(t *testing.T) {
	svc, _ := newRealService(t)
	r := newRouter(t, svc)

	empty := do(t, r, http.MethodPost, "/api/v1/exports/batch", map[string]any{"requests": []any{}})
	assert.Equal(t, http.StatusBadRequest, empty.Code)

	dup := do(t, r, http.MethodPost, "/api/v1/exports/batch", map[string]any{
		"requests": []map[string]any{
			{"profile": "hooks", "destination": "same.xlsx", "records": []any{}},
			{"profile": "hooks", "destination": "./same.xlsx", "records": []any{}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, apierrors.TypeValidation, decode(t, dup)["type"])
}

func TestExportHandler_Preview(t *testing.T) {
	svc, dir := newRealService(t)
	r := newRouter(t, svc)

	rec := do(t, r, http.MethodPost, "/api/v1/exports/preview", map[string]any{
		"profile": "hooks",
		"records": testutil.SampleHooks(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Hook", "Category", "Weather", "Timeofday"}, body.Headers)
	require.Len(t, body.Rows, 3)
	assert.Equal(t, "Saw a fox crossing the road", body.Rows[0][0])

	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportHandler_Profiles(t *testing.T) {
	svc, _ := newRealService(t)
	r := newRouter(t, svc)

	list := do(t, r, http.MethodGet, "/api/v1/profiles", nil)
	require.Equal(t, http.StatusOK, list.Code)
	var listBody struct {
		Profiles []services.ProfileInfo `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listBody))
	names := make([]string, 0, len(listBody.Profiles))
	for _, p := range listBody.Profiles {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"hooks", "tickers", "trades"}, names)

	one := do(t, r, http.MethodGet, "/api/v1/profiles/trades", nil)
	require.Equal(t, http.StatusOK, one.Code)
	assert.EqualValues(t, 16, decode(t, one)["columns"])

	missing := do(t, r, http.MethodGet, "/api/v1/profiles/nope", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestExportHandler_PayloadTooLarge(t *testing.T) {
	svc := &mockExportService{}
	logger, _ := testutil.NewTestLogger(t)
	h := NewExportHandler(svc, logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Use(middleware.MaxBodySize(16))
	r.Mount("/api/v1/exports", h.Routes())

	rec := do(t, r, http.MethodPost, "/api/v1/exports", map[string]any{
		"profile":     "hooks",
		"destination": "big.xlsx",
		"records":     testutil.SampleHooks(),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apierrors.TypePayloadTooLarge, decode(t, rec)["type"])
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestExportHandler_ListExports(t *testing.T) {
	svc, _ := newRealService(t)
	r := newRouter(t, svc)

	empty := do(t, r, http.MethodGet, "/api/v1/exports", nil)
	require.Equal(t, http.StatusOK, empty.Code)
	assert.EqualValues(t, 0, decode(t, empty)["count"])
	assert.NotContains(t, decode(t, empty), "latest")

	created := do(t, r, http.MethodPost, "/api/v1/exports", map[string]any{
		"profile":     "hooks",
		"destination": "listed.csv",
		"records":     testutil.SampleHooks(),
	})
	require.Equal(t, http.StatusCreated, created.Code)

	rec := do(t, r, http.MethodGet, "/api/v1/exports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["count"])
	latest, ok := body["latest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "listed.csv", latest["path"])
}

func TestExportHandler_ListExportsError(t *testing.T) {
	svc := &mockExportService{}
	svc.On("ListExports").Return(nil, errors.New("disk gone"))
	r := newRouter(t, svc)

	rec := do(t, r, http.MethodGet, "/api/v1/exports", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	svc.AssertExpectations(t)
}
