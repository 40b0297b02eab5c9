package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sheetexport/internal/errors"
	"sheetexport/internal/files"
	"sheetexport/internal/services"
)

// ExportHandler serves the export and profile endpoints.
type ExportHandler struct {
	service      ExportServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ExportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// BatchRequest is the body of POST /exports/batch.
type BatchRequest struct {
	Requests []services.ExportRequest `json:"requests"`
}

// Bind implements the render.Binder interface
func (b *BatchRequest) Bind(r *http.Request) error {
	if len(b.Requests) == 0 {
		return errors.New("requests must not be empty")
	}
	return nil
}

// BatchResponse is returned by POST /exports/batch.
type BatchResponse struct {
	Items     []services.BatchItem `json:"items"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

// PreviewResponse is returned by POST /exports/preview.
type PreviewResponse struct {
	Profile string     `json:"profile"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// exportRequest adapts services.ExportRequest to render.Binder. Field
// validation happens in the service.
type exportRequest struct {
	services.ExportRequest
}

func (e *exportRequest) Bind(r *http.Request) error { return nil }

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListExports)
	r.Post("/", h.CreateExport)
	r.Post("/batch", h.CreateBatch)
	r.Post("/preview", h.Preview)
	return r
}

// ProfileRoutes returns the profile discovery routes
func (h *ExportHandler) ProfileRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListProfiles)
	r.Get("/{name}", h.GetProfile)
	return r
}

// CreateExport handles POST /api/v1/exports
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &exportRequest{}
	if err := render.Bind(r, data); err != nil {
		h.errorHandler.HandleError(w, r, decodeError(err))
		return
	}

	result, err := h.service.Export(ctx, data.ExportRequest)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "Export created",
		slog.String("export_id", result.ID),
		slog.String("path", result.Path),
		slog.Int("rows", result.Rows))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// CreateBatch handles POST /api/v1/exports/batch
func (h *ExportHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	data := &BatchRequest{}
	if err := render.Bind(r, data); err != nil {
		h.errorHandler.HandleError(w, r, decodeError(err))
		return
	}

	items, err := h.service.ExportBatch(r.Context(), data.Requests)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := BatchResponse{Items: items}
	for _, item := range items {
		if item.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// Preview handles POST /api/v1/exports/preview
func (h *ExportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	data := &exportRequest{}
	if err := render.Bind(r, data); err != nil {
		h.errorHandler.HandleError(w, r, decodeError(err))
		return
	}

	headers, rows, err := h.service.Preview(data.ExportRequest)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, PreviewResponse{
		Profile: data.Profile,
		Headers: headers,
		Rows:    rows,
	})
}

// ListExports handles GET /api/v1/exports
func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListExports()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	}
	if latest, ok := files.GetLatestFile(docs); ok {
		resp["latest"] = latest
	}
	render.JSON(w, r, resp)
}

// ListProfiles handles GET /api/v1/profiles
func (h *ExportHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"profiles": h.service.Profiles(),
	})
}

// GetProfile handles GET /api/v1/profiles/{name}
func (h *ExportHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, p := range h.service.Profiles() {
		if p.Name == name {
			render.JSON(w, r, p)
			return
		}
	}
	h.errorHandler.HandleError(w, r, apierrors.NewNotFoundError("profile "+name))
}

// decodeError maps body decoding failures to API errors.
func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apierrors.NewWithDetails(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			"Request body exceeds maximum allowed size", map[string]int64{"max_size": maxErr.Limit})
	}
	return apierrors.InvalidRequestWithError(err)
}
