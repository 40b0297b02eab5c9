package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"sheetexport/internal/config"
	apperrors "sheetexport/internal/errors"
	"sheetexport/internal/exporter"
	"sheetexport/internal/files"
	"sheetexport/internal/spreadsheet"
)

// ExportRequest asks for one profile export. Records are inline JSON; Source
// names an input file instead (.json or .parquet). When HeaderStart and
// HeaderEnd are omitted the header row is A1..<last column>1. Destinations
// must stay inside the output directory unless Local is set; Source and
// Local are never read from JSON.
type ExportRequest struct {
	Profile     string          `json:"profile" validate:"required"`
	Destination string          `json:"destination" validate:"required"`
	HeaderStart string          `json:"header_start,omitempty" validate:"required_with=HeaderEnd"`
	HeaderEnd   string          `json:"header_end,omitempty" validate:"required_with=HeaderStart"`
	BoldHeaders *bool           `json:"bold_headers,omitempty"`
	Records     json.RawMessage `json:"records,omitempty"`
	Source      string          `json:"-"`
	Local       bool            `json:"-"`
}

// ExportResult describes a completed export.
type ExportResult struct {
	ID          string        `json:"id"`
	Profile     string        `json:"profile"`
	Path        string        `json:"path"`
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	HeaderRange string        `json:"header_range"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"duration_ms"`
	CompletedAt time.Time     `json:"completed_at"`
}

// BatchItem is the outcome of one request in a batch.
type BatchItem struct {
	Destination string        `json:"destination"`
	Result      *ExportResult `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
	ErrorCode   string        `json:"error_code,omitempty"`
}

// ExportService runs profile exports against the configured output directory.
type ExportService struct {
	registry   *Registry
	paths      *config.Paths
	discovery  *files.Discovery
	opts       spreadsheet.Options
	maxRecords int
	maxBatch   int
	sem        *semaphore.Weighted
	locks      *keyedMutex
	validate   *validator.Validate
	telemetry  *exporter.Telemetry
	logger     *slog.Logger
}

// NewExportService creates an export service. Telemetry may be nil.
func NewExportService(cfg config.ExportConfig, registry *Registry, telemetry *exporter.Telemetry, logger *slog.Logger) (*ExportService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths, err := config.NewPaths(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	logger.Info("ExportService initialized",
		slog.String("output_dir", paths.OutputDir),
		slog.Int("max_concurrent", maxConcurrent),
		slog.Int("profiles", len(registry.Profiles())))

	return &ExportService{
		registry:  registry,
		paths:     paths,
		discovery: files.NewDiscovery(paths.OutputDir),
		opts: spreadsheet.Options{
			SheetName:   cfg.SheetName,
			AtomicWrite: cfg.AtomicWrite,
			CSVBOM:      cfg.CSVBOM,
		},
		maxRecords: cfg.MaxRecords,
		maxBatch:   maxConcurrent * 8,
		sem:        semaphore.NewWeighted(int64(maxConcurrent)),
		locks:      newKeyedMutex(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		telemetry:  telemetry,
		logger:     logger,
	}, nil
}

// Profiles lists the registered profiles.
func (s *ExportService) Profiles() []ProfileInfo {
	return s.registry.Profiles()
}

// ListExports returns the documents in the output directory, newest first.
func (s *ExportService) ListExports() ([]files.FileInfo, error) {
	return s.discovery.FindDocuments()
}

// Export validates req, writes the document and returns what was written.
// Exports to the same destination run one at a time.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	id := uuid.New().String()
	logger := s.logger.With(slog.String("export_id", id), slog.String("profile", req.Profile))

	dest, prepared, err := s.prepare(req)
	if err != nil {
		logger.WarnContext(ctx, "Export request rejected", slog.String("error", err.Error()))
		return nil, err
	}

	headerStart, headerEnd := req.HeaderStart, req.HeaderEnd
	if headerStart == "" {
		if headerStart, headerEnd, err = spreadsheet.HeaderRange(prepared.layout.ColumnCount()); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	app, err := spreadsheet.ForPath(dest, s.opts)
	if err != nil {
		return nil, apperrors.NewExportError(apperrors.ErrTypeValidation, "unsupported destination", errors.Join(ErrUnsupportedFileFormat, err))
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.NewSessionUnavailable("no export slot available", err)
	}
	defer s.sem.Release(1)

	unlock := s.locks.Lock(dest)
	defer unlock()

	if err := s.paths.EnsureParent(dest); err != nil {
		return nil, apperrors.NewPersistError("failed to prepare destination", err).WithContext("destination", dest)
	}

	start := time.Now()
	engine := exporter.NewEngine(app, logger, s.telemetry)
	if err := prepared.run(ctx, engine, dest, headerStart, headerEnd); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return &ExportResult{
		ID:          id,
		Profile:     req.Profile,
		Path:        dest,
		Rows:        prepared.layout.RowCount(),
		Columns:     prepared.layout.ColumnCount(),
		HeaderRange: headerStart + ":" + headerEnd,
		Duration:    elapsed,
		DurationMS:  elapsed.Milliseconds(),
		CompletedAt: time.Now(),
	}, nil
}

// Preview projects the request's records without writing a document. It
// returns the headers and the data rows rendered as text.
func (s *ExportService) Preview(req ExportRequest) ([]string, [][]string, error) {
	if req.Destination == "" {
		req.Destination = "preview"
	}
	_, prepared, err := s.prepare(req)
	if err != nil {
		return nil, nil, err
	}

	if err := prepared.project(); err != nil {
		return nil, nil, err
	}
	data := prepared.layout.Data()
	rows := make([][]string, 0, prepared.layout.RowCount())
	for _, row := range data[1 : prepared.layout.RowCount()+1] {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = spreadsheet.FormatValue(v)
		}
		rows = append(rows, cells)
	}
	return prepared.layout.Headers(), rows, nil
}

// ExportBatch runs every request concurrently. Destinations must be distinct.
// A failed item does not stop the others; its error is reported in the item.
func (s *ExportService) ExportBatch(ctx context.Context, reqs []ExportRequest) ([]BatchItem, error) {
	if len(reqs) == 0 {
		return nil, apperrors.NewExportError(apperrors.ErrTypeValidation, "batch has no requests", ErrEmptyBatch)
	}
	if len(reqs) > s.maxBatch {
		return nil, apperrors.NewValidationError(fmt.Sprintf("batch has %d requests, limit is %d", len(reqs), s.maxBatch))
	}

	seen := make(map[string]int, len(reqs))
	for i, req := range reqs {
		dest, err := s.resolve(req)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("request %d: %v", i, err))
		}
		if j, dup := seen[dest]; dup {
			return nil, apperrors.NewExportError(apperrors.ErrTypeValidation,
				fmt.Sprintf("requests %d and %d both write %s", j, i, req.Destination), ErrDuplicateDestination)
		}
		seen[dest] = i
	}

	items := make([]BatchItem, len(reqs))
	var g errgroup.Group
	for i, req := range reqs {
		g.Go(func() error {
			item := BatchItem{Destination: req.Destination}
			result, err := s.Export(ctx, req)
			if err != nil {
				item.Error = err.Error()
				item.ErrorCode = string(apperrors.TypeOf(err))
			}
			item.Result = result
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, item := range items {
		if item.Error != "" {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "Batch export finished",
		slog.Int("requests", len(reqs)),
		slog.Int("failed", failed))
	return items, nil
}

func (s *ExportService) prepare(req ExportRequest) (string, *preparedExport, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", nil, apperrors.NewExportError(apperrors.ErrTypeValidation, "invalid export request", err)
	}

	binding, ok := s.registry.Lookup(req.Profile)
	if !ok {
		return "", nil, apperrors.NewExportError(apperrors.ErrTypeNotFound,
			fmt.Sprintf("profile %q not found", req.Profile), ErrProfileNotFound)
	}

	dest, err := s.resolve(req)
	if err != nil {
		return "", nil, apperrors.NewExportError(apperrors.ErrTypeValidation, "invalid destination", err)
	}

	prepared, err := binding.prepare(Input{Records: req.Records, Source: req.Source}, s.maxRecords, req.BoldHeaders)
	if err != nil {
		return "", nil, apperrors.NewExportError(apperrors.ErrTypeValidation, "invalid records", err)
	}
	return dest, prepared, nil
}

func (s *ExportService) resolve(req ExportRequest) (string, error) {
	if req.Local {
		return s.paths.ResolveLocal(req.Destination)
	}
	return s.paths.ResolveDestination(req.Destination)
}
