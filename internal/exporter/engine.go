package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "sheetexport/internal/errors"
	"sheetexport/internal/spreadsheet"
)

// Phase names, in execution order.
const (
	PhaseActivate       = "activate"
	PhaseProject        = "project"
	PhasePopulateData   = "populate_data"
	PhasePopulateHeader = "populate_header"
	PhasePersist        = "persist"
)

// dataAnchor is the top-left cell of the data range.
const dataAnchor = "A1"

// Engine writes profiles into documents created by a spreadsheet.Application.
// An Engine holds no per-export state; each call owns its document.
type Engine struct {
	app       spreadsheet.Application
	logger    *slog.Logger
	telemetry *Telemetry
}

// NewEngine creates an engine. A nil logger uses slog.Default and nil
// telemetry disables tracing and metrics.
func NewEngine(app spreadsheet.Application, logger *slog.Logger, telemetry *Telemetry) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if telemetry == nil {
		telemetry = NoopTelemetry()
	}
	return &Engine{app: app, logger: logger, telemetry: telemetry}
}

// Export projects records through profile and writes them to a new document
// saved at destination. Headers go to the headerStart..headerEnd range, which
// must span exactly one row of ColumnCount cells.
//
// The returned error is nil or an *errors.ExportError tagged with the phase
// failure kind. ctx carries trace and logging context only.
func Export[R any](ctx context.Context, e *Engine, profile Profile[R], records []R, destination, headerStart, headerEnd string) error {
	return e.run(ctx, job{
		layout:      profile,
		project:     func() { profile.Project(records) },
		destination: destination,
		headerStart: headerStart,
		headerEnd:   headerEnd,
	})
}

// Project runs profile.Project and checks the projected matrix without
// touching a document. The error is nil or a ContractViolation.
func Project[R any](profile Profile[R], records []R) error {
	return project(profile, func() { profile.Project(records) })
}

func project(l Layout, fn func()) error {
	if err := projectSafely(fn); err != nil {
		return err
	}
	return validateLayout(l)
}

type job struct {
	layout      Layout
	project     func()
	destination string
	headerStart string
	headerEnd   string
}

func (e *Engine) run(ctx context.Context, j job) (err error) {
	name := profileName(j.layout)
	logger := e.logger.With(
		slog.String("profile", name),
		slog.String("destination", j.destination),
	)

	ctx, span := e.telemetry.tracer.Start(ctx, spanExportRun, trace.WithAttributes(
		attribute.String("export.profile", name),
		attribute.String("export.destination", j.destination),
	))
	start := time.Now()
	defer func() {
		e.telemetry.record(ctx, name, j.layout.RowCount(), time.Since(start), err)
		endSpan(span, err)
		if err != nil {
			logger.ErrorContext(ctx, "Export failed",
				slog.String("error", err.Error()),
				slog.String("kind", string(apperrors.TypeOf(err))))
			return
		}
		logger.InfoContext(ctx, "Export completed",
			slog.Int("rows", j.layout.RowCount()),
			slog.Int("columns", j.layout.ColumnCount()),
			slog.Duration("duration", time.Since(start)))
	}()

	var doc spreadsheet.Document
	var sheet spreadsheet.Sheet
	if err := e.phase(ctx, logger, PhaseActivate, func() error {
		d, err := e.app.NewDocument()
		if err != nil {
			return apperrors.NewSessionUnavailable("failed to create document", err)
		}
		s, err := d.ActiveSheet()
		if err != nil {
			_ = d.Close()
			return apperrors.NewSessionUnavailable("no active sheet", err)
		}
		doc, sheet = d, s
		return nil
	}); err != nil {
		return err
	}

	closed := false
	defer func() {
		if closed {
			return
		}
		if cerr := doc.Close(); cerr != nil {
			logger.WarnContext(ctx, "Failed to close document", slog.String("error", cerr.Error()))
		}
	}()

	if err := e.phase(ctx, logger, PhaseProject, func() error {
		return project(j.layout, j.project)
	}); err != nil {
		return err
	}

	rows, cols := j.layout.RowCount(), j.layout.ColumnCount()
	if err := e.phase(ctx, logger, PhasePopulateData, func() error {
		return populateData(sheet, j.layout.Data()[:rows+1], rows+1, cols)
	}); err != nil {
		return err
	}

	if err := e.phase(ctx, logger, PhasePopulateHeader, func() error {
		return populateHeader(sheet, j.headerStart, j.headerEnd, j.layout.Headers(), j.layout.BoldHeaders())
	}); err != nil {
		return err
	}

	return e.phase(ctx, logger, PhasePersist, func() error {
		if err := doc.Save(j.destination); err != nil {
			return apperrors.NewPersistError("failed to save document", err).
				WithContext("destination", j.destination)
		}
		closed = true
		if err := doc.Close(); err != nil {
			return apperrors.NewPersistError("failed to close document", err)
		}
		return nil
	})
}

// phase runs fn inside a child span and logs its outcome.
func (e *Engine) phase(ctx context.Context, logger *slog.Logger, name string, fn func() error) error {
	_, span := e.telemetry.tracer.Start(ctx, "export."+name)
	err := fn()
	endSpan(span, err)
	if err == nil {
		logger.DebugContext(ctx, "Export phase completed", slog.String("phase", name))
	}
	return err
}

func projectSafely(project func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewContractViolation(fmt.Sprintf("projection panicked: %v", r))
		}
	}()
	project()
	return nil
}

func populateData(sheet spreadsheet.Sheet, data [][]any, rows, cols int) error {
	anchor, err := sheet.Range(dataAnchor, dataAnchor)
	if err != nil {
		return apperrors.NewRangeWriteError("failed to address data range", err)
	}
	rng, err := anchor.Resize(rows, cols)
	if err != nil {
		return apperrors.NewRangeWriteError("failed to size data range", err)
	}
	if err := rng.SetValues(data); err != nil {
		return apperrors.NewRangeWriteError("failed to write data range", err).
			WithContext("range", rng.Address())
	}
	if err := rng.AutoFitColumns(); err != nil {
		return apperrors.NewRangeWriteError("failed to fit data columns", err)
	}
	return nil
}

func populateHeader(sheet spreadsheet.Sheet, start, end string, headers []string, bold bool) error {
	rng, err := sheet.Range(start, end)
	if err != nil {
		return apperrors.NewRangeWriteError("failed to address header range", err).
			WithContext("header_start", start).
			WithContext("header_end", end)
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := rng.SetValues([][]any{row}); err != nil {
		return apperrors.NewRangeWriteError("failed to write header range", err).
			WithContext("range", rng.Address())
	}
	if bold {
		if err := rng.SetBold(true); err != nil {
			return apperrors.NewRangeWriteError("failed to embolden header range", err)
		}
	}
	if err := rng.AutoFitColumns(); err != nil {
		return apperrors.NewRangeWriteError("failed to fit header columns", err)
	}
	return nil
}
