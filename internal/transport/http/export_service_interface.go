package http

import (
	"context"

	"sheetexport/internal/files"
	"sheetexport/internal/services"
)

// ExportServiceInterface defines the export operations the handlers need
type ExportServiceInterface interface {
	Export(ctx context.Context, req services.ExportRequest) (*services.ExportResult, error)
	ExportBatch(ctx context.Context, reqs []services.ExportRequest) ([]services.BatchItem, error)
	Preview(req services.ExportRequest) ([]string, [][]string, error)
	Profiles() []services.ProfileInfo
	ListExports() ([]files.FileInfo, error)
}
