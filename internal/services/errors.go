package services

import "errors"

// Export service errors
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrTooManyRecords        = errors.New("too many records")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrEmptyBatch            = errors.New("batch is empty")
	ErrDuplicateDestination  = errors.New("duplicate destination in batch")
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
)
