package records

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"
)

const readBatchSize = 256

// ReadParquetFile reads every row of a parquet file into T.
func ReadParquetFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[T](f)
	defer reader.Close()

	rows := make([]T, 0, reader.NumRows())
	buf := make([]T, readBatchSize)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return rows, nil
}

// WriteParquetFile writes rows to a new parquet file at path.
func WriteParquetFile[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return f.Close()
}
