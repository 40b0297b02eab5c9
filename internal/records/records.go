package records

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Format identifies an input file encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported input extension %q", ext)
	}
}

// DecodeJSON decodes a JSON array of records. Unknown fields are rejected.
func DecodeJSON[T any](r io.Reader) ([]T, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var items []T
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ReadJSONFile decodes the JSON array stored at path.
func ReadJSONFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSON[T](f)
}

// Validate checks every record against its validate tags.
func Validate[T any](items []T) error {
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
