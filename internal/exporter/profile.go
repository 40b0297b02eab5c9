package exporter

import "fmt"

// Layout is the record-independent view of a profile the engine works with.
type Layout interface {
	// Headers returns exactly ColumnCount labels, stable across calls.
	Headers() []string
	// Data returns the projected matrix. Row 0 is reserved and empty; nil before Project.
	Data() [][]any
	ColumnCount() int
	// RowCount is the number of records in the most recent Project.
	RowCount() int
	BoldHeaders() bool
}

// Profile projects records of type R into a Layout.
type Profile[R any] interface {
	Layout
	// Project replaces the matrix with one row per record. Calling it twice
	// with the same input yields the same matrix.
	Project(records []R)
}

// Named is implemented by profiles that carry a name for logs and metrics.
type Named interface {
	Name() string
}

func profileName(l Layout) string {
	if n, ok := l.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", l)
}
