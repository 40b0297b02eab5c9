package exporter

import (
	"fmt"

	apperrors "sheetexport/internal/errors"
)

// validateLayout checks the matrix invariant after projection:
// ColumnCount >= 1, one header per column, at least RowCount+1 rows and
// exactly ColumnCount cells in every row.
func validateLayout(l Layout) error {
	cols := l.ColumnCount()
	if cols < 1 {
		return apperrors.NewContractViolation(fmt.Sprintf("column count must be at least 1, got %d", cols))
	}
	if headers := l.Headers(); len(headers) != cols {
		return apperrors.NewContractViolation(fmt.Sprintf("profile has %d headers for %d columns", len(headers), cols)).
			WithContext("headers", len(headers)).
			WithContext("columns", cols)
	}

	rows := l.RowCount()
	if rows < 0 {
		return apperrors.NewContractViolation(fmt.Sprintf("row count must not be negative, got %d", rows))
	}
	data := l.Data()
	if len(data) < rows+1 {
		return apperrors.NewContractViolation(fmt.Sprintf("data matrix has %d rows, need %d", len(data), rows+1)).
			WithContext("rows", rows)
	}
	for i, row := range data {
		if len(row) != cols {
			return apperrors.NewContractViolation(fmt.Sprintf("data row %d has %d cells for %d columns", i, len(row), cols)).
				WithContext("row", i)
		}
	}
	return nil
}
