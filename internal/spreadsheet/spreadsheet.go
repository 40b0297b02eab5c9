package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrClosed is returned by any operation on a closed document.
var ErrClosed = errors.New("spreadsheet: document is closed")

// fileMode is the permission set on saved documents.
const fileMode = 0644

// Application creates blank documents.
type Application interface {
	NewDocument() (Document, error)
}

// Document is a single workbook with one active sheet.
type Document interface {
	ActiveSheet() (Sheet, error)
	// Save writes the document to path, replacing any existing file.
	Save(path string) error
	// Close releases the document. Closing twice is a no-op.
	Close() error
}

// Sheet hands out ranges by A1-style corner addresses.
type Sheet interface {
	Name() string
	Range(start, end string) (Range, error)
}

// Range is a rectangular block of cells.
type Range interface {
	Address() string
	Rows() int
	Columns() int
	// Resize keeps the top-left corner and changes the dimensions.
	Resize(rows, cols int) (Range, error)
	// SetValues assigns a matrix matching the range shape exactly. Nil cells
	// are left untouched.
	SetValues(values [][]any) error
	SetBold(bold bool) error
	AutoFitColumns() error

	// Values reads back the rendered text of every cell.
	Values() ([][]string, error)
	// Bold reports whether every cell in the range is bold.
	Bold() (bool, error)
	// ColumnWidths reads back the width of each column in the range.
	ColumnWidths() ([]float64, error)
}

// Options configure the backends.
type Options struct {
	SheetName   string
	AtomicWrite bool
	CSVBOM      bool
}

// ForPath returns the backend that can save to path, chosen by extension.
func ForPath(path string, opts Options) (Application, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return NewExcelApplication(opts), nil
	case ".csv":
		return NewCSVApplication(opts), nil
	default:
		return nil, fmt.Errorf("unsupported document extension %q", ext)
	}
}

// Bounds is a normalized rectangle of 1-based column and row coordinates.
type Bounds struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// ParseBounds parses two corner addresses. Corners may be given in any order.
func ParseBounds(start, end string) (Bounds, error) {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return Bounds{}, fmt.Errorf("invalid range start %q: %w", start, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return Bounds{}, fmt.Errorf("invalid range end %q: %w", end, err)
	}
	return Bounds{
		StartCol: min(c1, c2), StartRow: min(r1, r2),
		EndCol: max(c1, c2), EndRow: max(r1, r2),
	}, nil
}

func (b Bounds) Rows() int    { return b.EndRow - b.StartRow + 1 }
func (b Bounds) Columns() int { return b.EndCol - b.StartCol + 1 }

// Resize anchors at the top-left corner.
func (b Bounds) Resize(rows, cols int) (Bounds, error) {
	if rows < 1 || cols < 1 {
		return Bounds{}, fmt.Errorf("invalid range size %dx%d", rows, cols)
	}
	if b.StartRow+rows-1 > excelize.TotalRows || b.StartCol+cols-1 > excelize.MaxColumns {
		return Bounds{}, fmt.Errorf("range size %dx%d exceeds sheet limits", rows, cols)
	}
	return Bounds{
		StartCol: b.StartCol, StartRow: b.StartRow,
		EndCol: b.StartCol + cols - 1, EndRow: b.StartRow + rows - 1,
	}, nil
}

// Cell returns the A1 name of the cell at the zero-based offset.
func (b Bounds) Cell(rowOffset, colOffset int) (string, error) {
	return excelize.CoordinatesToCellName(b.StartCol+colOffset, b.StartRow+rowOffset)
}

// Corners returns the top-left and bottom-right cell names.
func (b Bounds) Corners() (string, string, error) {
	start, err := excelize.CoordinatesToCellName(b.StartCol, b.StartRow)
	if err != nil {
		return "", "", err
	}
	end, err := excelize.CoordinatesToCellName(b.EndCol, b.EndRow)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

func (b Bounds) String() string {
	start, end, err := b.Corners()
	if err != nil {
		return "?"
	}
	return start + ":" + end
}

func checkShape(values [][]any, b Bounds) error {
	if len(values) != b.Rows() {
		return fmt.Errorf("value matrix has %d rows, range %s has %d", len(values), b, b.Rows())
	}
	for i, row := range values {
		if len(row) != b.Columns() {
			return fmt.Errorf("value row %d has %d cells, range %s has %d columns", i, len(row), b, b.Columns())
		}
	}
	return nil
}

// HeaderRange returns the single-row range A1..<col>1 spanning cols columns.
func HeaderRange(cols int) (string, string, error) {
	b, err := Bounds{StartCol: 1, StartRow: 1, EndCol: 1, EndRow: 1}.Resize(1, cols)
	if err != nil {
		return "", "", err
	}
	return b.Corners()
}
