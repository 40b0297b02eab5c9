package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVApplication creates in-memory grids saved as CSV.
type CSVApplication struct {
	opts Options
}

// NewCSVApplication creates a CSV backend. With CSVBOM set, saved files
// start with a UTF-8 byte order mark so Excel detects the encoding.
func NewCSVApplication(opts Options) *CSVApplication {
	if opts.SheetName == "" {
		opts.SheetName = defaultSheetName
	}
	return &CSVApplication{opts: opts}
}

func (a *CSVApplication) NewDocument() (Document, error) {
	return &csvDocument{
		opts:   a.opts,
		cells:  make(map[cellKey]any),
		bold:   make(map[cellKey]bool),
		widths: make(map[int]float64),
	}, nil
}

type cellKey struct{ row, col int }

type csvDocument struct {
	opts   Options
	closed bool
	cells  map[cellKey]any
	bold   map[cellKey]bool
	widths map[int]float64
	maxRow int
	maxCol int
}

func (d *csvDocument) ActiveSheet() (Sheet, error) {
	if d.closed {
		return nil, ErrClosed
	}
	return &csvSheet{doc: d}, nil
}

func (d *csvDocument) Save(path string) error {
	if d.closed {
		return ErrClosed
	}
	if !d.opts.AtomicWrite {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		if err := d.write(file); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sheetexport-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := d.write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// write emits rows 1..maxRow and columns 1..maxCol; unset cells are empty.
func (d *csvDocument) write(w io.Writer) error {
	if d.opts.CSVBOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	record := make([]string, d.maxCol)
	for row := 1; row <= d.maxRow; row++ {
		for col := 1; col <= d.maxCol; col++ {
			record[col-1] = FormatValue(d.cells[cellKey{row, col}])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (d *csvDocument) Close() error {
	d.closed = true
	return nil
}

type csvSheet struct {
	doc *csvDocument
}

func (s *csvSheet) Name() string { return s.doc.opts.SheetName }

func (s *csvSheet) Range(start, end string) (Range, error) {
	if s.doc.closed {
		return nil, ErrClosed
	}
	b, err := ParseBounds(start, end)
	if err != nil {
		return nil, err
	}
	return &csvRange{doc: s.doc, bounds: b}, nil
}

type csvRange struct {
	doc    *csvDocument
	bounds Bounds
}

func (r *csvRange) Address() string { return r.bounds.String() }
func (r *csvRange) Rows() int       { return r.bounds.Rows() }
func (r *csvRange) Columns() int    { return r.bounds.Columns() }

func (r *csvRange) Resize(rows, cols int) (Range, error) {
	b, err := r.bounds.Resize(rows, cols)
	if err != nil {
		return nil, err
	}
	return &csvRange{doc: r.doc, bounds: b}, nil
}

func (r *csvRange) SetValues(values [][]any) error {
	if r.doc.closed {
		return ErrClosed
	}
	if err := checkShape(values, r.bounds); err != nil {
		return err
	}
	for i, row := range values {
		for j, v := range row {
			if v == nil {
				continue
			}
			key := cellKey{r.bounds.StartRow + i, r.bounds.StartCol + j}
			r.doc.cells[key] = v
			r.doc.maxRow = max(r.doc.maxRow, key.row)
			r.doc.maxCol = max(r.doc.maxCol, key.col)
		}
	}
	return nil
}

func (r *csvRange) SetBold(bold bool) error {
	if r.doc.closed {
		return ErrClosed
	}
	r.each(func(key cellKey) { r.doc.bold[key] = bold })
	return nil
}

func (r *csvRange) AutoFitColumns() error {
	rows, err := r.Values()
	if err != nil {
		return err
	}
	for j, width := range fitColumns(rows, r.bounds.Columns()) {
		col := r.bounds.StartCol + j
		r.doc.widths[col] = max(width, r.doc.widths[col])
	}
	return nil
}

func (r *csvRange) Values() ([][]string, error) {
	if r.doc.closed {
		return nil, ErrClosed
	}
	out := make([][]string, r.bounds.Rows())
	for i := range out {
		out[i] = make([]string, r.bounds.Columns())
		for j := range out[i] {
			out[i][j] = FormatValue(r.doc.cells[cellKey{r.bounds.StartRow + i, r.bounds.StartCol + j}])
		}
	}
	return out, nil
}

func (r *csvRange) Bold() (bool, error) {
	if r.doc.closed {
		return false, ErrClosed
	}
	all := true
	r.each(func(key cellKey) { all = all && r.doc.bold[key] })
	return all, nil
}

func (r *csvRange) ColumnWidths() ([]float64, error) {
	if r.doc.closed {
		return nil, ErrClosed
	}
	widths := make([]float64, r.bounds.Columns())
	for j := range widths {
		if w, ok := r.doc.widths[r.bounds.StartCol+j]; ok {
			widths[j] = w
		} else {
			widths[j] = MinColumnWidth
		}
	}
	return widths, nil
}

func (r *csvRange) each(fn func(cellKey)) {
	for row := r.bounds.StartRow; row <= r.bounds.EndRow; row++ {
		for col := r.bounds.StartCol; col <= r.bounds.EndCol; col++ {
			fn(cellKey{row, col})
		}
	}
}
