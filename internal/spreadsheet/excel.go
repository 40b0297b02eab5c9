package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// ExcelApplication creates xlsx workbooks backed by excelize.
type ExcelApplication struct {
	opts Options
}

// NewExcelApplication creates an xlsx backend.
func NewExcelApplication(opts Options) *ExcelApplication {
	if opts.SheetName == "" {
		opts.SheetName = defaultSheetName
	}
	return &ExcelApplication{opts: opts}
}

// NewDocument creates a workbook with a single sheet named after the options.
func (a *ExcelApplication) NewDocument() (Document, error) {
	f := excelize.NewFile()
	if a.opts.SheetName != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, a.opts.SheetName); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", a.opts.SheetName, err)
		}
	}
	return &excelDocument{
		file:   f,
		atomic: a.opts.AtomicWrite,
		widths: make(map[int]float64),
	}, nil
}

type excelDocument struct {
	file      *excelize.File
	atomic    bool
	closed    bool
	boldStyle int
	// widths holds fitted widths so later fits never shrink a column.
	widths map[int]float64
}

func (d *excelDocument) ActiveSheet() (Sheet, error) {
	if d.closed {
		return nil, ErrClosed
	}
	name := d.file.GetSheetName(d.file.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}
	return &excelSheet{doc: d, name: name}, nil
}

func (d *excelDocument) Save(path string) error {
	if d.closed {
		return ErrClosed
	}
	if !d.atomic {
		return d.file.SaveAs(path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sheetexport-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := d.file.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write workbook: %w", err)
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
		return fmt.Errorf("failed to move workbook into place: %w", err)
	}
	return nil
}

func (d *excelDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close()
}

func (d *excelDocument) boldStyleID() (int, error) {
	if d.boldStyle != 0 {
		return d.boldStyle, nil
	}
	id, err := d.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	d.boldStyle = id
	return id, nil
}

type excelSheet struct {
	doc  *excelDocument
	name string
}

func (s *excelSheet) Name() string { return s.name }

func (s *excelSheet) Range(start, end string) (Range, error) {
	if s.doc.closed {
		return nil, ErrClosed
	}
	b, err := ParseBounds(start, end)
	if err != nil {
		return nil, err
	}
	return &excelRange{sheet: s, bounds: b}, nil
}

type excelRange struct {
	sheet  *excelSheet
	bounds Bounds
}

func (r *excelRange) file() *excelize.File { return r.sheet.doc.file }

func (r *excelRange) Address() string { return r.bounds.String() }
func (r *excelRange) Rows() int       { return r.bounds.Rows() }
func (r *excelRange) Columns() int    { return r.bounds.Columns() }

func (r *excelRange) Resize(rows, cols int) (Range, error) {
	b, err := r.bounds.Resize(rows, cols)
	if err != nil {
		return nil, err
	}
	return &excelRange{sheet: r.sheet, bounds: b}, nil
}

func (r *excelRange) SetValues(values [][]any) error {
	if r.sheet.doc.closed {
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
			cell, err := r.bounds.Cell(i, j)
			if err != nil {
				return err
			}
			if err := r.file().SetCellValue(r.sheet.name, cell, v); err != nil {
				return fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
	}
	return nil
}

func (r *excelRange) SetBold(bold bool) error {
	if r.sheet.doc.closed {
		return ErrClosed
	}
	style := 0
	if bold {
		id, err := r.sheet.doc.boldStyleID()
		if err != nil {
			return fmt.Errorf("failed to create bold style: %w", err)
		}
		style = id
	}
	start, end, err := r.bounds.Corners()
	if err != nil {
		return err
	}
	return r.file().SetCellStyle(r.sheet.name, start, end, style)
}

func (r *excelRange) AutoFitColumns() error {
	rows, err := r.Values()
	if err != nil {
		return err
	}
	for j, width := range fitColumns(rows, r.bounds.Columns()) {
		col := r.bounds.StartCol + j
		width = max(width, r.sheet.doc.widths[col])
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := r.file().SetColWidth(r.sheet.name, name, name, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
		r.sheet.doc.widths[col] = width
	}
	return nil
}

func (r *excelRange) Values() ([][]string, error) {
	if r.sheet.doc.closed {
		return nil, ErrClosed
	}
	out := make([][]string, r.bounds.Rows())
	for i := range out {
		out[i] = make([]string, r.bounds.Columns())
		for j := range out[i] {
			cell, err := r.bounds.Cell(i, j)
			if err != nil {
				return nil, err
			}
			if out[i][j], err = r.file().GetCellValue(r.sheet.name, cell); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (r *excelRange) Bold() (bool, error) {
	if r.sheet.doc.closed {
		return false, ErrClosed
	}
	for i := 0; i < r.bounds.Rows(); i++ {
		for j := 0; j < r.bounds.Columns(); j++ {
			cell, err := r.bounds.Cell(i, j)
			if err != nil {
				return false, err
			}
			idx, err := r.file().GetCellStyle(r.sheet.name, cell)
			if err != nil {
				return false, err
			}
			style, err := r.file().GetStyle(idx)
			if err != nil {
				return false, err
			}
			if style.Font == nil || !style.Font.Bold {
				return false, nil
			}
		}
	}
	return true, nil
}

func (r *excelRange) ColumnWidths() ([]float64, error) {
	if r.sheet.doc.closed {
		return nil, ErrClosed
	}
	widths := make([]float64, r.bounds.Columns())
	for j := range widths {
		name, err := excelize.ColumnNumberToName(r.bounds.StartCol + j)
		if err != nil {
			return nil, err
		}
		if widths[j], err = r.file().GetColWidth(r.sheet.name, name); err != nil {
			return nil, err
		}
	}
	return widths, nil
}
