package exporter

// Column defines one output column: its header label and how a record
// renders into the cell.
type Column[R any] struct {
	Header string
	Value  func(R) any
}

// Table is a Profile defined by an ordered column list.
type Table[R any] struct {
	name    string
	columns []Column[R]
	bold    bool
	data    [][]any
	rows    int
}

// NewTable creates a table profile with bold headers.
func NewTable[R any](name string, columns ...Column[R]) *Table[R] {
	return &Table[R]{name: name, columns: columns, bold: true}
}

// WithBoldHeaders overrides header emphasis.
func (t *Table[R]) WithBoldHeaders(bold bool) *Table[R] {
	t.bold = bold
	return t
}

func (t *Table[R]) Name() string { return t.name }

func (t *Table[R]) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	return headers
}

func (t *Table[R]) ColumnCount() int  { return len(t.columns) }
func (t *Table[R]) RowCount() int     { return t.rows }
func (t *Table[R]) BoldHeaders() bool { return t.bold }
func (t *Table[R]) Data() [][]any     { return t.data }

func (t *Table[R]) Project(records []R) {
	data := make([][]any, len(records)+1)
	data[0] = make([]any, len(t.columns))
	for i, record := range records {
		row := make([]any, len(t.columns))
		for j, c := range t.columns {
			row[j] = c.Value(record)
		}
		data[i+1] = row
	}
	t.data = data
	t.rows = len(records)
}
