package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       Bounds
		wantErr    bool
	}{
		{name: "single cell", start: "A1", end: "A1", want: Bounds{1, 1, 1, 1}},
		{name: "header row", start: "A1", end: "D1", want: Bounds{1, 1, 4, 1}},
		{name: "reversed corners", start: "C5", end: "B2", want: Bounds{2, 2, 3, 5}},
		{name: "lowercase", start: "b2", end: "c3", want: Bounds{2, 2, 3, 3}},
		{name: "bad start", start: "1A", end: "B2", wantErr: true},
		{name: "bad end", start: "A1", end: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBounds(tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBounds_Resize(t *testing.T) {
	b, err := ParseBounds("B2", "B2")
	require.NoError(t, err)

	resized, err := b.Resize(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, resized.Rows())
	assert.Equal(t, 3, resized.Columns())
	assert.Equal(t, "B2:D5", resized.String())

	_, err = b.Resize(0, 3)
	assert.Error(t, err)
	_, err = b.Resize(1, 0)
	assert.Error(t, err)
	_, err = b.Resize(1, 20000)
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    any
		wantErr bool
	}{
		{path: "out/hooks.xlsx", want: &ExcelApplication{}},
		{path: "OUT.XLSX", want: &ExcelApplication{}},
		{path: "hooks.csv", want: &CSVApplication{}},
		{path: "hooks.pdf", wantErr: true},
		{path: "hooks", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			app, err := ForPath(tt.path, Options{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, app)
		})
	}
}

func TestCheckShape(t *testing.T) {
	b, _ := ParseBounds("A1", "B2")

	assert.NoError(t, checkShape([][]any{{1, 2}, {3, nil}}, b))
	assert.Error(t, checkShape([][]any{{1, 2}}, b))
	assert.Error(t, checkShape([][]any{{1, 2}, {3}}, b))
}

func TestHeaderRange(t *testing.T) {
	start, end, err := HeaderRange(4)
	require.NoError(t, err)
	assert.Equal(t, "A1", start)
	assert.Equal(t, "D1", end)

	_, end, err = HeaderRange(28)
	require.NoError(t, err)
	assert.Equal(t, "AB1", end)

	_, _, err = HeaderRange(0)
	assert.Error(t, err)
}
