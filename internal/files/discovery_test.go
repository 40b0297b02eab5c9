package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestFindDocuments(t *testing.T) {
	base := t.TempDir()
	now := time.Now().Truncate(time.Second)

	touch(t, filepath.Join(base, "old.xlsx"), now.Add(-2*time.Hour))
	touch(t, filepath.Join(base, "reports", "new.CSV"), now)
	touch(t, filepath.Join(base, "macro.xlsm"), now.Add(-time.Hour))
	touch(t, filepath.Join(base, "notes.txt"), now)
	touch(t, filepath.Join(base, ".sheetexport-123.xlsx"), now)

	docs, err := NewDiscovery(base).FindDocuments()
	require.NoError(t, err)

	paths := make([]string, len(docs))
	for i, d := range docs {
		paths[i] = d.Path
	}
	assert.Equal(t, []string{"reports/new.CSV", "macro.xlsm", "old.xlsx"}, paths)
	assert.Equal(t, int64(4), docs[0].Size)
	assert.Equal(t, "new.CSV", docs[0].Name)
}

func TestFindDocuments_MissingDir(t *testing.T) {
	docs, err := NewDiscovery(filepath.Join(t.TempDir(), "absent")).FindDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		files  []FileInfo
		want   string
		wantOK bool
	}{
		{"empty", nil, "", false},
		{"single", []FileInfo{{Name: "a", ModTime: now}}, "a", true},
		{"picks newest", []FileInfo{
			{Name: "a", ModTime: now.Add(-time.Hour)},
			{Name: "b", ModTime: now},
			{Name: "c", ModTime: now.Add(-2 * time.Hour)},
		}, "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetLatestFile(tt.files)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}
