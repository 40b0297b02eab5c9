package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// tempPrefix marks in-progress atomic writes, which are never listed.
const tempPrefix = ".sheetexport-"

// documentExtensions are the extensions of documents the exporter writes.
var documentExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// FileInfo represents information about a discovered document
type FileInfo struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified_at"`
}

// Discovery finds exported documents under a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDocuments walks the base directory and returns every exported
// document, newest first. Path is relative to the base directory.
// A missing base directory yields an empty list.
func (d *Discovery) FindDocuments() ([]FileInfo, error) {
	var docs []FileInfo
	err := filepath.WalkDir(d.basePath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == d.basePath && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if strings.HasPrefix(name, tempPrefix) || !documentExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(d.basePath, path)
		if err != nil {
			return err
		}

		docs = append(docs, FileInfo{
			Path:    filepath.ToSlash(rel),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", d.basePath, err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].ModTime.Equal(docs[j].ModTime) {
			return docs[i].Path < docs[j].Path
		}
		return docs[i].ModTime.After(docs[j].ModTime)
	})
	return docs, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
