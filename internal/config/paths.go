package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths resolves export destinations against the configured output directory.
type Paths struct {
	OutputDir string
}

// NewPaths returns Paths rooted at the absolute form of outputDir.
func NewPaths(outputDir string) (*Paths, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %w", outputDir, err)
	}
	return &Paths{OutputDir: abs}, nil
}

// ResolveDestination maps a caller-supplied destination to a file path
// inside OutputDir. Relative destinations are joined to OutputDir; absolute
// ones must already lie within it.
func (p *Paths) ResolveDestination(destination string) (string, error) {
	if destination == "" {
		return "", fmt.Errorf("destination is empty")
	}

	full := filepath.Clean(destination)
	if !filepath.IsAbs(full) {
		full = filepath.Join(p.OutputDir, destination)
	}
	if !p.contains(full) {
		return "", fmt.Errorf("destination %q escapes output directory", destination)
	}
	return full, nil
}

// ResolveLocal is ResolveDestination for trusted local callers: absolute
// destinations are used as-is, wherever they point.
func (p *Paths) ResolveLocal(destination string) (string, error) {
	if filepath.IsAbs(destination) {
		return filepath.Clean(destination), nil
	}
	return p.ResolveDestination(destination)
}

func (p *Paths) contains(path string) bool {
	rel, err := filepath.Rel(p.OutputDir, path)
	if err != nil || rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EnsureParent creates the directory that will hold path.
func (p *Paths) EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
