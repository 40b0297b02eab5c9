package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetexport/internal/shared/testutil"
)

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("1.2.3", t.TempDir(), DefaultRegistry(), logger)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Contains(t, status.Runtime, "go_version")
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	t.Run("ready", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports")
		hs := NewHealthService("dev", dir, DefaultRegistry(), logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "ready", status.Status)
		assert.DirExists(t, dir)
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries, "probe file removed")
	})

	t.Run("no profiles", func(t *testing.T) {
		hs := NewHealthService("dev", t.TempDir(), NewRegistry(), logger)
		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Status)
	})

	t.Run("output dir is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "occupied")
		assert.NoError(t, os.WriteFile(file, nil, 0644))
		hs := NewHealthService("dev", file, DefaultRegistry(), logger)
		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Status)
	})
}
