package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	outputDir string
	registry  *Registry
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service reporting on outputDir and registry.
func NewHealthService(version, outputDir string, registry *Registry, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("output_dir", outputDir))

	return &HealthService{
		version:   version,
		outputDir: outputDir,
		registry:  registry,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed", slog.String("status", status.Status))
	return status
}

// ReadinessCheck reports whether exports can be served.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"output":   hs.checkOutputHealth(),
			"profiles": hs.checkProfilesHealth(),
		},
	}

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	hs.logger.DebugContext(ctx, "ReadinessCheck: completed", slog.String("status", status.Status))
	return status
}

// checkOutputHealth verifies the output directory exists or can be created and is writable.
func (hs *HealthService) checkOutputHealth() ServiceHealth {
	if err := os.MkdirAll(hs.outputDir, 0755); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Cannot create output directory: %v", err),
		}
	}

	probe, err := os.CreateTemp(hs.outputDir, ".health-*")
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Cannot write to output directory: %v", err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return ServiceHealth{Status: "ready", Message: "Output directory is writable"}
}

func (hs *HealthService) checkProfilesHealth() ServiceHealth {
	if hs.registry == nil || len(hs.registry.Profiles()) == 0 {
		return ServiceHealth{Status: "not_ready", Message: "No export profiles registered"}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d export profiles registered", len(hs.registry.Profiles())),
	}
}
