package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/vgrid/internal/logging"
)

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .vgrid directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. VGRID_PROJECT_DIR env var
//  3. the nearest ancestor of startDir holding .vgrid/config.yaml, other than
//     the user config directory
//
// Returns an absolute path or "" when no project is found. Read-only.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv("VGRID_PROJECT_DIR"); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}
	if startDir == "" {
		return ""
	}

	dir := toAbsProjectDir(ctx, startDir)
	userDir, _ := filepath.Abs(defaultDir())
	for {
		if dir != userDir {
			if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(filepath.Dir(dir))
		next := filepath.Join(parent, DirName)
		if next == dir {
			return ""
		}
		dir = next
	}
}

// NewWithProjectDir creates a Config by loading global config then merging the
// project-local config on top. If projectDir is empty, behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, ConfigFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	if err := MergeYAML(cfg, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return cfg
	}
	// Environment still wins over the project file.
	cfg.applyEnv()

	logging.FromContext(ctx).Debug().
		Str("component", "config").
		Str("overlay_path", overlayPath).
		Msg("project config merged")
	return cfg
}

// toAbsProjectDir converts dir to an absolute path and appends ".vgrid" unless the
// path already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == DirName {
		return abs
	}
	return filepath.Join(abs, DirName)
}
