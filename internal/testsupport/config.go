// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"sceneloom/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ArtifactsDir = filepath.Join(base, "artifacts")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithScene overrides the scene merge settings on the test config.
func WithScene(minSceneSec float64, maxMergeChain int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scene.MinSceneSec = minSceneSec
		cfg.Scene.MaxMergeChain = maxMergeChain
	}
}

// WithChunking overrides the chunk builder settings on the test config.
func WithChunking(targetSec, toleranceSec float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Chunking.TargetSec = targetSec
		cfg.Chunking.ToleranceSec = toleranceSec
	}
}
