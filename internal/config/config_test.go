package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneloom/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantArtifacts := filepath.Join(tempHome, ".local", "share", "sceneloom", "artifacts")
	if cfg.Paths.ArtifactsDir != wantArtifacts {
		t.Fatalf("unexpected artifacts dir: got %q want %q", cfg.Paths.ArtifactsDir, wantArtifacts)
	}
	if cfg.Scene.MinSceneSec != 1.5 {
		t.Fatalf("unexpected min_scene_sec: %v", cfg.Scene.MinSceneSec)
	}
	if cfg.Scene.MaxMergeChain != 8 {
		t.Fatalf("unexpected max_merge_chain: %d", cfg.Scene.MaxMergeChain)
	}
	if cfg.Chunking.TargetSec != 1800 {
		t.Fatalf("unexpected target_sec: %v", cfg.Chunking.TargetSec)
	}
	if cfg.Chunking.ToleranceSec != 120 {
		t.Fatalf("unexpected tolerance_sec: %v", cfg.Chunking.ToleranceSec)
	}
	if got := cfg.Frames.SamplePoints; len(got) != 3 || got[1] != 0.5 {
		t.Fatalf("unexpected sample points: %v", got)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
artifacts_dir = "` + filepath.Join(dir, "artifacts") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[scene]
min_scene_sec = 0.75
max_merge_chain = 3

[chunking]
target_sec = 600.0
tolerance_sec = 30.0

[frames]
image_format = "JPEG"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Scene.MinSceneSec != 0.75 || cfg.Scene.MaxMergeChain != 3 {
		t.Fatalf("scene section not applied: %+v", cfg.Scene)
	}
	if cfg.Chunking.TargetSec != 600 || cfg.Chunking.ToleranceSec != 30 {
		t.Fatalf("chunking section not applied: %+v", cfg.Chunking)
	}
	if cfg.Frames.ImageFormat != "jpg" {
		t.Fatalf("expected jpeg normalized to jpg, got %q", cfg.Frames.ImageFormat)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative min scene", func(c *config.Config) { c.Scene.MinSceneSec = -1 }, "min_scene_sec"},
		{"zero merge chain", func(c *config.Config) { c.Scene.MaxMergeChain = 0 }, "max_merge_chain"},
		{"zero target", func(c *config.Config) { c.Chunking.TargetSec = 0 }, "target_sec"},
		{"negative tolerance", func(c *config.Config) { c.Chunking.ToleranceSec = -5 }, "tolerance_sec"},
		{"bad image format", func(c *config.Config) { c.Frames.ImageFormat = "bmp" }, "image_format"},
		{"sample point out of range", func(c *config.Config) { c.Frames.SamplePoints = []float64{1.5} }, "sample_points"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q missing %q", err.Error(), tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	defaults := config.Default()
	if cfg.Scene.MinSceneSec != defaults.Scene.MinSceneSec {
		t.Fatalf("sample min_scene_sec %v diverges from default %v", cfg.Scene.MinSceneSec, defaults.Scene.MinSceneSec)
	}
	if cfg.Chunking.TargetSec != defaults.Chunking.TargetSec {
		t.Fatalf("sample target_sec %v diverges from default %v", cfg.Chunking.TargetSec, defaults.Chunking.TargetSec)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ArtifactsDir = filepath.Join(dir, "artifacts")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, p := range []string{cfg.Paths.ArtifactsDir, cfg.Paths.LogDir} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", p, err)
		}
	}
}
