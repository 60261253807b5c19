package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ArtifactsDir string `toml:"artifacts_dir"`
	LogDir       string `toml:"log_dir"`
}

// Scene contains micro-scene merge settings.
type Scene struct {
	// MinSceneSec is the duration floor below which a scene is treated as a
	// micro-scene and absorbed into its predecessor.
	MinSceneSec float64 `toml:"min_scene_sec"`
	// MaxMergeChain bounds how many consecutive scenes may be absorbed into a
	// single merged scene before a forced break.
	MaxMergeChain int `toml:"max_merge_chain"`
}

// Chunking contains chunk boundary selection settings.
type Chunking struct {
	TargetSec    float64 `toml:"target_sec"`
	ToleranceSec float64 `toml:"tolerance_sec"`
}

// Frames contains frame sample planning settings.
type Frames struct {
	// SamplePoints are normalized [0,1] positions inside each scene.
	SamplePoints []float64 `toml:"sample_points"`
	ImageFormat  string    `toml:"image_format"`
	Quality      int       `toml:"quality"`
	// MinSceneSec collapses short scenes to a single midpoint sample.
	MinSceneSec float64 `toml:"min_scene_sec"`
}

// Subtitles contains subtitle alignment settings.
type Subtitles struct {
	// OffsetMS shifts all subtitle timestamps before alignment.
	OffsetMS int `toml:"offset_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sceneloom.
//
// Configuration sections by subsystem:
//   - Paths: artifact and log directories
//   - Scene: micro-scene merge thresholds
//   - Chunking: chunk target duration and tolerance band
//   - Frames: per-scene frame sample planning
//   - Subtitles: subtitle timeline alignment
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Scene     Scene     `toml:"scene"`
	Chunking  Chunking  `toml:"chunking"`
	Frames    Frames    `toml:"frames"`
	Subtitles Subtitles `toml:"subtitles"`
	Logging   Logging   `toml:"logging"`
}

// Snapshot flattens the settings that shape artifacts into a map for run
// metadata. Paths and logging are excluded; they do not affect outputs.
func (c *Config) Snapshot() map[string]any {
	return map[string]any{
		"min_scene_sec":        c.Scene.MinSceneSec,
		"max_merge_chain":      c.Scene.MaxMergeChain,
		"target_sec":           c.Chunking.TargetSec,
		"tolerance_sec":        c.Chunking.ToleranceSec,
		"sample_points":        c.Frames.SamplePoints,
		"image_format":         c.Frames.ImageFormat,
		"quality":              c.Frames.Quality,
		"frames_min_scene_sec": c.Frames.MinSceneSec,
		"subtitle_offset_ms":   c.Subtitles.OffsetMS,
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sceneloom/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sceneloom.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ArtifactsDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
