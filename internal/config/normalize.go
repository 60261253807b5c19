package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScene()
	c.normalizeFrames()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ArtifactsDir) == "" {
		c.Paths.ArtifactsDir = defaultArtifactsDir
	}
	if c.Paths.ArtifactsDir, err = expandPath(c.Paths.ArtifactsDir); err != nil {
		return fmt.Errorf("paths.artifacts_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScene() {
	if c.Scene.MaxMergeChain == 0 {
		c.Scene.MaxMergeChain = defaultMaxMergeChain
	}
}

func (c *Config) normalizeFrames() {
	if len(c.Frames.SamplePoints) == 0 {
		c.Frames.SamplePoints = defaultSamplePoints()
	}
	c.Frames.ImageFormat = strings.ToLower(strings.TrimSpace(c.Frames.ImageFormat))
	if c.Frames.ImageFormat == "" {
		c.Frames.ImageFormat = defaultFrameImageFormat
	}
	if c.Frames.ImageFormat == "jpeg" {
		c.Frames.ImageFormat = "jpg"
	}
	if c.Frames.Quality == 0 {
		c.Frames.Quality = defaultFrameQuality
	}
	if c.Frames.MinSceneSec == 0 {
		c.Frames.MinSceneSec = defaultFrameMinSceneSec
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
