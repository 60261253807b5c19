package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScene(); err != nil {
		return err
	}
	if err := c.validateChunking(); err != nil {
		return err
	}
	if err := c.validateFrames(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScene() error {
	if c.Scene.MinSceneSec < 0 {
		return errors.New("scene.min_scene_sec must not be negative")
	}
	if c.Scene.MaxMergeChain < 1 {
		return errors.New("scene.max_merge_chain must be at least 1")
	}
	return nil
}

func (c *Config) validateChunking() error {
	if c.Chunking.TargetSec <= 0 {
		return errors.New("chunking.target_sec must be positive")
	}
	if c.Chunking.ToleranceSec < 0 {
		return errors.New("chunking.tolerance_sec must not be negative")
	}
	return nil
}

func (c *Config) validateFrames() error {
	switch c.Frames.ImageFormat {
	case "jpg", "png", "webp":
	default:
		return fmt.Errorf("frames.image_format %q is not supported (jpg, png, webp)", c.Frames.ImageFormat)
	}
	if c.Frames.Quality < 0 {
		return errors.New("frames.quality must not be negative")
	}
	if c.Frames.MinSceneSec < 0 {
		return errors.New("frames.min_scene_sec must not be negative")
	}
	for _, point := range c.Frames.SamplePoints {
		if point < 0 || point > 1 {
			return fmt.Errorf("frames.sample_points entry %v is outside [0, 1]", point)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console, json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported (debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}
