package config

const (
	defaultArtifactsDir      = "~/.local/share/sceneloom/artifacts"
	defaultLogDir            = "~/.local/share/sceneloom/logs"
	defaultMinSceneSec       = 1.5
	defaultMaxMergeChain     = 8
	defaultChunkTargetSec    = 1800
	defaultChunkToleranceSec = 120
	defaultFrameImageFormat  = "jpg"
	defaultFrameQuality      = 2
	defaultFrameMinSceneSec  = 1.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

func defaultSamplePoints() []float64 {
	return []float64{0.2, 0.5, 0.8}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArtifactsDir: defaultArtifactsDir,
			LogDir:       defaultLogDir,
		},
		Scene: Scene{
			MinSceneSec:   defaultMinSceneSec,
			MaxMergeChain: defaultMaxMergeChain,
		},
		Chunking: Chunking{
			TargetSec:    defaultChunkTargetSec,
			ToleranceSec: defaultChunkToleranceSec,
		},
		Frames: Frames{
			SamplePoints: defaultSamplePoints(),
			ImageFormat:  defaultFrameImageFormat,
			Quality:      defaultFrameQuality,
			MinSceneSec:  defaultFrameMinSceneSec,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
