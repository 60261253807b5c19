package chunking

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/config"
	"sceneloom/internal/ledger"
	"sceneloom/internal/logging"
	"sceneloom/internal/pipeline"
	"sceneloom/internal/scenes"
	"sceneloom/internal/stage"
)

// ChunkStage groups merged scenes into render chunks and writes the chunk
// list artifact.
type ChunkStage struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewChunkStage constructs the chunk stage handler.
func NewChunkStage(cfg *config.Config, logger *slog.Logger) *ChunkStage {
	if logger != nil {
		logger = logger.With(logging.String(logging.FieldComponent, "chunk"))
	}
	return &ChunkStage{cfg: cfg, logger: logger}
}

func (c *ChunkStage) workspace(run *ledger.Run) artifacts.Workspace {
	return artifacts.NewWorkspace(c.cfg.Paths.ArtifactsDir, run.SeriesID, run.EpisodeID)
}

func (c *ChunkStage) Prepare(ctx context.Context, run *ledger.Run) error {
	if _, _, err := scenes.LoadList(c.workspace(run)); err != nil {
		return err
	}
	return nil
}

func (c *ChunkStage) Execute(ctx context.Context, run *ledger.Run) error {
	logger := logging.WithContext(ctx, c.logger)
	ws := c.workspace(run)

	sceneList, source, err := scenes.LoadList(ws)
	if err != nil {
		return err
	}
	logger.Info("building chunks",
		logging.Int("scenes", len(sceneList)),
		logging.String("source", source),
		logging.Float64("target_sec", c.cfg.Chunking.TargetSec),
		logging.Float64("tolerance_sec", c.cfg.Chunking.ToleranceSec))

	chunks, err := Build(sceneList, c.cfg.Chunking.TargetSec, c.cfg.Chunking.ToleranceSec)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrInvalidArgument, "chunk", "build chunks",
			"Chunk builder rejected its inputs; check [chunking] settings", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, chunks); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "chunk", "encode chunks",
			"Failed to encode chunk list", err)
	}
	if err := artifacts.WriteFileAtomic(ws.ChunksPath(), buf.Bytes()); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "chunk", "write chunks",
			"Failed to write chunk list", err)
	}

	run.ChunksPath = ws.ChunksPath()
	logger.Info("chunk build completed",
		logging.Int("chunks", len(chunks)),
		logging.String("chunks_path", run.ChunksPath))
	return nil
}

func (c *ChunkStage) HealthCheck(ctx context.Context) stage.Health {
	if _, err := os.Stat(c.cfg.Paths.ArtifactsDir); err != nil {
		return stage.Unhealthy("chunk", "artifacts directory unavailable: "+err.Error())
	}
	return stage.Healthy("chunk")
}
