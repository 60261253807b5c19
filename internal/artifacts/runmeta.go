package artifacts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version identifies the tool build recorded in run metadata. Overridden at
// release time via -ldflags.
var Version = "dev"

// RunMeta captures provenance for one pipeline invocation so artifacts can be
// traced back to the inputs and settings that produced them.
type RunMeta struct {
	RunID        string         `json:"run_id"`
	StartedAtUTC string         `json:"started_at_utc"`
	ToolVersion  string         `json:"tool_version"`
	SeriesID     string         `json:"series_id"`
	EpisodeID    string         `json:"episode_id"`
	Config       map[string]any `json:"config"`
}

// NewRunMeta builds run metadata with a fresh run ID and the current time.
func NewRunMeta(seriesID, episodeID string, configSnapshot map[string]any) RunMeta {
	return RunMeta{
		RunID:        uuid.NewString(),
		StartedAtUTC: time.Now().UTC().Format(time.RFC3339),
		ToolVersion:  Version,
		SeriesID:     seriesID,
		EpisodeID:    episodeID,
		Config:       configSnapshot,
	}
}

// WriteRunMeta persists run metadata into the workspace.
func WriteRunMeta(w Workspace, meta RunMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run meta: %w", err)
	}
	return WriteFileAtomic(w.RunMetaPath(), append(data, '\n'))
}
