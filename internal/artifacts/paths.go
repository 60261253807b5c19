package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace resolves artifact locations for one episode.
type Workspace struct {
	Root string
}

// NewWorkspace builds the workspace for an episode under the artifacts root.
func NewWorkspace(artifactsRoot, seriesID, episodeID string) Workspace {
	return Workspace{Root: filepath.Join(artifactsRoot, seriesID, episodeID)}
}

func (w Workspace) InputDir() string    { return filepath.Join(w.Root, "input") }
func (w Workspace) ScenesDir() string   { return filepath.Join(w.Root, "scenes") }
func (w Workspace) ChunksDir() string   { return filepath.Join(w.Root, "chunks") }
func (w Workspace) TimelineDir() string { return filepath.Join(w.Root, "timeline") }
func (w Workspace) FramesDir() string   { return filepath.Join(w.Root, "frames") }
func (w Workspace) VisionDir() string   { return filepath.Join(w.Root, "vision") }
func (w Workspace) ScoresDir() string   { return filepath.Join(w.Root, "scores") }
func (w Workspace) PlansDir() string    { return filepath.Join(w.Root, "plans") }
func (w Workspace) RendersDir() string  { return filepath.Join(w.Root, "renders") }

// RawScenesPath is where the external detector's output is expected.
func (w Workspace) RawScenesPath() string {
	return filepath.Join(w.ScenesDir(), "raw", "scenes.json")
}

// MergedScenesPath is the structured merge output location.
func (w Workspace) MergedScenesPath() string {
	return filepath.Join(w.ScenesDir(), "merged", "scenes.json")
}

// MergedScenesCSVPath is the CSV companion to the merged scene list.
func (w Workspace) MergedScenesCSVPath() string {
	return filepath.Join(w.ScenesDir(), "merged", "scenes.csv")
}

// LegacyMergedScenesPath mirrors the merge output where older consumers look.
func (w Workspace) LegacyMergedScenesPath() string {
	return filepath.Join(w.ScenesDir(), "merged_scenes.json")
}

// LegacyMergedScenesCSVPath mirrors the CSV merge output for older consumers.
func (w Workspace) LegacyMergedScenesCSVPath() string {
	return filepath.Join(w.ScenesDir(), "merged_scenes.csv")
}

// ChunksPath is the chunk list artifact location.
func (w Workspace) ChunksPath() string {
	return filepath.Join(w.ChunksDir(), "chunks.json")
}

// TimelinePath is the subtitle-aligned timeline artifact location.
func (w Workspace) TimelinePath() string {
	return filepath.Join(w.TimelineDir(), "timeline_base.json")
}

// FramePlanPath is the frame sample plan artifact location.
func (w Workspace) FramePlanPath() string {
	return filepath.Join(w.FramesDir(), "frame_plan.json")
}

// RunMetaPath is the run metadata artifact location.
func (w Workspace) RunMetaPath() string {
	return filepath.Join(w.Root, "run_meta.json")
}

// LockPath is the flock target guarding this workspace.
func (w Workspace) LockPath() string {
	return filepath.Join(w.Root, ".sceneloom.lock")
}

// EnsureDirs creates the full artifact tree for the episode.
func (w Workspace) EnsureDirs() error {
	dirs := []string{
		w.Root,
		w.InputDir(),
		filepath.Join(w.ScenesDir(), "raw"),
		filepath.Join(w.ScenesDir(), "merged"),
		w.ChunksDir(),
		w.TimelineDir(),
		w.FramesDir(),
		w.VisionDir(),
		w.ScoresDir(),
		w.PlansDir(),
		w.RendersDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory %q: %w", dir, err)
		}
	}
	return nil
}
