package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/config"
	"sceneloom/internal/scenes"
)

// NewWorkspace builds an episode workspace under the config's artifacts root
// with the full directory layout created.
func NewWorkspace(t testing.TB, cfg *config.Config, seriesID, episodeID string) artifacts.Workspace {
	t.Helper()

	ws := artifacts.NewWorkspace(cfg.Paths.ArtifactsDir, seriesID, episodeID)
	if err := ws.EnsureDirs(); err != nil {
		t.Fatalf("ensure workspace dirs: %v", err)
	}
	return ws
}

// WriteRawScenes writes a raw scene-list artifact into the workspace.
func WriteRawScenes(t testing.TB, ws artifacts.Workspace, sceneList []scenes.Scene) string {
	t.Helper()
	return writeScenes(t, ws.RawScenesPath(), sceneList)
}

// WriteMergedScenes writes a merged scene-list artifact into the workspace.
func WriteMergedScenes(t testing.TB, ws artifacts.Workspace, sceneList []scenes.Scene) string {
	t.Helper()
	return writeScenes(t, ws.MergedScenesPath(), sceneList)
}

func writeScenes(t testing.TB, path string, sceneList []scenes.Scene) string {
	t.Helper()

	var buf bytes.Buffer
	if err := scenes.Encode(&buf, sceneList); err != nil {
		t.Fatalf("encode scenes: %v", err)
	}
	if err := artifacts.WriteFileAtomic(path, buf.Bytes()); err != nil {
		t.Fatalf("write scenes %s: %v", path, err)
	}
	return path
}

// WriteSRT drops SRT content into the workspace input directory.
func WriteSRT(t testing.TB, ws artifacts.Workspace, name, content string) string {
	t.Helper()

	path := filepath.Join(ws.InputDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write srt %s: %v", path, err)
	}
	return path
}

// EvenScenes produces n contiguous scenes of a fixed duration starting at 0.
func EvenScenes(n int, durationSec float64) []scenes.Scene {
	sceneList := make([]scenes.Scene, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * durationSec
		sceneList = append(sceneList, scenes.Scene{
			Index:    i + 1,
			StartSec: start,
			EndSec:   start + durationSec,
		})
	}
	return sceneList
}
