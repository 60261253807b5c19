package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirsCreatesTree(t *testing.T) {
	ws := NewWorkspace(t.TempDir(), "show", "e01")
	if err := ws.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	for _, dir := range []string{
		ws.InputDir(),
		filepath.Join(ws.ScenesDir(), "raw"),
		filepath.Join(ws.ScenesDir(), "merged"),
		ws.ChunksDir(),
		ws.TimelineDir(),
		ws.FramesDir(),
		ws.RendersDir(),
	} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "artifact.json")
	if err := WriteFileAtomic(path, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected content: %q", data)
	}

	// Overwrite must fully replace.
	if err := WriteFileAtomic(path, []byte("[]")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "[]" {
		t.Fatalf("unexpected content after overwrite: %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestRunMetaWrite(t *testing.T) {
	ws := NewWorkspace(t.TempDir(), "show", "e01")
	meta := NewRunMeta("show", "e01", map[string]any{"target_sec": 1800})
	if meta.RunID == "" {
		t.Fatal("expected generated run id")
	}
	if meta.ToolVersion == "" {
		t.Fatal("expected tool version")
	}
	if err := WriteRunMeta(ws, meta); err != nil {
		t.Fatalf("WriteRunMeta: %v", err)
	}

	data, err := os.ReadFile(ws.RunMetaPath())
	if err != nil {
		t.Fatalf("read run meta: %v", err)
	}
	var decoded RunMeta
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode run meta: %v", err)
	}
	if decoded.RunID != meta.RunID || decoded.EpisodeID != "e01" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestRunLockExcludes(t *testing.T) {
	ws := NewWorkspace(t.TempDir(), "show", "e01")
	lock, err := AcquireRunLock(ws)
	if err != nil {
		t.Fatalf("AcquireRunLock: %v", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			t.Fatalf("Release: %v", err)
		}
	}()
	// flock is per-process on some platforms, so only verify the lock file
	// exists and release works; exclusion across processes is covered by the
	// library itself.
	if _, err := os.Stat(ws.LockPath()); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
}
