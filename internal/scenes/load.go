package scenes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sceneloom/internal/artifacts"
	"sceneloom/internal/pipeline"
)

// LoadList loads the episode's scene list, preferring merged output and
// falling back to raw detector output.
//
// Locations, first match wins:
//   - scenes/merged/scenes.json
//   - scenes/merged_scenes.json
//   - scenes/raw/scenes.json
//   - scenes/raw_scenes.json
func LoadList(w artifacts.Workspace) ([]Scene, string, error) {
	candidates := []string{
		w.MergedScenesPath(),
		w.LegacyMergedScenesPath(),
		w.RawScenesPath(),
		filepath.Join(w.ScenesDir(), "raw_scenes.json"),
	}
	list, path, err := loadFirst(candidates)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", pipeline.Wrap(pipeline.ErrNotFound, "scenes", "load",
			fmt.Sprintf("no scene list found under %s (expected merged or raw scenes JSON)", w.ScenesDir()), nil)
	}
	return list, path, nil
}

// LoadRawList loads only the detector output, ignoring merge artifacts.
func LoadRawList(w artifacts.Workspace) ([]Scene, string, error) {
	candidates := []string{
		w.RawScenesPath(),
		filepath.Join(w.ScenesDir(), "raw_scenes.json"),
	}
	list, path, err := loadFirst(candidates)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", pipeline.Wrap(pipeline.ErrNotFound, "scenes", "load",
			fmt.Sprintf("no raw scene list found under %s", w.ScenesDir()), nil)
	}
	return list, path, nil
}

func loadFirst(candidates []string) ([]Scene, string, error) {
	for _, path := range candidates {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("open scene list %q: %w", path, err)
		}
		list, decodeErr := Decode(file)
		_ = file.Close()
		if decodeErr != nil {
			return nil, "", decodeErr
		}
		return list, path, nil
	}
	return nil, "", nil
}
