package scenes

import "sort"

// Scene is a half-open time interval on an episode timeline. Indices are
// 1-based and preserved from detection or merge output so downstream artifacts
// can reference the scene list without renumbering.
type Scene struct {
	Index    int     `json:"scene_index"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}

// DurationSec returns the scene duration, clamped to zero for degenerate
// intervals.
func (s Scene) DurationSec() float64 {
	if s.EndSec < s.StartSec {
		return 0
	}
	return s.EndSec - s.StartSec
}

// Sort orders scenes by (start_sec, end_sec) in place. Decoded scene records
// are order-independent on disk; merge and chunk processing require this
// ordering.
func Sort(scenes []Scene) {
	sort.SliceStable(scenes, func(i, j int) bool {
		if scenes[i].StartSec != scenes[j].StartSec {
			return scenes[i].StartSec < scenes[j].StartSec
		}
		return scenes[i].EndSec < scenes[j].EndSec
	})
}
