package scenes

import (
	"fmt"

	"sceneloom/internal/pipeline"
)

// Merge collapses consecutive scenes shorter than minSceneSec into their
// predecessor and re-indexes the survivors contiguously from 1.
//
// The input must already be sorted by start time; this function does not
// re-sort. Absorbing a scene extends the previous kept scene's end to the
// later of the two ends, which tolerates overlapping or slightly out-of-order
// detector output. After maxMergeChain consecutive absorptions the next short
// scene starts a new kept scene instead of being absorbed, so a run of
// micro-scenes cannot merge without bound.
//
// Output is a fresh slice; the input is never mutated. Equal inputs always
// produce identical output.
func Merge(scenes []Scene, minSceneSec float64, maxMergeChain int) ([]Scene, error) {
	if minSceneSec < 0 {
		return nil, pipeline.Wrap(pipeline.ErrInvalidArgument, "merge", "validate",
			fmt.Sprintf("min_scene_sec must not be negative, got %v", minSceneSec), nil)
	}
	if maxMergeChain < 1 {
		return nil, pipeline.Wrap(pipeline.ErrInvalidArgument, "merge", "validate",
			fmt.Sprintf("max_merge_chain must be at least 1, got %d", maxMergeChain), nil)
	}
	if len(scenes) == 0 {
		return []Scene{}, nil
	}

	merged := make([]Scene, 0, len(scenes))
	chain := 0

	for _, sc := range scenes {
		if len(merged) == 0 {
			merged = append(merged, sc)
			continue
		}

		if sc.DurationSec() < minSceneSec {
			last := &merged[len(merged)-1]
			if sc.EndSec > last.EndSec {
				last.EndSec = sc.EndSec
			}
			chain++
			if chain >= maxMergeChain {
				// Forced break: the breaking scene starts a new kept scene.
				merged = append(merged, sc)
				chain = 0
			}
		} else {
			merged = append(merged, sc)
			chain = 0
		}
	}

	for i := range merged {
		merged[i].Index = i + 1
	}
	return merged, nil
}
