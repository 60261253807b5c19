package chunking

import (
	"fmt"
	"math"

	"sceneloom/internal/pipeline"
	"sceneloom/internal/scenes"
)

// Build partitions scenes into chunks using the Nearest Scene Boundary Rule.
//
// Per chunk, a forward scan over candidate boundaries tracks three values:
// the last scene end at or under the target, the in-band boundary closest to
// the target, and the first scene end past target plus tolerance (which stops
// the scan, since durations only grow). Selection order:
//
//  1. an in-band boundary, closest to target, ties to the shorter duration;
//  2. the end of the list, when nothing overshot the band;
//  3. the overshooting boundary, when even the first scene overshoots;
//  4. otherwise whichever of under/over is closer to the target, ties to
//     the under-shoot.
//
// The input must be sorted by (start_sec, end_sec). Chunk indices are
// 0-based; every chunk end coincides with some scene's end_sec.
func Build(sceneList []scenes.Scene, targetSec, toleranceSec float64) ([]Chunk, error) {
	if targetSec <= 0 {
		return nil, pipeline.Wrap(pipeline.ErrInvalidArgument, "chunk", "validate",
			fmt.Sprintf("target_sec must be positive, got %v", targetSec), nil)
	}
	if toleranceSec < 0 {
		return nil, pipeline.Wrap(pipeline.ErrInvalidArgument, "chunk", "validate",
			fmt.Sprintf("tolerance_sec must not be negative, got %v", toleranceSec), nil)
	}
	if len(sceneList) == 0 {
		return []Chunk{}, nil
	}

	chunks := make([]Chunk, 0, len(sceneList)/4+1)
	n := len(sceneList)
	i := 0

	for i < n {
		chunkStart := sceneList[i].StartSec

		lastUnder := -1
		firstOver := -1
		best := -1
		bestAbs := math.Inf(1)
		bestDur := math.Inf(1)

		for j := i; j < n; j++ {
			duration := sceneList[j].EndSec - chunkStart
			if duration <= targetSec {
				lastUnder = j
			}
			if diff := math.Abs(duration - targetSec); diff <= toleranceSec {
				if diff < bestAbs || (diff == bestAbs && duration < bestDur) {
					best = j
					bestAbs = diff
					bestDur = duration
				}
			}
			if duration > targetSec+toleranceSec {
				firstOver = j
				break
			}
		}

		var endIdx int
		switch {
		case best >= 0:
			endIdx = best
		case firstOver < 0:
			endIdx = n - 1
		case lastUnder < 0:
			// Even the first scene overshoots; a chunk still needs one scene.
			endIdx = firstOver
		default:
			durUnder := sceneList[lastUnder].EndSec - chunkStart
			durOver := sceneList[firstOver].EndSec - chunkStart
			if targetSec-durUnder <= durOver-targetSec {
				endIdx = lastUnder
			} else {
				endIdx = firstOver
			}
		}

		first := sceneList[i]
		last := sceneList[endIdx]
		duration := last.EndSec - first.StartSec
		if duration < 0 {
			duration = 0
		}
		chunks = append(chunks, Chunk{
			ChunkIndex:      len(chunks),
			StartSceneIndex: first.Index,
			EndSceneIndex:   last.Index,
			ChunkStartSec:   first.StartSec,
			ChunkEndSec:     last.EndSec,
			DurationSec:     duration,
			SceneCount:      endIdx - i + 1,
		})
		i = endIdx + 1
	}

	return chunks, nil
}
