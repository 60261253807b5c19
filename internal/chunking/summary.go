package chunking

import "fmt"

// Summary builds one-line chunk descriptions for quick inspection.
func Summary(chunks []Chunk) []string {
	lines := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		lines = append(lines, fmt.Sprintf(
			"chunk %d: scenes %d-%d (%d) | %.2fs-%.2fs (%.2fs)",
			chunk.ChunkIndex,
			chunk.StartSceneIndex,
			chunk.EndSceneIndex,
			chunk.SceneCount,
			chunk.ChunkStartSec,
			chunk.ChunkEndSec,
			chunk.DurationSec,
		))
	}
	return lines
}
