package chunking

// Chunk is a contiguous run of one or more scenes grouped to approximate a
// target duration. Scene indices are inclusive and refer to the indices
// carried by the input scene list, not positions.
type Chunk struct {
	ChunkIndex      int     `json:"chunk_index"`
	StartSceneIndex int     `json:"start_scene_index"`
	EndSceneIndex   int     `json:"end_scene_index"`
	ChunkStartSec   float64 `json:"chunk_start_sec"`
	ChunkEndSec     float64 `json:"chunk_end_sec"`
	DurationSec     float64 `json:"duration_sec"`
	SceneCount      int     `json:"scene_count"`
}
