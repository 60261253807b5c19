package subtitles

import (
	"encoding/json"
	"io"

	"sceneloom/internal/scenes"
)

// Dialogue is one subtitle line attached to a scene.
type Dialogue struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}

// SceneDialogue is a scene with its overlapping dialogue.
type SceneDialogue struct {
	SceneIndex  int        `json:"scene_index"`
	StartSec    float64    `json:"start_sec"`
	EndSec      float64    `json:"end_sec"`
	DurationSec float64    `json:"duration_sec"`
	Dialogues   []Dialogue `json:"dialogues"`
}

// TimelineSource records where the timeline's inputs came from.
type TimelineSource struct {
	SeriesID         string `json:"series_id"`
	EpisodeID        string `json:"episode_id"`
	SubtitlePath     string `json:"subtitle_path"`
	SubtitleOffsetMS int    `json:"subtitle_offset_ms"`
}

// Timeline is the timeline_base artifact: every scene with the dialogue that
// overlaps it.
type Timeline struct {
	Source TimelineSource  `json:"source"`
	Scenes []SceneDialogue `json:"scenes"`
}

// Align attaches subtitle lines to scenes by time overlap. A line belongs to
// every scene it overlaps, so dialogue spanning a cut appears in both scenes.
func Align(sceneList []scenes.Scene, lines []Line) []SceneDialogue {
	aligned := make([]SceneDialogue, 0, len(sceneList))
	for _, scene := range sceneList {
		dialogues := make([]Dialogue, 0, 4)
		for _, line := range lines {
			if line.StartSec < scene.EndSec && line.EndSec > scene.StartSec {
				dialogues = append(dialogues, Dialogue{
					StartSec: line.StartSec,
					EndSec:   line.EndSec,
					Text:     line.Text,
				})
			}
		}
		aligned = append(aligned, SceneDialogue{
			SceneIndex:  scene.Index,
			StartSec:    scene.StartSec,
			EndSec:      scene.EndSec,
			DurationSec: scene.DurationSec(),
			Dialogues:   dialogues,
		})
	}
	return aligned
}

// EncodeTimeline writes the timeline artifact as indented JSON.
func EncodeTimeline(w io.Writer, timeline Timeline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(timeline)
}
