package frames

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sceneloom/internal/scenes"
)

// PlanRow is one frame to extract: where in the video, and where the image
// lands relative to the episode frames directory.
type PlanRow struct {
	SceneIndex   int     `json:"scene_index"`
	TimestampSec float64 `json:"timestamp_sec"`
	Label        string  `json:"label"`
	Path         string  `json:"path"`
}

// Plan is the frame_plan artifact.
type Plan struct {
	ImageFormat string    `json:"image_format"`
	Quality     int       `json:"quality"`
	Rows        []PlanRow `json:"rows"`
}

// BuildPlan computes samples for every scene and lays out output paths as
// scene_%04d/frame_<label>.<format>.
func BuildPlan(sceneList []scenes.Scene, samplePoints []float64, minSceneSec float64, imageFormat string, quality int) Plan {
	format := strings.ToLower(strings.TrimSpace(imageFormat))
	if format == "" {
		format = "jpg"
	}
	samples := SampleAll(sceneList, samplePoints, minSceneSec)
	rows := make([]PlanRow, 0, len(samples))
	for _, sample := range samples {
		rows = append(rows, PlanRow{
			SceneIndex:   sample.SceneIndex,
			TimestampSec: sample.TimestampSec,
			Label:        sample.Label,
			Path:         fmt.Sprintf("scene_%04d/frame_%s.%s", sample.SceneIndex, sample.Label, format),
		})
	}
	return Plan{ImageFormat: format, Quality: quality, Rows: rows}
}

// EncodePlan writes the plan as indented JSON.
func EncodePlan(w io.Writer, plan Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// DecodePlan reads a frame plan artifact.
func DecodePlan(r io.Reader) (Plan, error) {
	var plan Plan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return Plan{}, fmt.Errorf("decode frame plan: %w", err)
	}
	return plan, nil
}
