package frames

import (
	"fmt"
	"math"
	"sort"

	"sceneloom/internal/scenes"
)

// Sample is a computed frame position inside a scene. Label is the rounded
// percent position, zero-padded to two digits.
type Sample struct {
	SceneIndex   int     `json:"scene_index"`
	TimestampSec float64 `json:"timestamp_sec"`
	Label        string  `json:"label"`
}

// normalizePoints keeps points inside [0, 1] and sorts them. An empty or
// fully out-of-range set falls back to the midpoint.
func normalizePoints(raw []float64) []float64 {
	points := make([]float64, 0, len(raw))
	for _, p := range raw {
		if p >= 0 && p <= 1 {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return []float64{0.5}
	}
	sort.Float64s(points)
	return points
}

// SampleScene computes sample timestamps for one scene. Scenes shorter than
// minSceneSec collapse to a single midpoint sample; zero-duration scenes
// yield none.
func SampleScene(scene scenes.Scene, samplePoints []float64, minSceneSec float64) []Sample {
	duration := scene.DurationSec()
	if duration <= 0 {
		return nil
	}

	points := normalizePoints(samplePoints)
	if duration < minSceneSec {
		points = []float64{0.5}
	}

	samples := make([]Sample, 0, len(points))
	for _, p := range points {
		samples = append(samples, Sample{
			SceneIndex:   scene.Index,
			TimestampSec: scene.StartSec + duration*p,
			Label:        percentLabel(p),
		})
	}
	return samples
}

// SampleAll computes frame samples for every scene in order.
func SampleAll(sceneList []scenes.Scene, samplePoints []float64, minSceneSec float64) []Sample {
	samples := make([]Sample, 0, len(sceneList)*len(samplePoints))
	for _, scene := range sceneList {
		samples = append(samples, SampleScene(scene, samplePoints, minSceneSec)...)
	}
	return samples
}

func percentLabel(p float64) string {
	return fmt.Sprintf("%02d", int(math.Round(p*100)))
}
