package scenes

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"sceneloom/internal/pipeline"
)

// sceneRecord is the on-disk shape of a scene. end_sec may be omitted when
// duration_sec is present; scene_index may be omitted entirely.
type sceneRecord struct {
	SceneIndex  *int     `json:"scene_index,omitempty"`
	StartSec    *float64 `json:"start_sec"`
	EndSec      *float64 `json:"end_sec,omitempty"`
	DurationSec *float64 `json:"duration_sec,omitempty"`
}

// Decode reads a JSON scene list. Records missing end_sec derive it from
// duration_sec, records with an end before their start are clamped to zero
// duration, missing indices default to 1-based position, and the result is
// sorted by (start_sec, end_sec).
func Decode(r io.Reader) ([]Scene, error) {
	var records []sceneRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrMalformedArtifact, "scenes", "decode", "scene list is not valid JSON", err)
	}

	out := make([]Scene, 0, len(records))
	for i, rec := range records {
		if rec.StartSec == nil {
			return nil, pipeline.Wrap(pipeline.ErrMalformedArtifact, "scenes", "decode",
				fmt.Sprintf("record %d has no start_sec", i+1), nil)
		}
		start := *rec.StartSec
		var end float64
		switch {
		case rec.EndSec != nil:
			end = *rec.EndSec
		case rec.DurationSec != nil:
			end = start + *rec.DurationSec
		default:
			end = start
		}
		if end < start {
			end = start
		}
		index := i + 1
		if rec.SceneIndex != nil {
			index = *rec.SceneIndex
		}
		out = append(out, Scene{Index: index, StartSec: start, EndSec: end})
	}
	Sort(out)
	return out, nil
}

// encodedScene is the output shape: duration is materialized so consumers do
// not have to derive it.
type encodedScene struct {
	SceneIndex  int     `json:"scene_index"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	DurationSec float64 `json:"duration_sec"`
}

// Encode writes the scene list as an indented JSON array.
func Encode(w io.Writer, scenes []Scene) error {
	records := make([]encodedScene, 0, len(scenes))
	for _, sc := range scenes {
		records = append(records, encodedScene{
			SceneIndex:  sc.Index,
			StartSec:    sc.StartSec,
			EndSec:      sc.EndSec,
			DurationSec: sc.DurationSec(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode scenes: %w", err)
	}
	return nil
}

// EncodeCSV writes the scene list in the detector's CSV shape.
func EncodeCSV(w io.Writer, scenes []Scene) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scene_index", "start_sec", "end_sec", "duration_sec"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, sc := range scenes {
		row := []string{
			strconv.Itoa(sc.Index),
			formatSeconds(sc.StartSec),
			formatSeconds(sc.EndSec),
			formatSeconds(sc.DurationSec()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
