package subtitles

import (
	"bytes"
	"encoding/json"
	"testing"

	"sceneloom/internal/scenes"
)

func TestAlignByOverlap(t *testing.T) {
	sceneList := []scenes.Scene{
		{Index: 1, StartSec: 0, EndSec: 10},
		{Index: 2, StartSec: 10, EndSec: 20},
	}
	lines := []Line{
		{StartSec: 1, EndSec: 3, Text: "first scene only"},
		{StartSec: 9, EndSec: 11, Text: "spans the cut"},
		{StartSec: 15, EndSec: 18, Text: "second scene only"},
		{StartSec: 25, EndSec: 28, Text: "past the end"},
	}
	aligned := Align(sceneList, lines)
	if len(aligned) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(aligned))
	}
	if got := len(aligned[0].Dialogues); got != 2 {
		t.Fatalf("scene 1 dialogues = %d, want 2: %+v", got, aligned[0].Dialogues)
	}
	if got := len(aligned[1].Dialogues); got != 2 {
		t.Fatalf("scene 2 dialogues = %d, want 2: %+v", got, aligned[1].Dialogues)
	}
	if aligned[0].Dialogues[1].Text != "spans the cut" || aligned[1].Dialogues[0].Text != "spans the cut" {
		t.Fatalf("line spanning a cut should appear in both scenes: %+v", aligned)
	}
	if aligned[1].DurationSec != 10 {
		t.Fatalf("duration not carried: %+v", aligned[1])
	}
}

func TestAlignTouchingBoundaryDoesNotAttach(t *testing.T) {
	sceneList := []scenes.Scene{
		{Index: 1, StartSec: 0, EndSec: 10},
		{Index: 2, StartSec: 10, EndSec: 20},
	}
	lines := []Line{{StartSec: 10, EndSec: 12, Text: "starts at the cut"}}
	aligned := Align(sceneList, lines)
	if len(aligned[0].Dialogues) != 0 {
		t.Fatalf("line starting at scene end must not attach: %+v", aligned[0])
	}
	if len(aligned[1].Dialogues) != 1 {
		t.Fatalf("line should attach to the scene it starts in: %+v", aligned[1])
	}
}

func TestAlignNoLines(t *testing.T) {
	aligned := Align([]scenes.Scene{{Index: 1, StartSec: 0, EndSec: 5}}, nil)
	if len(aligned) != 1 || len(aligned[0].Dialogues) != 0 {
		t.Fatalf("scenes without dialogue should still appear: %+v", aligned)
	}
}

func TestEncodeTimelineRoundTrip(t *testing.T) {
	timeline := Timeline{
		Source: TimelineSource{
			SeriesID:         "show",
			EpisodeID:        "e01",
			SubtitlePath:     "input/e01.srt",
			SubtitleOffsetMS: -250,
		},
		Scenes: []SceneDialogue{
			{
				SceneIndex:  1,
				StartSec:    0,
				EndSec:      4.5,
				DurationSec: 4.5,
				Dialogues:   []Dialogue{{StartSec: 1, EndSec: 2, Text: "hello"}},
			},
		},
	}
	var buf bytes.Buffer
	if err := EncodeTimeline(&buf, timeline); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded Timeline
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Source.SubtitleOffsetMS != -250 {
		t.Fatalf("source not preserved: %+v", decoded.Source)
	}
	if len(decoded.Scenes) != 1 || decoded.Scenes[0].Dialogues[0].Text != "hello" {
		t.Fatalf("scenes not preserved: %+v", decoded.Scenes)
	}
}
