package subtitles

import (
	"math"
	"testing"
)

func cueAt(start, end float64, text string) Cue {
	return Cue{StartSec: start, EndSec: end, Content: text}
}

func TestTrimWindowClipsAndShifts(t *testing.T) {
	cues := []Cue{
		cueAt(0, 2, "before"),
		cueAt(4, 8, "straddles start"),
		cueAt(10, 12, "inside"),
		cueAt(14, 20, "straddles end"),
		cueAt(25, 30, "after"),
	}
	got := Trim(cues, TrimOptions{StartSec: 5, EndSec: 15, ShiftToZero: true})
	if len(got) != 3 {
		t.Fatalf("expected 3 cues, got %+v", got)
	}
	if got[0].StartSec != 0 || got[0].EndSec != 3 {
		t.Fatalf("straddling cue should clip to window start: %+v", got[0])
	}
	if got[1].StartSec != 5 || got[1].EndSec != 7 {
		t.Fatalf("inside cue should shift: %+v", got[1])
	}
	if got[2].StartSec != 9 || got[2].EndSec != 10 {
		t.Fatalf("straddling cue should clip to window end: %+v", got[2])
	}
	for i, cue := range got {
		if cue.Index != i+1 {
			t.Fatalf("cue %d not renumbered: %+v", i, cue)
		}
	}
}

func TestTrimUnboundedEnd(t *testing.T) {
	cues := []Cue{cueAt(0, 2, "a"), cueAt(100, 200, "b")}
	got := Trim(cues, TrimOptions{StartSec: 1, EndSec: math.Inf(1)})
	if len(got) != 2 {
		t.Fatalf("unbounded window should keep later cues: %+v", got)
	}
	if got[0].StartSec != 1 {
		t.Fatalf("first cue should clip without shifting: %+v", got[0])
	}
	if got[1].StartSec != 100 || got[1].EndSec != 200 {
		t.Fatalf("second cue should be untouched: %+v", got[1])
	}
}

func TestTrimDropsCollapsedCues(t *testing.T) {
	cues := []Cue{cueAt(0, 5, "a")}
	got := Trim(cues, TrimOptions{StartSec: 5, EndSec: 10})
	if len(got) != 0 {
		t.Fatalf("cue ending at window start should be dropped: %+v", got)
	}
}

func TestTrimEmptyInput(t *testing.T) {
	if got := Trim(nil, TrimOptions{StartSec: 0, EndSec: 10}); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
