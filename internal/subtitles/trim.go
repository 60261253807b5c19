package subtitles

import "math"

// TrimOptions controls window trimming.
type TrimOptions struct {
	StartSec float64
	// EndSec bounds the window; NaN or +Inf means the window runs to the end.
	EndSec float64
	// ShiftToZero rebases timestamps so the window start becomes zero.
	ShiftToZero bool
}

// Trim limits cues to a time window, clipping cue edges to the window bounds.
// Cues that collapse to zero or negative duration are dropped. The result is
// renumbered from 1.
func Trim(cues []Cue, opts TrimOptions) []Cue {
	end := opts.EndSec
	bounded := !math.IsNaN(end) && !math.IsInf(end, 1)

	trimmed := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if bounded && cue.StartSec >= end {
			break
		}
		if cue.EndSec <= opts.StartSec {
			continue
		}

		start := cue.StartSec
		if start < opts.StartSec {
			start = opts.StartSec
		}
		stop := cue.EndSec
		if bounded && stop > end {
			stop = end
		}
		if stop <= start {
			continue
		}

		if opts.ShiftToZero {
			start -= opts.StartSec
			stop -= opts.StartSec
		}
		trimmed = append(trimmed, Cue{
			Index:    len(trimmed) + 1,
			StartSec: start,
			EndSec:   stop,
			Content:  cue.Content,
		})
	}
	return trimmed
}
