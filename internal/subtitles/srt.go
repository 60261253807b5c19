package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sceneloom/internal/pipeline"
)

// Cue is one SRT entry with its original (possibly multi-line) content.
type Cue struct {
	Index    int
	StartSec float64
	EndSec   float64
	Content  string
}

// Line is a normalized subtitle line: seconds-based timestamps and
// whitespace-collapsed text, ready for scene alignment.
type Line struct {
	Index    int     `json:"index"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}

// ParseCues reads SRT content into cues, preserving text layout. Blocks with
// unparseable timing lines are rejected; sequence numbers in the file are
// ignored in favor of 1-based block order.
func ParseCues(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cues []Cue
	var block []string
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		cue, ok, err := parseBlock(block, len(cues)+1)
		block = block[:0]
		if err != nil {
			return err
		}
		if ok {
			cues = append(cues, cue)
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cues, nil
}

func parseBlock(block []string, index int) (Cue, bool, error) {
	// Optional leading sequence number, then the timing line, then content.
	pos := 0
	if pos < len(block) && isDigits(strings.TrimSpace(block[pos])) {
		pos++
	}
	if pos >= len(block) || !strings.Contains(block[pos], "-->") {
		return Cue{}, false, pipeline.Wrap(pipeline.ErrMalformedArtifact, "subtitles", "parse",
			fmt.Sprintf("cue %d has no timing line", index), nil)
	}
	parts := strings.SplitN(block[pos], "-->", 2)
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return Cue{}, false, pipeline.Wrap(pipeline.ErrMalformedArtifact, "subtitles", "parse",
			fmt.Sprintf("cue %d start", index), err)
	}
	end, err := parseTimestamp(parts[1])
	if err != nil {
		return Cue{}, false, pipeline.Wrap(pipeline.ErrMalformedArtifact, "subtitles", "parse",
			fmt.Sprintf("cue %d end", index), err)
	}
	content := strings.Join(block[pos+1:], "\n")
	if strings.TrimSpace(content) == "" {
		return Cue{}, false, nil
	}
	return Cue{Index: index, StartSec: start, EndSec: end, Content: content}, true, nil
}

// ParseLines reads SRT content into normalized lines, applying an optional
// millisecond offset. Cues that become empty or inverted are dropped, and
// shifted timestamps are floored at zero.
func ParseLines(r io.Reader, offsetMS int) ([]Line, error) {
	cues, err := ParseCues(r)
	if err != nil {
		return nil, err
	}
	offset := float64(offsetMS) / 1000.0
	lines := make([]Line, 0, len(cues))
	for _, cue := range cues {
		start := cue.StartSec + offset
		end := cue.EndSec + offset
		if start < 0 {
			start = 0
		}
		if end < 0 {
			end = 0
		}
		if end <= start {
			continue
		}
		text := strings.Join(strings.Fields(cue.Content), " ")
		if text == "" {
			continue
		}
		lines = append(lines, Line{Index: len(lines) + 1, StartSec: start, EndSec: end, Text: text})
	}
	return lines, nil
}

// Compose writes cues back out in SRT format with 1-based renumbering.
func Compose(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("compose srt: %w", err)
			}
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n",
			i+1, formatTimestamp(cue.StartSec), formatTimestamp(cue.EndSec), cue.Content); err != nil {
			return fmt.Errorf("compose srt: %w", err)
		}
	}
	return bw.Flush()
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT uses a comma for milliseconds; tolerate a period.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	hours := totalMillis / 3_600_000
	totalMillis %= 3_600_000
	minutes := totalMillis / 60_000
	totalMillis %= 60_000
	secs := totalMillis / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
