package ledger

import (
	"strings"
	"time"
)

// Status represents the lifecycle of an episode run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusMerging   Status = "merging"
	StatusMerged    Status = "merged"
	StatusChunking  Status = "chunking"
	StatusChunked   Status = "chunked"
	StatusAligning  Status = "aligning"
	StatusAligned   Status = "aligned"
	StatusPlanning  Status = "planning"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusMerging,
	StatusMerged,
	StatusChunking,
	StatusChunked,
	StatusAligning,
	StatusAligned,
	StatusPlanning,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus maps user input to a known status.
func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := statusSet[status]
	return status, ok
}

// Terminal reports whether a run in this status is finished.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Run is one episode run persisted in SQLite.
type Run struct {
	ID            int64
	SeriesID      string
	EpisodeID     string
	RunID         string
	Status        Status
	ErrorMessage  string
	ScenesPath    string
	ChunksPath    string
	TimelinePath  string
	FramePlanPath string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Summary aggregates run counts per lifecycle bucket.
type Summary struct {
	Total     int
	Pending   int
	Running   int
	Completed int
	Failed    int
}
