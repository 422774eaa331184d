package db

import "time"

// Run modes.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// Outcome statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Run represents a row in the runs table.
type Run struct {
	ID             string
	Mode           string
	Source         string
	RecordingStart int
	Before         int
	After          int
	Duration       float64
	StartedAt      time.Time
	FinishedAt     *time.Time
	Succeeded      int
	Failed         int
	ReportPath     string
}

// Outcome represents a row in the outcomes table.
type Outcome struct {
	ID         int64
	RunID      string
	Line       int
	Expression string
	Label      string
	Start      float64
	End        float64
	OutputPath string
	Filesize   int64
	Status     string
	Error      string
}
