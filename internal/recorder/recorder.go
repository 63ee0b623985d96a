package recorder

import "time"

// Run is one finished analysis attempt.
type Run struct {
	ID              string
	Timestamp       time.Time
	Source          string
	StartDate       string
	EndDate         string
	StartTime       string
	EndTime         string
	Interval        string
	AutoTime        bool
	Success         bool
	ModelCount      int
	HistoricalCount int
	Action          string // "BUY", "SELL", "HOLD" or empty on failure
	TotalScore      float64
	Error           string
}

// Recorder persists the analysis run history.
type Recorder interface {
	RecordRun(run *Run) error
	RecentRuns(limit int) ([]Run, error)
	Close() error
}
