package history

import "time"

// BatchRecord summarizes one journaled batch run.
type BatchRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Language   string
	Stored     int
	Skipped    int
	NotFound   int
	Failed     int
}

// Inputs is the total number of inputs the batch processed.
func (b BatchRecord) Inputs() int {
	return b.Stored + b.Skipped + b.NotFound + b.Failed
}

// InputRecord is one journaled per-input result.
type InputRecord struct {
	Position int
	Input    string
	Target   string
	Outcome  string
	Service  string
	Bytes    int
	Error    string
}
