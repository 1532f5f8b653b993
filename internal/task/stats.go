package task

import "sync/atomic"

// Stats is a point-in-time snapshot of the runner's counters. The counters
// are monotonically non-decreasing; reads are eventually consistent with
// respect to concurrent workers.
type Stats struct {
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Total     int64 `json:"total"`
}

// counters hold the live atomic values behind Stats. Workers increment
// completed/failed, Submit increments total, and Snapshot reads never
// block either.
type counters struct {
	completed atomic.Int64
	failed    atomic.Int64
	total     atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Completed: c.completed.Load(),
		Failed:    c.failed.Load(),
		Total:     c.total.Load(),
	}
}
