package model

import "time"

// Task is one actionable item found in an outline file.
type Task struct {
	Description string
	Scheduled   *time.Time // nil when the task carries no schedule
	Line        int        // 1-based line where the task text began
}

// IsScheduled reports whether the task has a schedule attached.
func (t Task) IsScheduled() bool {
	return t.Scheduled != nil && !t.Scheduled.IsZero()
}

// DueEvent is a scheduled task that has entered the due-soon window.
type DueEvent struct {
	Task Task
	ID   string
}
