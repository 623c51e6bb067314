package domain

import (
	"time"
)

// LogEntry represents one logged task interval in the domain model.
// This is a pure domain model without database-specific concerns.
type LogEntry struct {
	ID        int64
	TaskName  string
	StartTime time.Time
	EndTime   *time.Time
	Notes     string
}

// NewLogEntry creates a new LogEntry for the given task and start time.
func NewLogEntry(taskName string, startTime time.Time) LogEntry {
	return LogEntry{
		TaskName:  taskName,
		StartTime: startTime,
	}
}

// IsRunning returns true if the entry has no end time yet.
func (e LogEntry) IsRunning() bool {
	return e.EndTime == nil
}

// Stop sets the end time for the entry.
func (e LogEntry) Stop(endTime time.Time) LogEntry {
	e.EndTime = &endTime
	return e
}

// Duration returns the clamped duration of the entry. Open entries
// (no end time) report a zero duration; live elapsed display is a
// presentation concern, not a property of the record.
func (e LogEntry) Duration() Duration {
	return Between(e.StartTime, e.EndTime)
}

// IsValid checks if the entry satisfies the required-field rules:
// a non-empty task name and a start time.
func (e LogEntry) IsValid() bool {
	if e.TaskName == "" {
		return false
	}
	if e.StartTime.IsZero() {
		return false
	}
	return true
}
