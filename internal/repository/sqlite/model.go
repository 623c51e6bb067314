package sqlite

import "time"

// LogEntry represents a single row in the time_logs table
type LogEntry struct {
	ID        int64
	TaskName  string
	StartTime time.Time
	EndTime   *time.Time // Using pointer to allow NULL values while running
	Notes     string
}
