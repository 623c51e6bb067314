package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"timelog/internal/domain"
	"timelog/internal/format"
)

// DefaultJSONFileName is the file written when no path is given.
const DefaultJSONFileName = "time_logs.json"

type jsonEntry struct {
	ID        int64   `json:"id"`
	TaskName  string  `json:"task_name"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Duration  string  `json:"duration"`
	Notes     string  `json:"notes,omitempty"`
}

// ToJSON writes all entries to a JSON file at path. Times are RFC3339.
func ToJSON(entries []*domain.LogEntry, path string) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	out := make([]jsonEntry, 0, len(entries))
	for _, entry := range entries {
		var endTime *string
		if entry.EndTime != nil {
			s := entry.EndTime.Format(time.RFC3339)
			endTime = &s
		}
		out = append(out, jsonEntry{
			ID:        entry.ID,
			TaskName:  entry.TaskName,
			StartTime: entry.StartTime.Format(time.RFC3339),
			EndTime:   endTime,
			Duration:  format.Duration(entry.Duration()),
			Notes:     entry.Notes,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
