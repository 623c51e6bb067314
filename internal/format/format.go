package format

import (
	"fmt"
	"strings"
	"time"

	"timelog/internal/domain"
)

// DefaultTimeLayout is the layout used when no display format is configured.
const DefaultTimeLayout = "2006-01-02 15:04"

// RunningLabel is shown in place of an end time for open entries.
const RunningLabel = "running"

// Duration renders a duration for display. Both units show when both
// are zero ("0h 0m"); a zero unit is omitted when the other is set
// ("3h", "45m"); otherwise both render ("2h 30m").
func Duration(d domain.Duration) string {
	if d.Hours == 0 && d.Minutes == 0 {
		return "0h 0m"
	}
	if d.Minutes == 0 {
		return fmt.Sprintf("%dh", d.Hours)
	}
	if d.Hours == 0 {
		return fmt.Sprintf("%dm", d.Minutes)
	}
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// Timestamp renders a time in the local timezone using the given
// layout, falling back to DefaultTimeLayout when layout is empty.
func Timestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return t.Local().Format(layout)
}

// TimestampPtr renders an optional time, returning RunningLabel for nil.
func TimestampPtr(t *time.Time, layout string) string {
	if t == nil {
		return RunningLabel
	}
	return Timestamp(*t, layout)
}

// EntryLine renders a single entry as one line:
// startTime - endTime (duration): taskName [notes]
func EntryLine(entry *domain.LogEntry, layout string) string {
	line := fmt.Sprintf("%s - %s (%s): %s",
		Timestamp(entry.StartTime, layout),
		TimestampPtr(entry.EndTime, layout),
		Duration(entry.Duration()),
		entry.TaskName,
	)
	if entry.Notes != "" {
		line += fmt.Sprintf(" [%s]", entry.Notes)
	}
	return line
}

// EntriesList renders entries one per line followed by a totals footer.
// Open entries contribute a zero duration to the total.
func EntriesList(entries []*domain.LogEntry, layout string) string {
	if len(entries) == 0 {
		return "No entries found"
	}

	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(EntryLine(entry, layout))
		b.WriteString("\n")
	}

	noun := "entries"
	if len(entries) == 1 {
		noun = "entry"
	}
	b.WriteString(fmt.Sprintf("Total: %s (%d %s)", Duration(domain.Sum(entries)), len(entries), noun))
	return b.String()
}
