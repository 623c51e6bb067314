package domain

import (
	"time"
)

// Duration represents an elapsed interval broken into whole hours and
// minutes. Minutes are always in 0..59; seconds are discarded.
type Duration struct {
	Hours   int
	Minutes int
}

// IsZero returns true when both hours and minutes are zero.
func (d Duration) IsZero() bool {
	return d.Hours == 0 && d.Minutes == 0
}

// Between computes the duration between start and end.
// Missing inputs (zero start, nil or zero end) and negative intervals
// all yield a zero duration. The clamp is deliberate, not an error.
// The result is a pure function of its inputs and safe to recompute
// on every render.
func Between(start time.Time, end *time.Time) Duration {
	if start.IsZero() || end == nil || end.IsZero() {
		return Duration{}
	}
	diff := end.Sub(start)
	if diff < 0 {
		return Duration{}
	}
	secs := int64(diff / time.Second)
	return Duration{
		Hours:   int(secs / 3600),
		Minutes: int(secs/60) % 60,
	}
}

// Sum totals the durations of all entries, carrying minutes into hours.
// Addition is commutative, so the result does not depend on entry order.
func Sum(entries []*LogEntry) Duration {
	var hours, minutes int
	for _, entry := range entries {
		d := entry.Duration()
		hours += d.Hours
		minutes += d.Minutes
	}
	hours += minutes / 60
	minutes %= 60
	return Duration{Hours: hours, Minutes: minutes}
}
