package tui

import (
	"fmt"
	"time"

	"timelog/internal/domain"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewEntries
)

var viewNames = []string{"Timer", "Entries"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type entriesLoadedMsg struct {
	entries []*domain.LogEntry
	err     error
}

type namesLoadedMsg struct {
	names []string
}

type runningLoadedMsg struct {
	entry *domain.LogEntry
}

type entrySavedMsg struct {
	entry *domain.LogEntry
}

type timerStartedMsg struct {
	entry *domain.LogEntry
}

type timerStoppedMsg struct {
	entry *domain.LogEntry
}

type entryDeletedMsg struct {
	id int64
}

type deleteFailedMsg struct {
	entry *domain.LogEntry
	index int
	err   error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatElapsed renders a live timer as hh:mm:ss.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
