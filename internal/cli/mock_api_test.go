package cli

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"timelog/internal/domain"
	"timelog/internal/errors"
)

// MockAPI is an in-memory API implementation for command handler tests.
// Errors can be injected per operation via failWith.
type MockAPI struct {
	entries  map[int64]*domain.LogEntry
	nextID   int64
	failWith map[string]error
}

func NewMockAPI() *MockAPI {
	return &MockAPI{
		entries:  make(map[int64]*domain.LogEntry),
		nextID:   1,
		failWith: make(map[string]error),
	}
}

func (m *MockAPI) FailWith(operation string, err error) {
	m.failWith[operation] = err
}

func (m *MockAPI) fail(operation string) error {
	return m.failWith[operation]
}

func (m *MockAPI) CreateEntry(ctx context.Context, taskName string, startTime time.Time, endTime *time.Time, notes string) (*domain.LogEntry, error) {
	if err := m.fail("create"); err != nil {
		return nil, err
	}
	taskName = strings.TrimSpace(taskName)
	if taskName == "" {
		return nil, errors.NewValidationError("task name is required", nil)
	}
	entry := &domain.LogEntry{
		ID:        m.nextID,
		TaskName:  taskName,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     notes,
	}
	m.entries[entry.ID] = entry
	m.nextID++
	return copyEntry(entry), nil
}

func (m *MockAPI) GetEntry(ctx context.Context, id int64) (*domain.LogEntry, error) {
	if err := m.fail("get"); err != nil {
		return nil, err
	}
	entry, ok := m.entries[id]
	if !ok {
		return nil, errors.NewNotFoundError("log entry", "unknown id")
	}
	return copyEntry(entry), nil
}

func (m *MockAPI) ListEntries(ctx context.Context) ([]*domain.LogEntry, error) {
	if err := m.fail("list"); err != nil {
		return nil, err
	}
	entries := make([]*domain.LogEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, copyEntry(entry))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})
	return entries, nil
}

func (m *MockAPI) UpdateEntry(ctx context.Context, id int64, taskName string, startTime time.Time, endTime *time.Time, notes string) (*domain.LogEntry, error) {
	if err := m.fail("update"); err != nil {
		return nil, err
	}
	entry, ok := m.entries[id]
	if !ok {
		return nil, errors.NewNotFoundError("log entry", "unknown id")
	}
	entry.TaskName = strings.TrimSpace(taskName)
	entry.StartTime = startTime
	entry.EndTime = endTime
	entry.Notes = notes
	return copyEntry(entry), nil
}

func (m *MockAPI) DeleteEntry(ctx context.Context, id int64) error {
	if err := m.fail("delete"); err != nil {
		return err
	}
	if _, ok := m.entries[id]; !ok {
		return errors.NewNotFoundError("log entry", "unknown id")
	}
	delete(m.entries, id)
	return nil
}

func (m *MockAPI) StartTimer(ctx context.Context, taskName string) (*domain.LogEntry, error) {
	if err := m.fail("start"); err != nil {
		return nil, err
	}
	now := time.Now()
	for _, entry := range m.entries {
		if entry.EndTime == nil {
			end := now
			entry.EndTime = &end
		}
	}
	return m.CreateEntry(ctx, taskName, now, nil, "")
}

func (m *MockAPI) StopTimer(ctx context.Context) (*domain.LogEntry, error) {
	if err := m.fail("stop"); err != nil {
		return nil, err
	}
	for _, entry := range m.entries {
		if entry.EndTime == nil {
			end := time.Now()
			entry.EndTime = &end
			return copyEntry(entry), nil
		}
	}
	return nil, errors.NewNotFoundError("running entry", "none")
}

func (m *MockAPI) RunningEntry(ctx context.Context) (*domain.LogEntry, error) {
	if err := m.fail("running"); err != nil {
		return nil, err
	}
	var latest *domain.LogEntry
	for _, entry := range m.entries {
		if entry.EndTime != nil {
			continue
		}
		if latest == nil || entry.StartTime.After(latest.StartTime) {
			latest = entry
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyEntry(latest), nil
}

func (m *MockAPI) TaskNames(ctx context.Context) ([]string, error) {
	if err := m.fail("names"); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, entry := range m.entries {
		if !seen[entry.TaskName] {
			seen[entry.TaskName] = true
			names = append(names, entry.TaskName)
		}
	}
	sort.Strings(names)
	return names, nil
}

func copyEntry(entry *domain.LogEntry) *domain.LogEntry {
	c := *entry
	if entry.EndTime != nil {
		end := *entry.EndTime
		c.EndTime = &end
	}
	return &c
}

// setupTestApp returns an App backed by a MockAPI with captured output.
func setupTestApp(t *testing.T) (*App, *MockAPI, *bytes.Buffer) {
	t.Helper()

	mock := NewMockAPI()
	out := &bytes.Buffer{}
	app := &App{
		api: mock,
		out: out,
		in:  strings.NewReader(""),
	}
	return app, mock, out
}
