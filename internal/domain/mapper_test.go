package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timelog/internal/repository/sqlite"
)

func TestLogEntryMapper_ToDatabase(t *testing.T) {
	mapper := NewLogEntryMapper()
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	entry := LogEntry{
		ID:        7,
		TaskName:  "Review",
		StartTime: start,
		EndTime:   &end,
		Notes:     "PR 42",
	}

	dbEntry := mapper.ToDatabase(entry)

	assert.Equal(t, entry.ID, dbEntry.ID)
	assert.Equal(t, entry.TaskName, dbEntry.TaskName)
	assert.Equal(t, entry.StartTime, dbEntry.StartTime)
	assert.Equal(t, entry.EndTime, dbEntry.EndTime)
	assert.Equal(t, entry.Notes, dbEntry.Notes)
}

func TestLogEntryMapper_FromDatabase(t *testing.T) {
	mapper := NewLogEntryMapper()
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	dbEntry := sqlite.LogEntry{
		ID:        3,
		TaskName:  "Standup",
		StartTime: start,
		EndTime:   nil,
		Notes:     "",
	}

	entry := mapper.FromDatabase(dbEntry)

	assert.Equal(t, dbEntry.ID, entry.ID)
	assert.Equal(t, dbEntry.TaskName, entry.TaskName)
	assert.Equal(t, dbEntry.StartTime, entry.StartTime)
	assert.Nil(t, entry.EndTime)
	assert.True(t, entry.IsRunning())
}

func TestLogEntryMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewLogEntryMapper()
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	dbEntries := []*sqlite.LogEntry{
		{ID: 1, TaskName: "a", StartTime: start},
		{ID: 2, TaskName: "b", StartTime: start.Add(time.Hour)},
	}

	entries := mapper.FromDatabaseSlice(dbEntries)

	assert.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "b", entries[1].TaskName)

	empty := mapper.FromDatabaseSlice(nil)
	assert.Empty(t, empty)
}

func TestNewMapper(t *testing.T) {
	mapper := NewMapper()
	assert.NotNil(t, mapper.LogEntry)
}
