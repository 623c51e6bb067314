package domain

import (
	"timelog/internal/repository/sqlite"
)

// LogEntryMapper handles conversion between domain and database LogEntry models.
type LogEntryMapper struct{}

// NewLogEntryMapper creates a new LogEntryMapper instance.
func NewLogEntryMapper() *LogEntryMapper {
	return &LogEntryMapper{}
}

// ToDatabase converts a domain LogEntry to a database LogEntry.
func (m *LogEntryMapper) ToDatabase(entry LogEntry) sqlite.LogEntry {
	return sqlite.LogEntry{
		ID:        entry.ID,
		TaskName:  entry.TaskName,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		Notes:     entry.Notes,
	}
}

// FromDatabase converts a database LogEntry to a domain LogEntry.
func (m *LogEntryMapper) FromDatabase(dbEntry sqlite.LogEntry) LogEntry {
	return LogEntry{
		ID:        dbEntry.ID,
		TaskName:  dbEntry.TaskName,
		StartTime: dbEntry.StartTime,
		EndTime:   dbEntry.EndTime,
		Notes:     dbEntry.Notes,
	}
}

// FromDatabaseSlice converts a slice of database LogEntries to domain LogEntries.
func (m *LogEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.LogEntry) []*LogEntry {
	entries := make([]*LogEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entry := m.FromDatabase(*dbEntry)
		entries[i] = &entry
	}
	return entries
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	LogEntry *LogEntryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		LogEntry: NewLogEntryMapper(),
	}
}
