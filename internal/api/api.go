package api

import (
	"context"
	"strings"
	"time"

	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/repository/sqlite"
	"timelog/internal/validation"
)

// API defines the interface for all log entry operations.
type API interface {
	// Log entry operations
	CreateEntry(ctx context.Context, taskName string, startTime time.Time, endTime *time.Time, notes string) (*domain.LogEntry, error)
	GetEntry(ctx context.Context, id int64) (*domain.LogEntry, error)
	ListEntries(ctx context.Context) ([]*domain.LogEntry, error)
	UpdateEntry(ctx context.Context, id int64, taskName string, startTime time.Time, endTime *time.Time, notes string) (*domain.LogEntry, error)
	DeleteEntry(ctx context.Context, id int64) error

	// Timer operations
	StartTimer(ctx context.Context, taskName string) (*domain.LogEntry, error)
	StopTimer(ctx context.Context) (*domain.LogEntry, error)
	RunningEntry(ctx context.Context) (*domain.LogEntry, error)

	// Suggestion support
	TaskNames(ctx context.Context) ([]string, error)
}

type apiImpl struct {
	repo           sqlite.Repository
	mapper         *domain.Mapper
	entryValidator *validation.EntryValidator
}

// New creates a new API instance.
func New(repo sqlite.Repository) API {
	return &apiImpl{
		repo:           repo,
		mapper:         domain.NewMapper(),
		entryValidator: validation.NewEntryValidator(),
	}
}

// CreateEntry validates and stores a new log entry. A nil end time
// stores an open entry.
func (a *apiImpl) CreateEntry(ctx context.Context, taskName string, startTime time.Time, endTime *time.Time, notes string) (*domain.LogEntry, error) {
	if err := a.entryValidator.ValidateForCreation(taskName, startTime); err != nil {
		return nil, err
	}

	dbEntry := &sqlite.LogEntry{
		TaskName:  trimmed(taskName),
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     notes,
	}
	if err := a.repo.CreateLogEntry(ctx, dbEntry); err != nil {
		return nil, err
	}
	domainEntry := a.mapper.LogEntry.FromDatabase(*dbEntry)
	return &domainEntry, nil
}

func (a *apiImpl) GetEntry(ctx context.Context, id int64) (*domain.LogEntry, error) {
	if err := a.entryValidator.ValidateEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := a.repo.GetLogEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	domainEntry := a.mapper.LogEntry.FromDatabase(*dbEntry)
	return &domainEntry, nil
}

// ListEntries returns all log entries, most recent start time first.
func (a *apiImpl) ListEntries(ctx context.Context) ([]*domain.LogEntry, error) {
	dbEntries, err := a.repo.ListLogEntries(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.LogEntry.FromDatabaseSlice(dbEntries), nil
}

// UpdateEntry validates and replaces the stored fields of an entry,
// returning the updated entry.
func (a *apiImpl) UpdateEntry(ctx context.Context, id int64, taskName string, startTime time.Time, endTime *time.Time, notes string) (*domain.LogEntry, error) {
	if err := a.entryValidator.ValidateForUpdate(id, taskName, startTime); err != nil {
		return nil, err
	}

	dbEntry, err := a.repo.GetLogEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	dbEntry.TaskName = trimmed(taskName)
	dbEntry.StartTime = startTime
	dbEntry.EndTime = endTime
	dbEntry.Notes = notes
	if err := a.repo.UpdateLogEntry(ctx, dbEntry); err != nil {
		return nil, err
	}
	domainEntry := a.mapper.LogEntry.FromDatabase(*dbEntry)
	return &domainEntry, nil
}

func (a *apiImpl) DeleteEntry(ctx context.Context, id int64) error {
	if err := a.entryValidator.ValidateEntryID(id); err != nil {
		return err
	}

	return a.repo.DeleteLogEntry(ctx, id)
}

// StartTimer stops any running entry and opens a new one starting now.
func (a *apiImpl) StartTimer(ctx context.Context, taskName string) (*domain.LogEntry, error) {
	now := time.Now()
	if err := a.entryValidator.ValidateForCreation(taskName, now); err != nil {
		return nil, err
	}

	running, err := a.repo.FindRunningEntry(ctx)
	if err != nil {
		return nil, err
	}
	if running != nil {
		running.EndTime = &now
		if err := a.repo.UpdateLogEntry(ctx, running); err != nil {
			return nil, err
		}
	}

	dbEntry := &sqlite.LogEntry{
		TaskName:  trimmed(taskName),
		StartTime: now,
	}
	if err := a.repo.CreateLogEntry(ctx, dbEntry); err != nil {
		return nil, err
	}
	domainEntry := a.mapper.LogEntry.FromDatabase(*dbEntry)
	return &domainEntry, nil
}

// StopTimer closes the running entry with an end time of now and
// returns the finished entry.
func (a *apiImpl) StopTimer(ctx context.Context) (*domain.LogEntry, error) {
	running, err := a.repo.FindRunningEntry(ctx)
	if err != nil {
		return nil, err
	}
	if running == nil {
		return nil, errors.NewNotFoundError("running entry", "none")
	}

	now := time.Now()
	running.EndTime = &now
	if err := a.repo.UpdateLogEntry(ctx, running); err != nil {
		return nil, err
	}
	domainEntry := a.mapper.LogEntry.FromDatabase(*running)
	return &domainEntry, nil
}

// RunningEntry returns the open entry, or nil when no timer is running.
func (a *apiImpl) RunningEntry(ctx context.Context) (*domain.LogEntry, error) {
	running, err := a.repo.FindRunningEntry(ctx)
	if err != nil {
		return nil, err
	}
	if running == nil {
		return nil, nil
	}
	domainEntry := a.mapper.LogEntry.FromDatabase(*running)
	return &domainEntry, nil
}

// TaskNames returns the distinct task names recorded so far.
func (a *apiImpl) TaskNames(ctx context.Context) ([]string, error) {
	return a.repo.ListTaskNames(ctx)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
