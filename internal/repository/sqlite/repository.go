package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"timelog/internal/errors"
	"timelog/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Create operations
	CreateLogEntry(ctx context.Context, entry *LogEntry) error

	// Read operations
	GetLogEntry(ctx context.Context, id int64) (*LogEntry, error)
	ListLogEntries(ctx context.Context) ([]*LogEntry, error)
	FindRunningEntry(ctx context.Context) (*LogEntry, error)
	ListTaskNames(ctx context.Context) ([]string, error)

	// Update operations
	UpdateLogEntry(ctx context.Context, entry *LogEntry) error

	// Delete operations
	DeleteLogEntry(ctx context.Context, id int64) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance backed by the given file path
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// WAL keeps readers from blocking the single writer; the busy
	// timeout covers concurrent CLI invocations against the same file.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("set pragma", err)
		}
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// NewMemory creates an in-memory repository, used by tests
func NewMemory() (*SQLiteRepository, error) {
	return New(":memory:")
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateLogEntry creates a new log entry and assigns its generated ID
func (r *SQLiteRepository) CreateLogEntry(ctx context.Context, entry *LogEntry) error {
	query := `
	INSERT INTO time_logs (task_name, start_time, end_time, notes)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, entry.TaskName, FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime), entry.Notes)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetLogEntry retrieves a log entry by ID
func (r *SQLiteRepository) GetLogEntry(ctx context.Context, id int64) (*LogEntry, error) {
	query := `
	SELECT id, task_name, start_time, end_time, notes
	FROM time_logs
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanLogEntry, "log entry", fmt.Sprintf("%d", id), id)
}

// ListLogEntries retrieves all log entries, most recent start time first
func (r *SQLiteRepository) ListLogEntries(ctx context.Context) ([]*LogEntry, error) {
	query := `
	SELECT id, task_name, start_time, end_time, notes
	FROM time_logs
	ORDER BY start_time DESC`

	return QueryMultiple(ctx, r.db, query, ScanLogEntries, "log entries")
}

// FindRunningEntry returns the open entry (NULL end_time) with the most
// recent start time, or nil when no entry is running
func (r *SQLiteRepository) FindRunningEntry(ctx context.Context) (*LogEntry, error) {
	query := `
	SELECT id, task_name, start_time, end_time, notes
	FROM time_logs
	WHERE end_time IS NULL
	ORDER BY start_time DESC
	LIMIT 1`

	row := r.db.QueryRowContext(ctx, query)
	entry, err := ScanLogEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, HandleDatabaseError("scan running entry", err)
	}
	return entry, nil
}

// ListTaskNames retrieves the distinct task names seen so far
func (r *SQLiteRepository) ListTaskNames(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT task_name FROM time_logs ORDER BY task_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, HandleDatabaseError("query task names", err)
	}
	defer rows.Close()

	names, err := ScanTaskNames(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan task names", err)
	}
	return names, nil
}

// UpdateLogEntry updates an existing log entry
func (r *SQLiteRepository) UpdateLogEntry(ctx context.Context, entry *LogEntry) error {
	query := `
	UPDATE time_logs
	SET task_name = ?, start_time = ?, end_time = ?, notes = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "log entry", fmt.Sprintf("%d", entry.ID), entry.TaskName, FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime), entry.Notes, entry.ID)
}

// DeleteLogEntry deletes a log entry by ID
func (r *SQLiteRepository) DeleteLogEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM time_logs WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "log entry", fmt.Sprintf("%d", id), id)
}
