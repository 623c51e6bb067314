package cli

import (
	"context"
	"fmt"

	"timelog/internal/domain"
	"timelog/internal/format"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command. Entries come back newest first and
// each line carries the entry id for use with edit and delete.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	entries, err := c.app.api.ListEntries(ctx)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No entries found")
		return nil
	}

	layout := c.app.timeLayout()
	for _, entry := range entries {
		fmt.Fprintf(c.app.out, "%4d  %s\n", entry.ID, format.EntryLine(entry, layout))
	}

	noun := "entries"
	if len(entries) == 1 {
		noun = "entry"
	}
	fmt.Fprintf(c.app.out, "Total: %s (%d %s)\n",
		format.Duration(domain.Sum(entries)), len(entries), noun)
	return nil
}
