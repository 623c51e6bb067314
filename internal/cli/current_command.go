package cli

import (
	"context"
	"fmt"

	"timelog/internal/format"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the current command
func (c *CurrentCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.RunningEntry(ctx)
	if err != nil {
		return c.errorHandler.Handle("show running timer", err)
	}
	if entry == nil {
		fmt.Fprintln(c.app.out, "No timer is running")
		return nil
	}

	fmt.Fprintf(c.app.out, "%s (started %s)\n",
		entry.TaskName, format.Timestamp(entry.StartTime, c.app.timeLayout()))
	return nil
}
