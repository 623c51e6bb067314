package cli

import (
	"context"
	"fmt"

	"timelog/internal/format"
)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the stop command. Stopping when no timer is running is
// not an error.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.StopTimer(ctx)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			fmt.Fprintln(c.app.out, "No timer is running")
			return nil
		}
		return c.errorHandler.Handle("stop timer", err)
	}

	fmt.Fprintf(c.app.out, "Stopped timer for: %s (%s)\n",
		entry.TaskName, format.Duration(entry.Duration()))
	return nil
}
