package cli

import (
	"context"
	"fmt"
	"strings"

	"timelog/internal/errors"
	"timelog/internal/format"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "start", "usage: tl start \"task name\"")
	}
	taskName := strings.Join(args, " ")

	// Report the timer being replaced, if any
	running, err := c.app.api.RunningEntry(ctx)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	entry, err := c.app.api.StartTimer(ctx, taskName)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	if running != nil {
		fmt.Fprintf(c.app.out, "Stopped timer for: %s\n", running.TaskName)
	}
	fmt.Fprintf(c.app.out, "Started timer for: %s at %s\n",
		entry.TaskName, format.Timestamp(entry.StartTime, c.app.timeLayout()))
	return nil
}
