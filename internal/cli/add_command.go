package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timelog/internal/errors"
	"timelog/internal/format"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler

	start string
	end   string
	notes string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: tl add \"task name\" --start ...")
	}
	taskName := strings.Join(args, " ")

	if c.start == "" {
		return errors.NewInvalidInputError("start", "", "a start time is required")
	}
	startTime, err := parseTimeArg("start", c.start)
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}

	var endTime *time.Time
	if c.end != "" {
		t, err := parseTimeArg("end", c.end)
		if err != nil {
			return c.errorHandler.Handle("add entry", err)
		}
		endTime = &t
	}

	entry, err := c.app.api.CreateEntry(ctx, taskName, startTime, endTime, c.notes)
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}

	fmt.Fprintf(c.app.out, "Added entry %d: %s\n", entry.ID, format.EntryLine(entry, c.app.timeLayout()))
	return nil
}
