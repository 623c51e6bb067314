package cli

import (
	"context"
	"fmt"

	"timelog/internal/errors"
	"timelog/internal/format"
)

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler

	task     string
	start    string
	end      string
	notes    string
	notesSet bool
	clearEnd bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the edit command. Fields not named by a flag keep their
// stored values.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tl edit <id> [flags]")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}
	if c.end != "" && c.clearEnd {
		return errors.NewInvalidInputError("end", c.end, "--end and --clear-end are mutually exclusive")
	}

	entry, err := c.app.api.GetEntry(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	taskName := entry.TaskName
	if c.task != "" {
		taskName = c.task
	}

	startTime := entry.StartTime
	if c.start != "" {
		startTime, err = parseTimeArg("start", c.start)
		if err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
	}

	endTime := entry.EndTime
	switch {
	case c.clearEnd:
		endTime = nil
	case c.end != "":
		t, err := parseTimeArg("end", c.end)
		if err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
		endTime = &t
	case endTime != nil:
		// Copy so the update does not alias the fetched entry
		t := *endTime
		endTime = &t
	}

	notes := entry.Notes
	if c.notesSet {
		notes = c.notes
	}

	updated, err := c.app.api.UpdateEntry(ctx, id, taskName, startTime, endTime, notes)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	fmt.Fprintf(c.app.out, "Updated entry %d: %s\n", updated.ID, format.EntryLine(updated, c.app.timeLayout()))
	return nil
}
