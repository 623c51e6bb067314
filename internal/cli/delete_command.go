package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"timelog/internal/errors"
	"timelog/internal/format"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler

	skipConfirm bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tl delete <id>")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	entry, err := c.app.api.GetEntry(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	if !c.skipConfirm {
		fmt.Fprintf(c.app.out, "Delete entry %d (%s)? [y/N] ", entry.ID, entry.TaskName)
		if !c.confirmed() {
			fmt.Fprintln(c.app.out, "Cancelled")
			return nil
		}
	}

	if err := c.app.api.DeleteEntry(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	fmt.Fprintf(c.app.out, "Deleted entry %d: %s\n", entry.ID, format.EntryLine(entry, c.app.timeLayout()))
	return nil
}

// confirmed reads one line and accepts y or yes, case-insensitive.
func (c *DeleteCommand) confirmed() bool {
	line, err := bufio.NewReader(c.app.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
