package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"timelog/internal/errors"
	"timelog/internal/export"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler

	format string
	path   string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the export command. An empty log prints a message and
// writes nothing.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	entries, err := c.app.api.ListEntries(ctx)
	if err != nil {
		return c.errorHandler.Handle("export entries", err)
	}

	path := c.path
	writer := export.ToCSV
	switch strings.ToLower(c.format) {
	case "", "csv":
		if path == "" {
			path = c.defaultPath(export.DefaultCSVFileName)
		}
	case "json":
		writer = export.ToJSON
		if path == "" {
			path = c.defaultPath(export.DefaultJSONFileName)
		}
	default:
		return errors.NewInvalidInputError("format", c.format, "supported formats: csv, json")
	}

	if err := writer(entries, path); err != nil {
		if err == export.ErrNoEntries {
			fmt.Fprintln(c.app.out, "nothing to export")
			return nil
		}
		return c.errorHandler.Handle("export entries", err)
	}

	fmt.Fprintf(c.app.out, "Exported %d entries to %s\n", len(entries), path)
	return nil
}

// defaultPath resolves the destination from the export configuration,
// swapping in the filename that matches the chosen format.
func (c *ExportCommand) defaultPath(filename string) string {
	if c.app.config == nil {
		return filename
	}
	if filename == export.DefaultCSVFileName && c.app.config.Export.Filename != "" {
		return c.app.config.GetExportPath()
	}
	return filepath.Join(c.app.config.Export.Dir, filename)
}
