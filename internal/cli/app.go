package cli

import (
	"io"
	"os"

	"timelog/internal/api"
	"timelog/internal/config"
)

// App carries the dependencies shared by all command handlers.
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	in     io.Reader
}

// NewApp creates a new command handler context writing to stdout.
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    os.Stdout,
		in:     os.Stdin,
	}
}

// timeLayout returns the configured display layout for timestamps.
func (a *App) timeLayout() string {
	if a.config != nil {
		return a.config.Time.DisplayFormat
	}
	return ""
}
