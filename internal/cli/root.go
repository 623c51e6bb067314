package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/repository/sqlite"
	"timelog/internal/tui"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	api    api.API
	repo   sqlite.Repository
}

// NewRootCommand creates the root cobra command with global flags. The
// repository is opened lazily, after flag overrides have been applied
// to the configuration.
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{config: cfg}
	root.build()
	return root
}

// NewRootCommandWithAPI creates a root command bound to an existing API
// instance. Used in tests to avoid opening a database.
func NewRootCommandWithAPI(cfg *config.Config, apiInstance api.API) *RootCommand {
	root := &RootCommand{config: cfg, api: apiInstance}
	root.build()
	return root
}

func (r *RootCommand) build() {
	r.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A personal time logging application",
		Long: `Time Log (tl) keeps a local log of how you spend your time.

Run tl with no arguments to open the interactive interface: a timer
form for starting and stopping work, and a table of logged entries
with inline editing, deletion and export.

Subcommands cover the same operations for scripting:

  tl start "Writing report"              # Start the timer
  tl stop                                # Stop the running timer
  tl add "Meeting" --start "2025-08-25 09:00" --end "2025-08-25 09:45"
  tl list                                # List entries with totals
  tl current                             # Show the running timer
  tl edit 12 --notes "follow-up sent"    # Edit an entry by id
  tl delete 12                           # Delete an entry by id
  tl export --format csv                 # Export to time_logs.csv

Configuration follows this priority order: command-line flags >
environment variables > defaults.

  TL_DB_DIR                 Database directory (default: ~/.timelog)
  TL_DB_FILENAME            Database filename (default: timelog.db)
  TL_DB_QUERY_TIMEOUT       Query timeout (default: 10s)
  TL_DB_WRITE_TIMEOUT       Write timeout (default: 5s)
  TL_TIME_DISPLAY_FORMAT    Time format (default: 2006-01-02 15:04)
  TL_VALIDATION_TASK_NAME_MIN  Min task name length (default: 1)
  TL_VALIDATION_TASK_NAME_MAX  Max task name length (default: 255)
  TL_EXPORT_DIR             Export directory (default: .)
  TL_EXPORT_FILENAME        Export filename (default: time_logs.csv)
  TL_APP_TIMEOUT            Application timeout (default: 60s)
  TL_DEBUG                  Debug logging to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := r.applyFlagOverrides(); err != nil {
				return err
			}
			return r.openAPI()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(r.api, r.config)
		},
	}

	r.addGlobalFlags()
	r.addSubcommands()
}

// Execute runs the root command and closes the repository afterwards.
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.repo != nil {
		if closeErr := r.repo.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// openAPI creates the repository and API once the final configuration
// is known. A pre-injected API is left untouched.
func (r *RootCommand) openAPI() error {
	if r.api != nil {
		return nil
	}
	repo, err := config.CreateRepository(r.config)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	r.repo = repo
	r.api = api.New(repo)
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TL_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TL_DB_WRITE_TIMEOUT)")

	flags.String("time-format", "", "Time display format (overrides TL_TIME_DISPLAY_FORMAT)")

	flags.Int("task-name-min-length", 0, "Minimum task name length (overrides TL_VALIDATION_TASK_NAME_MIN)")
	flags.Int("task-name-max-length", 0, "Maximum task name length (overrides TL_VALIDATION_TASK_NAME_MAX)")

	flags.String("export-dir", "", "Export directory (overrides TL_EXPORT_DIR)")
	flags.String("export-filename", "", "Export filename (overrides TL_EXPORT_FILENAME)")

	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start [task name]",
		Short: "Start the timer for a task",
		Long:  "Start the timer for a named task. A timer that is already running is stopped first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewStartCommand(NewApp(r.api, r.config)).Execute(ctx, args)
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewStopCommand(NewApp(r.api, r.config)).Execute(ctx, args)
		},
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the running timer, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewCurrentCommand(NewApp(r.api, r.config)).Execute(ctx, args)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Add a completed entry",
		Long: `Add an entry without running the timer.

Times accept "2006-01-02 15:04", RFC 3339, a bare date, or a bare
time of day (taken as today).

Examples:
  tl add "Meeting" --start "2025-08-25 09:00" --end "2025-08-25 09:45"
  tl add "Review" --start 14:00 --end 15:30 --notes "PR 42"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewAddCommand(NewApp(r.api, r.config))
			handler.start, _ = cmd.Flags().GetString("start")
			handler.end, _ = cmd.Flags().GetString("end")
			handler.notes, _ = cmd.Flags().GetString("notes")
			return handler.Execute(ctx, args)
		},
	}
	addCmd.Flags().String("start", "", "Start time (required)")
	addCmd.Flags().String("end", "", "End time (omit for a still-open entry)")
	addCmd.Flags().String("notes", "", "Notes for the entry")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries with totals",
		Long:  "List all entries, newest first, with a total duration footer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewListCommand(NewApp(r.api, r.config)).Execute(ctx, args)
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an entry by id",
		Long: `Edit fields of an existing entry. Only the flags you pass change.

Examples:
  tl edit 12 --task "Planning"
  tl edit 12 --end "2025-08-25 17:30" --notes "wrapped up"
  tl edit 12 --clear-end`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewEditCommand(NewApp(r.api, r.config))
			handler.task, _ = cmd.Flags().GetString("task")
			handler.start, _ = cmd.Flags().GetString("start")
			handler.end, _ = cmd.Flags().GetString("end")
			handler.notes, _ = cmd.Flags().GetString("notes")
			handler.notesSet = cmd.Flags().Changed("notes")
			handler.clearEnd, _ = cmd.Flags().GetBool("clear-end")
			return handler.Execute(ctx, args)
		},
	}
	editCmd.Flags().String("task", "", "New task name")
	editCmd.Flags().String("start", "", "New start time")
	editCmd.Flags().String("end", "", "New end time")
	editCmd.Flags().String("notes", "", "New notes")
	editCmd.Flags().Bool("clear-end", false, "Clear the end time, reopening the entry")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an entry by id",
		Long:  "Delete an entry. Asks for confirmation unless --yes is passed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewDeleteCommand(NewApp(r.api, r.config))
			handler.skipConfirm, _ = cmd.Flags().GetBool("yes")
			return handler.Execute(ctx, args)
		},
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without confirmation")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries to a file",
		Long: `Export all entries to a CSV or JSON file.

The default destination comes from the export configuration
(time_logs.csv in the current directory).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			handler := NewExportCommand(NewApp(r.api, r.config))
			handler.format, _ = cmd.Flags().GetString("format")
			handler.path, _ = cmd.Flags().GetString("out")
			return handler.Execute(ctx, args)
		},
	}
	exportCmd.Flags().String("format", "csv", "Export format: csv or json")
	exportCmd.Flags().String("out", "", "Destination file (defaults to the configured export path)")

	r.cmd.AddCommand(
		startCmd,
		stopCmd,
		currentCmd,
		addCmd,
		listCmd,
		editCmd,
		deleteCmd,
		exportCmd,
	)
}

// commandContext returns a context bounded by the application timeout.
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	timeout := 60 * time.Second
	if r.config != nil {
		timeout = r.config.Application.Timeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// applyFlagOverrides updates the configuration with values from
// command-line flags.
func (r *RootCommand) applyFlagOverrides() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if queryTimeout, _ := flags.GetDuration("db-query-timeout"); queryTimeout > 0 {
		r.config.Database.QueryTimeout = queryTimeout
	}
	if writeTimeout, _ := flags.GetDuration("db-write-timeout"); writeTimeout > 0 {
		r.config.Database.WriteTimeout = writeTimeout
	}

	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		r.config.Time.DisplayFormat = timeFormat
	}

	if minLength, _ := flags.GetInt("task-name-min-length"); minLength > 0 {
		r.config.Validation.TaskNameMinLength = minLength
	}
	if maxLength, _ := flags.GetInt("task-name-max-length"); maxLength > 0 {
		r.config.Validation.TaskNameMaxLength = maxLength
	}

	if exportDir, _ := flags.GetString("export-dir"); exportDir != "" {
		r.config.Export.Dir = exportDir
	}
	if exportFilename, _ := flags.GetString("export-filename"); exportFilename != "" {
		r.config.Export.Filename = exportFilename
	}

	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}
