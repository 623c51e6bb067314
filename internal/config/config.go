package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the time log application
type Config struct {
	Database    DatabaseConfig
	Time        TimeConfig
	Validation  ValidationConfig
	Export      ExportConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TL_DB_DIR"`
	Filename       string        `env:"TL_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TL_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TL_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TL_DB_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `env:"TL_TIME_DISPLAY_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength int `env:"TL_VALIDATION_TASK_NAME_MIN"`
	TaskNameMaxLength int `env:"TL_VALIDATION_TASK_NAME_MAX"`
}

// ExportConfig holds export file configuration
type ExportConfig struct {
	Dir      string `env:"TL_EXPORT_DIR"`
	Filename string `env:"TL_EXPORT_FILENAME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TL_APP_TIMEOUT"`
	Verbose bool          `env:"TL_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".timelog")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "timelog.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04",
		},
		Validation: ValidationConfig{
			TaskNameMinLength: 1,
			TaskNameMaxLength: 255,
		},
		Export: ExportConfig{
			Dir:      ".",
			Filename: "time_logs.csv",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetExportPath returns the full path to the default export file
func (c *Config) GetExportPath() string {
	return filepath.Join(c.Export.Dir, c.Export.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TL_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Time configuration
	if format := os.Getenv("TL_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}

	// Validation configuration
	if minLen := os.Getenv("TL_VALIDATION_TASK_NAME_MIN"); minLen != "" {
		c.Validation.TaskNameMinLength = ParseIntWithFallback(minLen, c.Validation.TaskNameMinLength)
	}
	if maxLen := os.Getenv("TL_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// Export configuration
	if dir := os.Getenv("TL_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if filename := os.Getenv("TL_EXPORT_FILENAME"); filename != "" {
		c.Export.Filename = filename
	}

	// Application configuration
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}

	// Validate export configuration
	if c.Export.Dir == "" {
		return &ConfigError{Field: "export.dir", Message: "export directory cannot be empty"}
	}
	if c.Export.Filename == "" {
		return &ConfigError{Field: "export.filename", Message: "export filename cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
