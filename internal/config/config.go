package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration options for the application
type Config struct {
	Database   DatabaseConfig
	Sound      SoundConfig
	Validation ValidationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path           string `env:"FF_DB"` // full path override
	Dir            string `env:"FF_DB_DIR"`
	Filename       string `env:"FF_DB_FILENAME"`
	DirPermissions uint32 `env:"FF_DB_DIR_PERMISSIONS"`
}

// SoundConfig holds the alert sound configuration
type SoundConfig struct {
	Dir string `env:"FF_SOUND_DIR"`
}

// ValidationConfig holds the session input limits
type ValidationConfig struct {
	TitleMinLength     int `env:"FF_VALIDATION_TITLE_MIN"`
	TitleMaxLength     int `env:"FF_VALIDATION_TITLE_MAX"`
	DurationMinMinutes int `env:"FF_VALIDATION_DURATION_MIN"`
	DurationMaxMinutes int `env:"FF_VALIDATION_DURATION_MAX"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".ff")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDir,
			Filename:       "ff.db",
			DirPermissions: 0755,
		},
		Sound: SoundConfig{
			Dir: filepath.Join(defaultDir, "sounds"),
		},
		Validation: ValidationConfig{
			TitleMinLength:     1,
			TitleMaxLength:     255,
			DurationMinMinutes: 1,
			DurationMaxMinutes: 600,
		},
	}
}

// GetDatabasePath returns the full path to the database file. An explicit
// FF_DB path wins over the dir/filename pair.
func (c *Config) GetDatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// EnsureDatabaseDir creates the database directory if needed. A full-path
// override is assumed to point at an existing location.
func (c *Config) EnsureDatabaseDir() error {
	if c.Database.Path != "" {
		return nil
	}
	return os.MkdirAll(c.Database.Dir, os.FileMode(c.Database.DirPermissions))
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if path := os.Getenv("FF_DB"); path != "" {
		c.Database.Path = path
	}
	if dir := os.Getenv("FF_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("FF_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := os.Getenv("FF_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Sound configuration
	if dir := os.Getenv("FF_SOUND_DIR"); dir != "" {
		c.Sound.Dir = dir
	}

	// Validation configuration
	if minLen := os.Getenv("FF_VALIDATION_TITLE_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.TitleMinLength = n
		}
	}
	if maxLen := os.Getenv("FF_VALIDATION_TITLE_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TitleMaxLength = n
		}
	}
	if minDur := os.Getenv("FF_VALIDATION_DURATION_MIN"); minDur != "" {
		if n, err := strconv.Atoi(minDur); err == nil {
			c.Validation.DurationMinMinutes = n
		}
	}
	if maxDur := os.Getenv("FF_VALIDATION_DURATION_MAX"); maxDur != "" {
		if n, err := strconv.Atoi(maxDur); err == nil {
			c.Validation.DurationMaxMinutes = n
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	}
	if c.Sound.Dir == "" {
		return &ConfigError{Field: "sound.dir", Message: "sound directory cannot be empty"}
	}
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}
	if c.Validation.DurationMinMinutes < 1 {
		return &ConfigError{Field: "validation.duration_min_minutes", Message: "duration minimum must be at least 1 minute"}
	}
	if c.Validation.DurationMaxMinutes < c.Validation.DurationMinMinutes {
		return &ConfigError{Field: "validation.duration_max_minutes", Message: "duration maximum must be greater than minimum"}
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
