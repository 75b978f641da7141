// Package config loads settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// EnvFile is the dotenv filename looked up in the working and config directories.
	EnvFile = ".env"

	// Environment keys.
	EnvAPIBase       = "TASKFLOW_API_BASE"
	EnvLegacyAPIBase = "VITE_API_BASE"
	EnvTimeout       = "TASKFLOW_TIMEOUT"
	EnvLogFormat     = "TASKFLOW_LOG_FORMAT"
	EnvLogLevel      = "TASKFLOW_LOG_LEVEL"
)

// ErrNoAPIBase is returned by Validate when no endpoint is configured.
var ErrNoAPIBase = errors.New("API base URL not configured (set " + EnvAPIBase + ")")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIBase is the task collection endpoint. It is used as an opaque prefix.
	APIBase string

	// Timeout bounds each HTTP request. Zero means no client-side timeout.
	Timeout time.Duration

	// LogFormat is "text" or "json".
	LogFormat string

	// LogLevel is a logrus level name.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// Load reads .env files and then the environment.
//
// If envFile is set it must exist. Otherwise ./.env and <config dir>/.env are
// loaded when present. Variables already set in the process environment are
// never overridden by file values.
func Load(envFile string) (*Config, error) {
	cfg := &Config{Dir: DefaultConfigDir()}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		for _, p := range []string{EnvFile, cfg.EnvPath()} {
			if err := loadOptional(p); err != nil {
				return nil, err
			}
		}
	}

	cfg.APIBase = os.Getenv(EnvAPIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = os.Getenv(EnvLegacyAPIBase)
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid %s: %s", EnvTimeout, raw)
		}
		cfg.Timeout = d
	}

	cfg.LogFormat = getEnvOrDefault(EnvLogFormat, "text")
	cfg.LogLevel = getEnvOrDefault(EnvLogLevel, "warn")

	return cfg, nil
}

// Validate checks the settings a backend connection needs.
func (c *Config) Validate() error {
	if c.APIBase == "" {
		return ErrNoAPIBase
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the .env file in the config directory.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

func loadOptional(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
