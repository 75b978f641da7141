// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference).
	UserError = 1

	// ConfigError indicates missing or invalid configuration.
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
