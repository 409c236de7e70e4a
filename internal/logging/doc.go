// Package logging provides logging utilities for hoidev.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("rewriting hiera config", "source", src, "datadir", dir)
//	logging.Warn("build dir removal failed", "path", dir, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Setting %s = %s", key, value)
//	logging.UserSuccess("puppet apply finished")
//	logging.UserWarning("no facter plugin directories found under %s", base)
//	logging.UserError("hiera lookup failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
