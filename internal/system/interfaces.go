// Package system provides abstractions for OS operations to enable testing.
package system

import "context"

// CommandExecutor abstracts external tool execution for testability.
type CommandExecutor interface {
	// Output runs a command and returns its captured stdout. The command's
	// stderr is passed through to the process stderr.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// OutputWithEnv is Output with extra environment variables appended to
	// the inherited environment.
	OutputWithEnv(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

	// RunInteractive runs a command with stdin/stdout/stderr connected to
	// the terminal.
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// defaultExecutor is the real OS implementation.
var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}
