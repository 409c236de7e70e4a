// Package errors provides typed errors with exit codes for hoidev.
//
// # Error Types
//
// HoiError is the base error type that wraps an error with an exit code:
//
//	type HoiError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess       = 0  // Success
//	ExitPrecondition  = 11 // User/logic precondition failure
//	ExitArgument      = 12 // Malformed or missing CLI invocation
//	ExitConfiguration = 13 // Selected data-source root does not exist
//	ExitInput         = 14 // Required source file or directory is absent
//	ExitRun           = 15 // External tool failed or expected output missing
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.ArgumentError("exactly one of --apply, --noop, --hiera, --facter is required")
//	errors.InputError("local hiera file not found: %s", path)
//	errors.RunError("puppet apply", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
