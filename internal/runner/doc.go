// Package runner orchestrates one harness run.
//
// A run builds an ephemeral environment in a private temporary directory —
// the rewritten hiera configuration and, for apply/noop, the synthesized
// manifest — then hands off to exactly one external tool: puppet apply,
// hiera, or facter. The build directory is removed on every exit path; its
// removal is deferred immediately after creation, so failures, tool errors,
// and context cancellation all unwind through it.
//
// No state survives a run and no retries are performed; the first failure is
// the run's result.
package runner
