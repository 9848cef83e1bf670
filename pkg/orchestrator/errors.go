// Package orchestrator drives a full run: resolves environments, computes
// file sets, schedules hook executions honoring serialization constraints,
// and aggregates results into one verdict.
package orchestrator

import "errors"

// Error definitions for orchestrator package.
var (
	ErrConfigMissing   = errors.New("configuration is required")
	ErrEnvironment     = errors.New("environment unavailable")
	ErrFileMatch       = errors.New("file filter evaluation failed")
	ErrMissingRunEntry = errors.New("hook has no entry after manifest merge")
)
