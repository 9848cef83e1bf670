// Package envcache maps environment identities to provisioned, reusable
// execution environments. Provisioning happens on first use, is deduplicated
// across concurrent callers (single-flight) and persisted across runs.
package envcache

import "errors"

// Error definitions for envcache package.
var (
	ErrCacheClosed     = errors.New("environment cache is closed")
	ErrProvisionFailed = errors.New("environment provisioning failed")
)
