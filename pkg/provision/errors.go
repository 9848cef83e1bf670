package provision

import "errors"

// Error definitions for provision package.
var (
	ErrUnknownRuntime = errors.New("no provisioner registered for language runtime")
	ErrSetupFailed    = errors.New("runtime setup failed")
)
