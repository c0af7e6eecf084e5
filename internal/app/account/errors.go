// internal/app/account/errors.go
package account

import "errors"

var (
	// ErrNotFound reports a referenced guild or game that does not
	// exist (or that the viewer is not a member of).
	ErrNotFound = errors.New("not found")

	// ErrPermission reports a viewer lacking the required role or
	// admin standing for the attempted operation.
	ErrPermission = errors.New("permission denied")
)
