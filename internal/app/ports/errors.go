package ports

import "errors"

// Shared repository sentinels. Usecases translate these into their own
// domain-specific errors where needed.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
