package history

import "errors"

var (
	// ErrNotFound is returned when a requested run doesn't exist
	ErrNotFound = errors.New("run not found")
)
