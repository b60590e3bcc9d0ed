package db

import "errors"

var (
	// ErrNotFound is returned when a run ID is not found in the store
	ErrNotFound = errors.New("not found")
)
