// ABOUTME: Sentinel errors returned by the storage layer.
// ABOUTME: Callers match them with errors.Is through wrapped errors.
package storage

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDate is returned when a second workout is added for a date.
	ErrDuplicateDate = errors.New("workout already exists for date")

	// ErrConflict is returned when a workout changed between read and write.
	ErrConflict = errors.New("workout modified concurrently")
)
