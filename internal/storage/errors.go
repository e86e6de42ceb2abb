package storage

import "errors"

// Common storage errors
var (
	// ErrEntityNotFound indicates that entity record was not found
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntryNotFound indicates that queue entry was not found
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrStorageClosed indicates that storage is closed or unavailable
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidRecord indicates that a record failed basic validation
	// before it reached the storage layer
	ErrInvalidRecord = errors.New("invalid record")
)
