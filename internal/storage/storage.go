// Package storage defines the Local Store contract: durable keyed storage
// for cached entity snapshots plus the pending-operation sync queue.
package storage

import (
	"context"

	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out entitystorage_mock.go . EntityStorage

// EntityStorage defines interface for storing cached entity snapshots
type EntityStorage interface {
	// SaveEntity stores or updates an entity record.
	// CreatedAt/UpdatedAt are stamped automatically when unset.
	SaveEntity(ctx context.Context, record *models.EntityRecord) error

	// GetEntity retrieves an entity record by type and id
	// Returns ErrEntityNotFound if record doesn't exist
	GetEntity(ctx context.Context, entityType, id string) (*models.EntityRecord, error)

	// DeleteEntity removes an entity record.
	// Used only by explicit user-triggered cleanup.
	DeleteEntity(ctx context.Context, entityType, id string) error

	// SetSyncStatus atomically updates the sync status of a single record.
	// This is the only entity mutation performed by the orchestrator.
	SetSyncStatus(ctx context.Context, entityType, id string, status models.SyncStatus) error

	// ListEntities returns all records of the given type
	ListEntities(ctx context.Context, entityType string) ([]*models.EntityRecord, error)

	// CountByStatus returns the number of records of the given type in the
	// given sync status
	CountByStatus(ctx context.Context, entityType string, status models.SyncStatus) (int, error)
}

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines interface for the durable pending-operation queue
type QueueStorage interface {
	// Enqueue appends a new queue entry.
	// CreatedAt is stamped automatically when unset.
	Enqueue(ctx context.Context, entry *models.QueueEntry) error

	// ListOrdered returns all queue entries sorted by the queue invariant:
	// priority descending, then creation time ascending
	ListOrdered(ctx context.Context) ([]*models.QueueEntry, error)

	// UpdateEntry persists attempt/error mutations on an existing entry
	// Returns ErrEntryNotFound if entry doesn't exist
	UpdateEntry(ctx context.Context, entry *models.QueueEntry) error

	// DeleteEntry removes a queue entry after a confirmed remote success
	DeleteEntry(ctx context.Context, id string) error

	// Count returns the total number of queued entries
	Count(ctx context.Context) (int, error)

	// PendingByType returns queued-entry counts grouped by entity type
	PendingByType(ctx context.Context) (map[string]int, error)
}

// Storage combines entity and queue storage behind a single handle
type Storage interface {
	EntityStorage
	QueueStorage

	// Close releases the underlying database
	Close() error
}
