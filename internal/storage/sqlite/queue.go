package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

// Enqueue appends a new queue entry.
// CreatedAt is stamped automatically when unset.
func (s *Storage) Enqueue(ctx context.Context, entry *models.QueueEntry) error {
	if entry.ID == "" || entry.EntityType == "" || entry.EntityID == "" {
		return fmt.Errorf("%w: queue entry id, entity type and entity id are required", storage.ErrInvalidRecord)
	}
	if !entry.Operation.IsValid() {
		return fmt.Errorf("%w: unknown operation %q", storage.ErrInvalidRecord, entry.Operation)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal queue payload: %w", err)
	}

	query := `
		INSERT INTO sync_queue (
			id, entity_type, entity_id, operation, payload,
			attempts, priority, last_error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		entry.ID,
		entry.EntityType,
		entry.EntityID,
		string(entry.Operation),
		string(payload),
		entry.Attempts,
		entry.Priority,
		entry.LastError,
		entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue entry: %w", err)
	}

	return nil
}

// ListOrdered returns all queue entries sorted by the queue invariant.
// Порядок обеспечивает индекс idx_sync_queue_order.
func (s *Storage) ListOrdered(ctx context.Context) ([]*models.QueueEntry, error) {
	query := `
		SELECT id, entity_type, entity_id, operation, payload,
		       attempts, priority, last_error, created_at
		FROM sync_queue
		ORDER BY priority DESC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.QueueEntry

	for rows.Next() {
		entry := &models.QueueEntry{}
		var operation, payload string
		var createdAt int64

		if err := rows.Scan(
			&entry.ID,
			&entry.EntityType,
			&entry.EntityID,
			&operation,
			&payload,
			&entry.Attempts,
			&entry.Priority,
			&entry.LastError,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}

		if err := json.Unmarshal([]byte(payload), &entry.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal queue payload: %w", err)
		}

		entry.Operation = models.Operation(operation)
		entry.CreatedAt = time.Unix(0, createdAt).UTC()

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue entries: %w", err)
	}

	return entries, nil
}

// UpdateEntry persists attempt/error mutations on an existing entry
func (s *Storage) UpdateEntry(ctx context.Context, entry *models.QueueEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal queue payload: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sync_queue
		SET payload = ?, attempts = ?, priority = ?, last_error = ?
		WHERE id = ?
	`, string(payload), entry.Attempts, entry.Priority, entry.LastError, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update queue entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// DeleteEntry removes a queue entry after a confirmed remote success
func (s *Storage) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// Count returns the total number of queued entries
func (s *Storage) Count(ctx context.Context) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_queue`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}

	return count, nil
}

// PendingByType returns queued-entry counts grouped by entity type
func (s *Storage) PendingByType(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_type, COUNT(*)
		FROM sync_queue
		GROUP BY entity_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to group queue entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var entityType string
		var count int
		if err := rows.Scan(&entityType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan queue group: %w", err)
		}
		counts[entityType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue groups: %w", err)
	}

	return counts, nil
}
