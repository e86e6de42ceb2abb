package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

// SaveEntity creates or updates an entity record.
// CreatedAt/UpdatedAt are stamped automatically when unset.
func (s *Storage) SaveEntity(ctx context.Context, record *models.EntityRecord) error {
	if record.ID == "" || record.Type == "" {
		return fmt.Errorf("%w: entity id and type are required", storage.ErrInvalidRecord)
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.SyncStatus == "" {
		record.SyncStatus = models.StatusPending
	}

	fields, err := json.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal entity fields: %w", err)
	}

	query := `
		INSERT INTO entities (entity_type, id, fields, sync_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, id) DO UPDATE SET
			fields = excluded.fields,
			sync_status = excluded.sync_status,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		record.Type,
		record.ID,
		string(fields),
		string(record.SyncStatus),
		record.CreatedAt.UnixNano(),
		record.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	return nil
}

// GetEntity retrieves an entity record by type and id
// Returns storage.ErrEntityNotFound if record doesn't exist
func (s *Storage) GetEntity(ctx context.Context, entityType, id string) (*models.EntityRecord, error) {
	query := `
		SELECT entity_type, id, fields, sync_status, created_at, updated_at
		FROM entities
		WHERE entity_type = ? AND id = ?
	`

	record := &models.EntityRecord{}
	var fields string
	var status string
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, entityType, id).Scan(
		&record.Type,
		&record.ID,
		&fields,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	if err := json.Unmarshal([]byte(fields), &record.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity fields: %w", err)
	}

	record.SyncStatus = models.SyncStatus(status)
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	record.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return record, nil
}

// DeleteEntity removes an entity record (explicit cleanup only)
func (s *Storage) DeleteEntity(ctx context.Context, entityType, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entities WHERE entity_type = ? AND id = ?`, entityType, id)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrEntityNotFound
	}

	return nil
}

// SetSyncStatus atomically updates the sync status of a single record.
// Один UPDATE — атомарность обеспечивает SQLite.
func (s *Storage) SetSyncStatus(ctx context.Context, entityType, id string, status models.SyncStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown sync status %q", storage.ErrInvalidRecord, status)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE entities
		SET sync_status = ?, updated_at = ?
		WHERE entity_type = ? AND id = ?
	`, string(status), time.Now().UTC().UnixNano(), entityType, id)
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrEntityNotFound
	}

	return nil
}

// ListEntities returns all records of the given type
func (s *Storage) ListEntities(ctx context.Context, entityType string) ([]*models.EntityRecord, error) {
	query := `
		SELECT entity_type, id, fields, sync_status, created_at, updated_at
		FROM entities
		WHERE entity_type = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var records []*models.EntityRecord

	for rows.Next() {
		record := &models.EntityRecord{}
		var fields, status string
		var createdAt, updatedAt int64

		if err := rows.Scan(
			&record.Type,
			&record.ID,
			&fields,
			&status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}

		if err := json.Unmarshal([]byte(fields), &record.Fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entity fields: %w", err)
		}

		record.SyncStatus = models.SyncStatus(status)
		record.CreatedAt = time.Unix(0, createdAt).UTC()
		record.UpdatedAt = time.Unix(0, updatedAt).UTC()

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}

	return records, nil
}

// CountByStatus returns the number of records of the given type in the
// given sync status
func (s *Storage) CountByStatus(ctx context.Context, entityType string, status models.SyncStatus) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM entities
		WHERE entity_type = ? AND sync_status = ?
	`, entityType, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}

	return count, nil
}
