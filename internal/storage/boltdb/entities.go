package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

// SaveEntity stores or updates an entity record.
// CreatedAt/UpdatedAt are stamped automatically when unset.
func (s *Storage) SaveEntity(ctx context.Context, record *models.EntityRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if record.ID == "" || record.Type == "" {
		return fmt.Errorf("%w: entity id and type are required", storage.ErrInvalidRecord)
	}

	// Проставляем временные метки если не заданы
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.SyncStatus == "" {
		record.SyncStatus = models.StatusPending
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal entity record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.Bucket(bucketEntities).CreateBucketIfNotExists([]byte(record.Type))
		if err != nil {
			return fmt.Errorf("failed to create type bucket: %w", err)
		}

		if err := bucket.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to save entity: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetEntity retrieves an entity record by type and id
func (s *Storage) GetEntity(ctx context.Context, entityType, id string) (*models.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		record = &models.EntityRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteEntity removes an entity record (explicit cleanup only)
func (s *Storage) DeleteEntity(ctx context.Context, entityType, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrEntityNotFound
		}

		return bucket.Delete([]byte(id))
	})

	if err != nil {
		return err
	}

	return nil
}

// SetSyncStatus atomically updates the sync status of a single record.
// Запись читается и перезаписывается внутри одной bbolt транзакции.
func (s *Storage) SetSyncStatus(ctx context.Context, entityType, id string, status models.SyncStatus) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown sync status %q", storage.ErrInvalidRecord, status)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		var record models.EntityRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		record.SyncStatus = status
		record.UpdatedAt = time.Now().UTC()

		updated, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("failed to marshal updated entity: %w", err)
		}

		if err := bucket.Put([]byte(id), updated); err != nil {
			return fmt.Errorf("failed to save updated entity: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// ListEntities returns all records of the given type
func (s *Storage) ListEntities(ctx context.Context, entityType string) ([]*models.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.EntityRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			// Нет bucket - возвращаем пустой список
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.EntityRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}
			records = append(records, &record)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	return records, nil
}

// CountByStatus returns the number of records of the given type in the
// given sync status
func (s *Storage) CountByStatus(ctx context.Context, entityType string, status models.SyncStatus) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	count := 0

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities).Bucket([]byte(entityType))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.EntityRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}

			if record.SyncStatus == status {
				count++
			}

			return nil
		})
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}

	return count, nil
}
