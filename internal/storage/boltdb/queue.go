package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

// Enqueue appends a new queue entry.
// CreatedAt is stamped automatically when unset.
func (s *Storage) Enqueue(ctx context.Context, entry *models.QueueEntry) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if entry.ID == "" || entry.EntityType == "" || entry.EntityID == "" {
		return fmt.Errorf("%w: queue entry id, entity type and entity id are required", storage.ErrInvalidRecord)
	}
	if !entry.Operation.IsValid() {
		return fmt.Errorf("%w: unknown operation %q", storage.ErrInvalidRecord, entry.Operation)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketQueue).Put([]byte(entry.ID), data); err != nil {
			return fmt.Errorf("failed to save queue entry: %w", err)
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// ListOrdered returns all queue entries sorted by the queue invariant:
// priority descending, then creation time ascending.
// Сортировка выполняется в памяти: очередь ограничена локальными правками.
func (s *Storage) ListOrdered(ctx context.Context) ([]*models.QueueEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entries []*models.QueueEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).ForEach(func(k, v []byte) error {
			var entry models.QueueEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal queue entry: %w", err)
			}
			entries = append(entries, &entry)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})

	return entries, nil
}

// UpdateEntry persists attempt/error mutations on an existing entry
func (s *Storage) UpdateEntry(ctx context.Context, entry *models.QueueEntry) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)

		if bucket.Get([]byte(entry.ID)) == nil {
			return storage.ErrEntryNotFound
		}

		if err := bucket.Put([]byte(entry.ID), data); err != nil {
			return fmt.Errorf("failed to update queue entry: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// DeleteEntry removes a queue entry after a confirmed remote success
func (s *Storage) DeleteEntry(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrEntryNotFound
		}

		return bucket.Delete([]byte(id))
	})

	if err != nil {
		return err
	}

	return nil
}

// Count returns the total number of queued entries
func (s *Storage) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	count := 0

	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketQueue).Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}

	return count, nil
}

// PendingByType returns queued-entry counts grouped by entity type
func (s *Storage) PendingByType(ctx context.Context) (map[string]int, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	counts := make(map[string]int)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).ForEach(func(k, v []byte) error {
			var entry models.QueueEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal queue entry: %w", err)
			}
			counts[entry.EntityType]++
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to group queue entries: %w", err)
	}

	return counts, nil
}
