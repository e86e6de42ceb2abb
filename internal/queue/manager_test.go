package queue

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

// recordingFlusher запоминает записи, переданные на немедленную отправку
type recordingFlusher struct {
	entries []*models.QueueEntry
}

func (f *recordingFlusher) TryFlushEntry(ctx context.Context, entry *models.QueueEntry) {
	f.entries = append(f.entries, entry)
}

func newTestManager(store storage.QueueStorage) *Manager {
	return NewManager(store, slog.New(slog.DiscardHandler))
}

func TestManager_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and enqueues", func(t *testing.T) {
		store := &storage.QueueStorageMock{
			EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
				return nil
			},
		}
		m := newTestManager(store)

		entry, err := m.Add(ctx, "observation", "obs-1", models.OpCreate,
			models.Snapshot{"notes": "x"}, 2)
		require.NoError(t, err)

		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "observation", entry.EntityType)
		assert.Equal(t, "obs-1", entry.EntityID)
		assert.Equal(t, models.OpCreate, entry.Operation)
		assert.Equal(t, 2, entry.Priority)
		assert.False(t, entry.CreatedAt.IsZero())
		assert.Len(t, store.EnqueueCalls(), 1)
	})

	t.Run("same entity enqueued twice yields two entries", func(t *testing.T) {
		store := &storage.QueueStorageMock{
			EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
				return nil
			},
		}
		m := newTestManager(store)

		first, err := m.Add(ctx, "observation", "obs-1", models.OpUpdate, nil, 0)
		require.NoError(t, err)
		second, err := m.Add(ctx, "observation", "obs-1", models.OpUpdate, nil, 0)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, store.EnqueueCalls(), 2)
	})

	t.Run("validates arguments", func(t *testing.T) {
		store := &storage.QueueStorageMock{}
		m := newTestManager(store)

		_, err := m.Add(ctx, "", "obs-1", models.OpCreate, nil, 0)
		require.ErrorIs(t, err, storage.ErrInvalidRecord)

		_, err = m.Add(ctx, "observation", "", models.OpCreate, nil, 0)
		require.ErrorIs(t, err, storage.ErrInvalidRecord)

		_, err = m.Add(ctx, "observation", "obs-1", models.Operation("upsert"), nil, 0)
		require.ErrorIs(t, err, storage.ErrInvalidRecord)

		assert.Empty(t, store.EnqueueCalls())
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		storeErr := errors.New("disk full")
		store := &storage.QueueStorageMock{
			EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
				return storeErr
			},
		}
		m := newTestManager(store)

		_, err := m.Add(ctx, "observation", "obs-1", models.OpCreate, nil, 0)
		require.ErrorIs(t, err, storeErr)
	})
}

func TestManager_ImmediateFlushHook(t *testing.T) {
	ctx := context.Background()

	store := &storage.QueueStorageMock{
		EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
			return nil
		},
	}
	m := newTestManager(store)

	flusher := &recordingFlusher{}
	m.SetFlusher(flusher)

	entry, err := m.Add(ctx, "observation", "obs-1", models.OpCreate, nil, 0)
	require.NoError(t, err)

	// Свежая запись получает ровно одну немедленную попытку
	require.Len(t, flusher.entries, 1)
	assert.Same(t, entry, flusher.entries[0])
}

func TestManager_Counts(t *testing.T) {
	ctx := context.Background()

	store := &storage.QueueStorageMock{
		CountFunc: func(ctx context.Context) (int, error) {
			return 7, nil
		},
		PendingByTypeFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"observation": 5, "case": 2}, nil
		},
	}
	m := newTestManager(store)

	count, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	byType, err := m.PendingByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"observation": 5, "case": 2}, byType)
}
