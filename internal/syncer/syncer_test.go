package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/api"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
	pkgapi "github.com/iudanet/fieldsync/pkg/api"
)

// newTestSyncer собирает оркестратор с моками и быстрыми таймаутами
func newTestSyncer(t *testing.T, entities *storage.EntityStorageMock, queue *storage.QueueStorageMock, remote *api.ClientAPIMock) *Syncer {
	t.Helper()

	cfg := config.Default()
	cfg.SyncInterval = config.Duration(time.Hour)
	cfg.ConflictWaitTimeout = config.Duration(100 * time.Millisecond)
	cfg.DrainPause = config.Duration(time.Millisecond)

	s := New(cfg, entities, queue, remote, slog.New(slog.DiscardHandler))
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

// forceOnline помечает движок онлайн без запуска auto-sync тикера
func forceOnline(s *Syncer) {
	s.mu.Lock()
	s.online = true
	s.mu.Unlock()
}

// eventRecorder собирает события движка
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func (r *eventRecorder) count(eventType EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func makeEntry(id, entityID string, op models.Operation, priority int, createdAt time.Time) *models.QueueEntry {
	return &models.QueueEntry{
		ID:         id,
		EntityType: "observation",
		EntityID:   entityID,
		Operation:  op,
		Payload:    models.Snapshot{"id": entityID, "notes": "local"},
		Priority:   priority,
		CreatedAt:  createdAt,
	}
}

// quietEntityStore возвращает мок, молча принимающий статусные обновления
func quietEntityStore() *storage.EntityStorageMock {
	return &storage.EntityStorageMock{
		SetSyncStatusFunc: func(ctx context.Context, entityType, id string, status models.SyncStatus) error {
			return nil
		},
	}
}

func okRemote() *api.ClientAPIMock {
	return &api.ClientAPIMock{
		SendFunc: func(ctx context.Context, req pkgapi.SyncOpRequest) (*pkgapi.SyncOpResponse, error) {
			return &pkgapi.SyncOpResponse{Status: pkgapi.StatusOK}, nil
		},
		FetchSnapshotFunc: func(ctx context.Context, entityType, entityID string) (models.Snapshot, error) {
			return nil, nil
		},
	}
}

func TestSyncAll_SkippedWhenOffline(t *testing.T) {
	queue := &storage.QueueStorageMock{}
	s := newTestSyncer(t, quietEntityStore(), queue, okRemote())

	result, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Empty(t, queue.ListOrderedCalls(), "offline drain must not touch the queue")
}

func TestSyncAll_DrainsInOrder(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	entries := []*models.QueueEntry{
		makeEntry("e-1", "obs-1", models.OpCreate, 5, base),
		makeEntry("e-2", "obs-2", models.OpCreate, 0, base),
		makeEntry("e-3", "obs-3", models.OpCreate, 0, base.Add(time.Minute)),
	}

	var deleted []string
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return entries, nil
		},
		DeleteEntryFunc: func(ctx context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}

	var sentIDs []string
	remote := okRemote()
	remote.SendFunc = func(ctx context.Context, req pkgapi.SyncOpRequest) (*pkgapi.SyncOpResponse, error) {
		sentIDs = append(sentIDs, req.EntityID)
		return &pkgapi.SyncOpResponse{Status: pkgapi.StatusOK}, nil
	}

	s := newTestSyncer(t, quietEntityStore(), queue, remote)
	forceOnline(s)

	rec := &eventRecorder{}
	defer s.Subscribe(rec.record)()

	result, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Synced)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []string{"obs-1", "obs-2", "obs-3"}, sentIDs)
	assert.Equal(t, []string{"e-1", "e-2", "e-3"}, deleted)
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.LastSync().IsZero())

	assert.Equal(t, 1, rec.count(EventSyncStarted))
	assert.Equal(t, 3, rec.count(EventItemSynced))
	assert.Equal(t, 1, rec.count(EventSyncCompleted))
}

func TestSyncAll_SkipsExhaustedEntries(t *testing.T) {
	exhausted := makeEntry("e-1", "obs-1", models.OpCreate, 0, time.Now().UTC())
	exhausted.Attempts = 5

	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return []*models.QueueEntry{exhausted}, nil
		},
	}

	remote := okRemote()
	s := newTestSyncer(t, quietEntityStore(), queue, remote)
	forceOnline(s)

	result, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Synced)
	assert.Empty(t, remote.SendCalls(), "exhausted entries are never re-sent")
}

func TestSyncAll_TransientFailureIncrementsAttempts(t *testing.T) {
	entry := makeEntry("e-1", "obs-1", models.OpCreate, 0, time.Now().UTC())

	var updated *models.QueueEntry
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return []*models.QueueEntry{entry}, nil
		},
		UpdateEntryFunc: func(ctx context.Context, e *models.QueueEntry) error {
			updated = e
			return nil
		},
		DeleteEntryFunc: func(ctx context.Context, id string) error {
			t.Fatal("failed entry must not be deleted")
			return nil
		},
	}

	remote := okRemote()
	remote.SendFunc = func(ctx context.Context, req pkgapi.SyncOpRequest) (*pkgapi.SyncOpResponse, error) {
		return nil, &api.ServerError{StatusCode: 503, Message: "maintenance"}
	}

	s := newTestSyncer(t, quietEntityStore(), queue, remote)
	forceOnline(s)

	rec := &eventRecorder{}
	defer s.Subscribe(rec.record)()

	result, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.Attempts)
	assert.Contains(t, updated.LastError, "maintenance")
	assert.Equal(t, 1, rec.count(EventItemFailed))
	assert.Equal(t, 0, rec.count(EventEntityFailed))
}

func TestSyncAll_PermanentFailureExhaustsImmediately(t *testing.T) {
	entry := makeEntry("e-1", "obs-1", models.OpCreate, 0, time.Now().UTC())

	var failedStatus models.SyncStatus
	entities := &storage.EntityStorageMock{
		SetSyncStatusFunc: func(ctx context.Context, entityType, id string, status models.SyncStatus) error {
			failedStatus = status
			return nil
		},
	}

	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return []*models.QueueEntry{entry}, nil
		},
		UpdateEntryFunc: func(ctx context.Context, e *models.QueueEntry) error {
			return nil
		},
	}

	remote := okRemote()
	remote.SendFunc = func(ctx context.Context, req pkgapi.SyncOpRequest) (*pkgapi.SyncOpResponse, error) {
		return nil, &api.ServerError{StatusCode: 422, Message: "bad payload"}
	}

	s := newTestSyncer(t, entities, queue, remote)
	forceOnline(s)

	rec := &eventRecorder{}
	defer s.Subscribe(rec.record)()

	_, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	// Ошибка валидации не лечится повторами: лимит сжигается сразу
	assert.Equal(t, 5, entry.Attempts)
	assert.Equal(t, models.StatusFailed, failedStatus)
	assert.Equal(t, 1, rec.count(EventEntityFailed))
	assert.Len(t, remote.SendCalls(), 1)
}

func TestSyncAll_FifthFailureMarksEntityFailed(t *testing.T) {
	entry := makeEntry("e-1", "obs-1", models.OpCreate, 0, time.Now().UTC())
	entry.Attempts = 4

	var statuses []models.SyncStatus
	entities := &storage.EntityStorageMock{
		SetSyncStatusFunc: func(ctx context.Context, entityType, id string, status models.SyncStatus) error {
			statuses = append(statuses, status)
			return nil
		},
	}

	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return []*models.QueueEntry{entry}, nil
		},
		UpdateEntryFunc: func(ctx context.Context, e *models.QueueEntry) error {
			return nil
		},
		DeleteEntryFunc: func(ctx context.Context, id string) error {
			t.Fatal("exhausted entry must stay queued for operator attention")
			return nil
		},
	}

	remote := okRemote()
	remote.SendFunc = func(ctx context.Context, req pkgapi.SyncOpRequest) (*pkgapi.SyncOpResponse, error) {
		return nil, errors.New("connection refused")
	}

	s := newTestSyncer(t, entities, queue, remote)
	forceOnline(s)

	_, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, entry.Attempts)
	assert.Equal(t, []models.SyncStatus{models.StatusFailed}, statuses)
}

func TestSyncAll_QueueReadFailure(t *testing.T) {
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return nil, errors.New("database closed")
		},
	}

	s := newTestSyncer(t, quietEntityStore(), queue, okRemote())
	forceOnline(s)

	result, err := s.SyncAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateError, s.State())
	assert.NotEmpty(t, result.Errors)
}

func TestSyncAll_SecondDrainIsSkipped(t *testing.T) {
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return nil, nil
		},
	}

	s := newTestSyncer(t, quietEntityStore(), queue, okRemote())
	forceOnline(s)

	var nested *Result
	dispose := s.Subscribe(func(event Event) {
		if event.Type == EventSyncStarted {
			// Попытка второго прохода изнутри первого
			r, err := s.SyncAll(context.Background())
			require.NoError(t, err)
			nested = r
		}
	})
	defer dispose()

	result, err := s.SyncAll(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	require.NotNil(t, nested)
	assert.True(t, nested.Skipped, "at most one drain at a time")
}

func TestTryFlushEntry(t *testing.T) {
	t.Run("declines when offline", func(t *testing.T) {
		remote := okRemote()
		s := newTestSyncer(t, quietEntityStore(), &storage.QueueStorageMock{}, remote)

		s.TryFlushEntry(context.Background(), makeEntry("e-1", "obs-1", models.OpCreate, 0, time.Now().UTC()))
		assert.Empty(t, remote.SendCalls())
	})

	t.Run("sends immediately when online", func(t *testing.T) {
		queue := &storage.QueueStorageMock{
			DeleteEntryFunc: func(ctx context.Context, id string) error {
				return nil
			},
		}
		remote := okRemote()
		s := newTestSyncer(t, quietEntityStore(), queue, remote)
		forceOnline(s)

		s.TryFlushEntry(context.Background(), makeEntry("e-1", "obs-1", models.OpCreate, 0, time.Now().UTC()))

		assert.Len(t, remote.SendCalls(), 1)
		assert.Len(t, queue.DeleteEntryCalls(), 1)
	})
}

func TestSetOnlineOffline(t *testing.T) {
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return nil, nil
		},
	}

	s := newTestSyncer(t, quietEntityStore(), queue, okRemote())

	rec := &eventRecorder{}
	defer s.Subscribe(rec.record)()

	ctx := context.Background()

	s.SetOnline(ctx)
	assert.True(t, s.Online())
	// Восстановление связи сразу запускает полный проход
	assert.NotEmpty(t, queue.ListOrderedCalls())

	// Повторный SetOnline — no-op
	s.SetOnline(ctx)
	assert.Equal(t, 1, rec.count(EventOnline))

	s.SetOffline()
	assert.False(t, s.Online())
	assert.Equal(t, 1, rec.count(EventOffline))

	// Повторный SetOffline — no-op
	s.SetOffline()
	assert.Equal(t, 1, rec.count(EventOffline))
}

func TestHandleForeground(t *testing.T) {
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return nil, nil
		},
	}

	s := newTestSyncer(t, quietEntityStore(), queue, okRemote())

	// Оффлайн: сигнал игнорируется
	s.HandleForeground(context.Background())
	assert.Empty(t, queue.ListOrderedCalls())

	forceOnline(s)
	s.HandleForeground(context.Background())
	assert.Len(t, queue.ListOrderedCalls(), 1)
}

func TestSubscribe_DisposerRemovesHandler(t *testing.T) {
	s := newTestSyncer(t, quietEntityStore(), &storage.QueueStorageMock{}, okRemote())

	rec := &eventRecorder{}
	dispose := s.Subscribe(rec.record)

	s.emit(Event{Type: EventOnline})
	assert.Equal(t, 1, rec.count(EventOnline))

	dispose()
	s.emit(Event{Type: EventOnline})
	assert.Equal(t, 1, rec.count(EventOnline), "disposed handler must not fire")
}

func TestConfirmSynced_ToleratesMissingEntity(t *testing.T) {
	// Для delete-операций локальной записи уже нет
	entry := makeEntry("e-1", "obs-1", models.OpDelete, 0, time.Now().UTC())

	entities := &storage.EntityStorageMock{
		SetSyncStatusFunc: func(ctx context.Context, entityType, id string, status models.SyncStatus) error {
			return storage.ErrEntityNotFound
		},
	}
	queue := &storage.QueueStorageMock{
		ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
			return []*models.QueueEntry{entry}, nil
		},
		DeleteEntryFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	s := newTestSyncer(t, entities, queue, okRemote())
	forceOnline(s)

	result, err := s.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
}
