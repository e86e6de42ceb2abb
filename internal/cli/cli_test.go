package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/api"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/iocli"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/queue"
	"github.com/iudanet/fieldsync/internal/storage"
	"github.com/iudanet/fieldsync/internal/syncer"
)

// captureIO собирает весь вывод команды в строку
type captureIO struct {
	*iocli.IOMock
	out strings.Builder
}

func newCaptureIO() *captureIO {
	c := &captureIO{}
	c.IOMock = &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			c.out.WriteString(fmt.Sprintln(a...))
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(&c.out, format, a...)
		},
	}
	return c
}

// newTestCli собирает CLI на моках хранилища и транспорта
func newTestCli(t *testing.T, entities *storage.EntityStorageMock, entries *storage.QueueStorageMock, remote *api.ClientAPIMock) (*Cli, *captureIO) {
	t.Helper()

	cfg := config.Default()
	logger := slog.New(slog.DiscardHandler)

	engine := syncer.New(cfg, entities, entries, remote, logger)
	t.Cleanup(func() {
		require.NoError(t, engine.Close())
	})

	qm := queue.NewManager(entries, logger)
	io := newCaptureIO()

	return New(cfg, engine, qm, entities, entries, remote, io, logger), io
}

func TestRun_UnknownCommand(t *testing.T) {
	c, _ := newTestCli(t, &storage.EntityStorageMock{}, &storage.QueueStorageMock{}, &api.ClientAPIMock{})

	err := c.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRunQueue(t *testing.T) {
	t.Run("empty queue", func(t *testing.T) {
		entries := &storage.QueueStorageMock{
			ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
				return nil, nil
			},
		}
		c, io := newTestCli(t, &storage.EntityStorageMock{}, entries, &api.ClientAPIMock{})

		require.NoError(t, c.Run(context.Background(), "queue", nil))
		assert.Contains(t, io.out.String(), "Queue is empty")
	})

	t.Run("lists entries in order", func(t *testing.T) {
		entries := &storage.QueueStorageMock{
			ListOrderedFunc: func(ctx context.Context) ([]*models.QueueEntry, error) {
				return []*models.QueueEntry{
					{
						ID:         "e-1",
						EntityType: "observation",
						EntityID:   "obs-1",
						Operation:  models.OpUpdate,
						Priority:   5,
						Attempts:   2,
						LastError:  "connection refused",
						CreatedAt:  time.Now().UTC(),
					},
				}, nil
			},
		}
		c, io := newTestCli(t, &storage.EntityStorageMock{}, entries, &api.ClientAPIMock{})

		require.NoError(t, c.Run(context.Background(), "queue", nil))

		output := io.out.String()
		assert.Contains(t, output, "observation/obs-1")
		assert.Contains(t, output, "priority 5")
		assert.Contains(t, output, "connection refused")
	})
}

func TestRunStatus(t *testing.T) {
	entities := &storage.EntityStorageMock{
		CountByStatusFunc: func(ctx context.Context, entityType string, status models.SyncStatus) (int, error) {
			if status == models.StatusPending {
				return 2, nil
			}
			return 0, nil
		},
	}
	entries := &storage.QueueStorageMock{
		CountFunc: func(ctx context.Context) (int, error) {
			return 2, nil
		},
		PendingByTypeFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"observation": 2}, nil
		},
	}
	remote := &api.ClientAPIMock{
		PingFunc: func(ctx context.Context) error {
			return fmt.Errorf("connection refused")
		},
	}

	c, io := newTestCli(t, entities, entries, remote)

	require.NoError(t, c.Run(context.Background(), "status", nil))

	output := io.out.String()
	assert.Contains(t, output, "unreachable")
	assert.Contains(t, output, "2 operation(s) waiting")
	assert.Contains(t, output, "observation")
}

func TestRunConflicts_Empty(t *testing.T) {
	c, io := newTestCli(t, &storage.EntityStorageMock{}, &storage.QueueStorageMock{}, &api.ClientAPIMock{})

	require.NoError(t, c.Run(context.Background(), "conflicts", nil))
	assert.Contains(t, io.out.String(), "No conflicts")
}

func TestRunAdd(t *testing.T) {
	t.Run("creates entity and queues create", func(t *testing.T) {
		var saved *models.EntityRecord
		entities := &storage.EntityStorageMock{
			GetEntityFunc: func(ctx context.Context, entityType, id string) (*models.EntityRecord, error) {
				return nil, storage.ErrEntityNotFound
			},
			SaveEntityFunc: func(ctx context.Context, record *models.EntityRecord) error {
				record.CreatedAt = time.Now().UTC()
				record.UpdatedAt = record.CreatedAt
				saved = record
				return nil
			},
		}
		var queued *models.QueueEntry
		entries := &storage.QueueStorageMock{
			EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
				queued = entry
				return nil
			},
		}

		c, io := newTestCli(t, entities, entries, &api.ClientAPIMock{})

		err := c.Run(context.Background(), "add", []string{"observation", "obs-1", "species=heron", "count=3"})
		require.NoError(t, err)

		require.NotNil(t, saved)
		assert.Equal(t, "heron", saved.Fields["species"])

		require.NotNil(t, queued)
		assert.Equal(t, models.OpCreate, queued.Operation)
		assert.Equal(t, "obs-1", queued.Payload["id"])
		assert.Contains(t, io.out.String(), "queued")
	})

	t.Run("existing entity queues update", func(t *testing.T) {
		entities := &storage.EntityStorageMock{
			GetEntityFunc: func(ctx context.Context, entityType, id string) (*models.EntityRecord, error) {
				return &models.EntityRecord{ID: id, Type: entityType}, nil
			},
			SaveEntityFunc: func(ctx context.Context, record *models.EntityRecord) error {
				return nil
			},
		}
		var queued *models.QueueEntry
		entries := &storage.QueueStorageMock{
			EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
				queued = entry
				return nil
			},
		}

		c, _ := newTestCli(t, entities, entries, &api.ClientAPIMock{})

		err := c.Run(context.Background(), "add", []string{"observation", "obs-1", "count=4"})
		require.NoError(t, err)

		require.NotNil(t, queued)
		assert.Equal(t, models.OpUpdate, queued.Operation)
	})

	t.Run("rejects malformed field argument", func(t *testing.T) {
		c, _ := newTestCli(t, &storage.EntityStorageMock{}, &storage.QueueStorageMock{}, &api.ClientAPIMock{})

		err := c.Run(context.Background(), "add", []string{"observation", "obs-1", "species"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key=value")
	})

	t.Run("requires type and id", func(t *testing.T) {
		c, _ := newTestCli(t, &storage.EntityStorageMock{}, &storage.QueueStorageMock{}, &api.ClientAPIMock{})

		err := c.Run(context.Background(), "add", []string{"observation"})
		require.Error(t, err)
	})
}

func TestRunDelete(t *testing.T) {
	entities := &storage.EntityStorageMock{
		DeleteEntityFunc: func(ctx context.Context, entityType, id string) error {
			return storage.ErrEntityNotFound // локальной копии может не быть
		},
	}
	var queued *models.QueueEntry
	entries := &storage.QueueStorageMock{
		EnqueueFunc: func(ctx context.Context, entry *models.QueueEntry) error {
			queued = entry
			return nil
		},
	}

	c, _ := newTestCli(t, entities, entries, &api.ClientAPIMock{})

	err := c.Run(context.Background(), "delete", []string{"observation", "obs-1"})
	require.NoError(t, err)

	require.NotNil(t, queued)
	assert.Equal(t, models.OpDelete, queued.Operation)
	assert.Equal(t, "obs-1", queued.EntityID)
}

func TestParseFieldArgs(t *testing.T) {
	fields, err := parseFieldArgs([]string{"species=heron", "note=seen at dawn", "empty="})
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{
		"species": "heron",
		"note":    "seen at dawn",
		"empty":   "",
	}, fields)

	_, err = parseFieldArgs([]string{"=value"})
	require.Error(t, err)
}
