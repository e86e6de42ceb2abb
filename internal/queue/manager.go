// Package queue implements the sync queue manager: it appends pending
// mutations to the durable queue and exposes aggregate counts.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
)

// Flusher получает шанс немедленно отправить одну свежую запись очереди.
// Реализуется оркестратором; отказывается, когда клиент оффлайн или идёт
// полный проход очереди.
type Flusher interface {
	// TryFlushEntry attempts to sync a single entry right away.
	// Best effort: failures leave the entry queued for the next drain.
	TryFlushEntry(ctx context.Context, entry *models.QueueEntry)
}

// Manager handles appends to the sync queue
type Manager struct {
	store   storage.QueueStorage
	flusher Flusher
	logger  *slog.Logger
}

// NewManager creates a new queue manager
func NewManager(store storage.QueueStorage, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// SetFlusher attaches the immediate-flush hook.
// Вызывается один раз при сборке движка, до любых Add.
func (m *Manager) SetFlusher(flusher Flusher) {
	m.flusher = flusher
}

// Add appends a new entry to the sync queue. Entries are appended
// unconditionally: a later operation on the same entity is additional
// ordered work, not a replacement.
//
// When a flusher is attached and willing, the fresh entry gets one
// immediate sync attempt; the caller blocks on nothing else.
func (m *Manager) Add(ctx context.Context, entityType, entityID string, op models.Operation, payload models.Snapshot, priority int) (*models.QueueEntry, error) {
	if entityType == "" || entityID == "" {
		return nil, fmt.Errorf("%w: entity type and id are required", storage.ErrInvalidRecord)
	}
	if !op.IsValid() {
		return nil, fmt.Errorf("%w: unknown operation %q", storage.ErrInvalidRecord, op)
	}

	entry := &models.QueueEntry{
		ID:         uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		Payload:    payload,
		Priority:   priority,
		CreatedAt:  time.Now().UTC(),
	}

	if err := m.store.Enqueue(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to enqueue operation: %w", err)
	}

	m.logger.Debug("Queued operation",
		"entry_id", entry.ID,
		"entity_type", entityType,
		"entity_id", entityID,
		"operation", string(op),
		"priority", priority)

	// Оптимизация: одна немедленная попытка, если движок онлайн и свободен
	if m.flusher != nil {
		m.flusher.TryFlushEntry(ctx, entry)
	}

	return entry, nil
}

// Count returns the total number of queued entries
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

// PendingByType returns queued-entry counts grouped by entity type
func (m *Manager) PendingByType(ctx context.Context) (map[string]int, error) {
	return m.store.PendingByType(ctx)
}
