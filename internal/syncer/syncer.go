// Package syncer implements the network sync orchestrator: it owns the sync
// state machine, reacts to connectivity signals, drains the pending-operation
// queue in order and routes conflicts through automatic or manual resolution.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/fieldsync/internal/api"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/conflict"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/storage"
	pkgapi "github.com/iudanet/fieldsync/pkg/api"
)

// State описывает состояние движка синхронизации
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateError   State = "error"
)

// Result reports the outcome of one full queue drain
type Result struct {
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Errors    []string      `json:"errors,omitempty"`
	Synced    int           `json:"synced"`   // entries confirmed by the server and removed
	Failed    int           `json:"failed"`   // entries whose send attempt failed
	Deferred  int           `json:"deferred"` // entries left queued awaiting manual resolution
	Skipped   bool          `json:"skipped"`  // drain refused: offline or already in progress
}

// itemOutcome — результат обработки одной записи очереди
type itemOutcome int

const (
	outcomeSynced itemOutcome = iota
	outcomeFailed
	outcomeDeferred
)

// Syncer is the network sync orchestrator
type Syncer struct {
	cfg      *config.Config
	entities storage.EntityStorage
	queue    storage.QueueStorage
	remote   api.ClientAPI
	logger   *slog.Logger

	// Состояние движка; один мьютекс сериализует переходы
	mu       sync.Mutex
	state    State
	online   bool
	syncing  bool
	lastSync time.Time
	autoStop chan struct{}

	// Незакрытые конфликты и ожидающие их обработчики
	conflictMu        sync.Mutex
	pending           map[string]*models.ConflictRecord
	waiters           map[string]chan models.Snapshot
	manualResolutions map[string]models.Snapshot

	subMu       sync.RWMutex
	subscribers map[int]func(Event)
	nextSubID   int
}

// New creates a new sync orchestrator
func New(cfg *config.Config, entities storage.EntityStorage, queue storage.QueueStorage, remote api.ClientAPI, logger *slog.Logger) *Syncer {
	return &Syncer{
		cfg:               cfg,
		entities:          entities,
		queue:             queue,
		remote:            remote,
		logger:            logger,
		state:             StateIdle,
		pending:           make(map[string]*models.ConflictRecord),
		waiters:           make(map[string]chan models.Snapshot),
		manualResolutions: make(map[string]models.Snapshot),
		subscribers:       make(map[int]func(Event)),
	}
}

// State returns the current engine state
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Online reports whether the engine currently considers itself connected
func (s *Syncer) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// LastSync returns the completion time of the last successful drain
func (s *Syncer) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// SetOnline marks the engine connected, starts the auto-sync ticker and
// attempts an immediate full drain.
func (s *Syncer) SetOnline(ctx context.Context) {
	s.mu.Lock()
	if s.online {
		s.mu.Unlock()
		return
	}
	s.online = true
	s.startAutoSyncLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("Connectivity restored, starting auto-sync")
	s.emit(Event{Type: EventOnline})

	if _, err := s.SyncAll(ctx); err != nil {
		s.logger.Warn("Initial drain after reconnect failed", "error", err)
	}
}

// SetOffline marks the engine disconnected and stops the auto-sync ticker.
// Текущий проход очереди не прерывается: он сам упрётся в сетевые ошибки.
func (s *Syncer) SetOffline() {
	s.mu.Lock()
	if !s.online {
		s.mu.Unlock()
		return
	}
	s.online = false
	s.stopAutoSyncLocked()
	s.mu.Unlock()

	s.logger.Info("Connectivity lost, auto-sync stopped")
	s.emit(Event{Type: EventOffline})
}

// HandleForeground is the app-foregrounded signal: drain if online
func (s *Syncer) HandleForeground(ctx context.Context) {
	if !s.Online() {
		return
	}
	if _, err := s.SyncAll(ctx); err != nil {
		s.logger.Warn("Foreground drain failed", "error", err)
	}
}

// startAutoSyncLocked запускает периодический drain; вызывается под s.mu
func (s *Syncer) startAutoSyncLocked(ctx context.Context) {
	if s.autoStop != nil {
		return
	}

	stopChan := make(chan struct{})
	s.autoStop = stopChan

	go func() {
		ticker := time.NewTicker(s.cfg.SyncInterval.Std())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopChan:
				return
			case <-ticker.C:
				if _, err := s.SyncAll(ctx); err != nil {
					s.logger.Warn("Periodic drain failed", "error", err)
				}
			}
		}
	}()
}

// stopAutoSyncLocked останавливает периодический drain; вызывается под s.mu
func (s *Syncer) stopAutoSyncLocked() {
	if s.autoStop == nil {
		return
	}
	close(s.autoStop)
	s.autoStop = nil
}

// Close stops background work. Storage and transport are owned by the
// caller and closed separately.
func (s *Syncer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAutoSyncLocked()
	return nil
}

// tryBeginDrain takes the single in-process drain slot.
// Возвращает false, если движок оффлайн или проход уже идёт.
func (s *Syncer) tryBeginDrain() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.online || s.syncing {
		return false
	}
	s.syncing = true
	s.state = StateSyncing
	return true
}

// endDrain releases the drain slot and records the final state
func (s *Syncer) endDrain(finalState State, stamp bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false
	s.state = finalState
	if stamp {
		s.lastSync = time.Now().UTC()
	}
}

// TryFlushEntry implements queue.Flusher: one immediate best-effort attempt
// for a freshly queued entry. Declines when offline or mid-drain.
func (s *Syncer) TryFlushEntry(ctx context.Context, entry *models.QueueEntry) {
	if !s.tryBeginDrain() {
		return
	}
	defer s.endDrain(StateIdle, false)

	if _, err := s.syncSingleItem(ctx, entry); err != nil {
		s.logger.Debug("Immediate flush failed, entry stays queued",
			"entry_id", entry.ID, "error", err)
	}
}

// SyncAll performs one full drain of the sync queue.
// Refuses to run when offline or when a drain is already in progress: the
// returned result is marked Skipped instead of queuing a second drain.
func (s *Syncer) SyncAll(ctx context.Context) (*Result, error) {
	result := &Result{StartTime: time.Now().UTC()}

	if !s.tryBeginDrain() {
		result.Skipped = true
		return result, nil
	}

	s.emit(Event{Type: EventSyncStarted})

	// Рабочее множество прохода фиксируется здесь; записи, добавленные
	// во время прохода, подождут следующего
	entries, err := s.queue.ListOrdered(ctx)
	if err != nil {
		s.endDrain(StateError, false)
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(result.StartTime)
		s.emit(Event{Type: EventSyncCompleted, Error: err.Error(), Result: result})
		return result, fmt.Errorf("failed to read sync queue: %w", err)
	}

	s.logger.Info("Starting queue drain", "entries", len(entries))

	for i, entry := range entries {
		// Исчерпавшие лимит попыток записи больше не отправляются
		if entry.Attempts >= s.cfg.MaxRetries {
			continue
		}

		if ctx.Err() != nil {
			result.Errors = append(result.Errors, ctx.Err().Error())
			break
		}

		outcome, err := s.syncSingleItem(ctx, entry)
		switch outcome {
		case outcomeSynced:
			result.Synced++
		case outcomeDeferred:
			result.Deferred++
		case outcomeFailed:
			result.Failed++
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
			}
		}

		// Небольшая пауза между записями, чтобы не заваливать сервер
		if i < len(entries)-1 {
			timer := time.NewTimer(s.cfg.DrainPause.Std())
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}

	s.endDrain(StateIdle, true)

	result.Duration = time.Since(result.StartTime)
	s.logger.Info("Queue drain completed",
		"synced", result.Synced,
		"failed", result.Failed,
		"deferred", result.Deferred,
		"duration", result.Duration)
	s.emit(Event{Type: EventSyncCompleted, Result: result})

	return result, nil
}

// syncSingleItem processes one queue entry end to end: pre-flight conflict
// check for updates, send, response handling, retry bookkeeping.
func (s *Syncer) syncSingleItem(ctx context.Context, entry *models.QueueEntry) (itemOutcome, error) {
	payload := entry.Payload

	// Pre-flight: для update сверяем снимок с сервером до отправки
	if entry.Operation == models.OpUpdate {
		server, err := s.remote.FetchSnapshot(ctx, entry.EntityType, entry.EntityID)
		if err != nil {
			return s.recordFailure(ctx, entry, fmt.Errorf("pre-flight snapshot fetch: %w", err))
		}

		if rec := conflict.Detect(payload, server, s.cfg.AutoResolveThreshold.Std()); rec != nil {
			resolved, deferred := s.resolveDetected(ctx, entry, rec)
			if deferred {
				return outcomeDeferred, nil
			}
			payload = resolved
		}
	}

	resp, err := s.remote.Send(ctx, pkgapi.SyncOpRequest{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Operation:  string(entry.Operation),
		Payload:    payload,
	})
	if err != nil {
		return s.recordFailure(ctx, entry, err)
	}

	// Сервер ответил конфликтом: его снимок в resp.ServerData
	if resp.Status == pkgapi.StatusConflict {
		rec := conflict.Detect(payload, resp.ServerData, s.cfg.AutoResolveThreshold.Std())
		if rec != nil {
			resolved, deferred := s.resolveDetected(ctx, entry, rec)
			if deferred {
				return outcomeDeferred, nil
			}

			// Одна повторная отправка с разрешённым payload
			resp, err = s.remote.Send(ctx, pkgapi.SyncOpRequest{
				EntityType: entry.EntityType,
				EntityID:   entry.EntityID,
				Operation:  string(entry.Operation),
				Payload:    resolved,
			})
			if err != nil {
				return s.recordFailure(ctx, entry, err)
			}
			if resp.Status == pkgapi.StatusConflict {
				return s.recordFailure(ctx, entry,
					fmt.Errorf("server reported conflict again after resolution"))
			}
		}
		// rec == nil: поля структурно совпадают, расхождения нет —
		// считаем операцию применённой
	}

	return s.confirmSynced(ctx, entry)
}

// confirmSynced clears the queue entry and marks the local entity synced
func (s *Syncer) confirmSynced(ctx context.Context, entry *models.QueueEntry) (itemOutcome, error) {
	if err := s.queue.DeleteEntry(ctx, entry.ID); err != nil && !errors.Is(err, storage.ErrEntryNotFound) {
		return outcomeFailed, fmt.Errorf("failed to clear queue entry: %w", err)
	}

	// Для delete-операций локальной записи может уже не быть
	err := s.entities.SetSyncStatus(ctx, entry.EntityType, entry.EntityID, models.StatusSynced)
	if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		s.logger.Warn("Failed to mark entity synced",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err)
	}

	s.logger.Debug("Entry synced",
		"entry_id", entry.ID,
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID)
	s.emit(Event{
		Type:       EventItemSynced,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		EntryID:    entry.ID,
	})

	return outcomeSynced, nil
}

// recordFailure persists the failed attempt on the queue entry. At the retry
// bound the entity is marked permanently failed; the entry itself is never
// deleted automatically and stays visible for operator attention.
func (s *Syncer) recordFailure(ctx context.Context, entry *models.QueueEntry, cause error) (itemOutcome, error) {
	entry.Attempts++
	entry.LastError = cause.Error()

	// Постоянные ошибки (валидация, 4xx) не заслуживают новых попыток
	if !api.IsTransient(cause) && entry.Attempts < s.cfg.MaxRetries {
		entry.Attempts = s.cfg.MaxRetries
	}

	if err := s.queue.UpdateEntry(ctx, entry); err != nil {
		s.logger.Warn("Failed to persist attempt count",
			"entry_id", entry.ID, "error", err)
	}

	if entry.Attempts >= s.cfg.MaxRetries {
		err := s.entities.SetSyncStatus(ctx, entry.EntityType, entry.EntityID, models.StatusFailed)
		if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
			s.logger.Warn("Failed to mark entity failed",
				"entity_type", entry.EntityType,
				"entity_id", entry.EntityID,
				"error", err)
		}

		s.logger.Error("Entry exhausted retry budget",
			"entry_id", entry.ID,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"attempts", entry.Attempts,
			"error", cause)
		s.emit(Event{
			Type:       EventEntityFailed,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			EntryID:    entry.ID,
			Error:      cause.Error(),
		})
	} else {
		s.logger.Warn("Entry sync attempt failed",
			"entry_id", entry.ID,
			"attempts", entry.Attempts,
			"error", cause)
		s.emit(Event{
			Type:       EventItemFailed,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			EntryID:    entry.ID,
			Error:      cause.Error(),
		})
	}

	return outcomeFailed, cause
}
