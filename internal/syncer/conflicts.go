package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldsync/internal/conflict"
	"github.com/iudanet/fieldsync/internal/models"
)

// ErrNoPendingConflict indicates that no conflict is registered under the
// given key
var ErrNoPendingConflict = errors.New("no pending conflict for key")

// resolveDetected routes a detected conflict. Auto-resolvable conflicts are
// settled immediately; the rest are registered in the pending map and the
// drain parks on a waiter channel until an external resolution arrives or
// the wait times out. deferred=true means the entry must stay queued
// untouched.
func (s *Syncer) resolveDetected(ctx context.Context, entry *models.QueueEntry, rec *models.ConflictRecord) (models.Snapshot, bool) {
	// Идентичность записи авторитетнее полей снимка: rec.Key() обязан
	// совпадать с ключом в pending map
	rec.EntityType = entry.EntityType
	rec.EntityID = entry.EntityID

	if rec.AutoResolvable {
		resolved, err := conflict.AutoResolve(rec)
		if err != nil {
			// Detect пометил запись auto-resolvable, противоречие невозможно
			s.logger.Error("Auto-resolve failed on auto-resolvable conflict", "error", err)
			return nil, true
		}

		s.logger.Info("Conflict auto-resolved",
			"entity_type", rec.EntityType,
			"entity_id", rec.EntityID,
			"strategy", string(rec.RecommendedStrategy),
			"reason", rec.Reason)
		s.emit(Event{
			Type:       EventConflictResolved,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			EntryID:    entry.ID,
			Conflict:   rec,
		})
		return resolved, false
	}

	key := models.ConflictKey(entry.EntityType, entry.EntityID)

	// Разрешение могло прийти после таймаута предыдущего прохода
	s.conflictMu.Lock()
	if data, ok := s.manualResolutions[key]; ok {
		delete(s.manualResolutions, key)
		s.conflictMu.Unlock()

		merged, err := conflict.Resolve(rec, models.StrategyMerge, data)
		if err == nil {
			s.emit(Event{
				Type:       EventConflictResolved,
				EntityType: entry.EntityType,
				EntityID:   entry.EntityID,
				EntryID:    entry.ID,
				Conflict:   rec,
			})
			return merged, false
		}

		// Сохранённый выбор не покрывает новый набор конфликтов — паркуемся
		s.logger.Warn("Stored resolution no longer covers conflict, re-registering",
			"key", key, "error", err)
		s.conflictMu.Lock()
	}

	ch := make(chan models.Snapshot, 1)
	s.pending[key] = rec
	s.waiters[key] = ch
	s.conflictMu.Unlock()

	s.logger.Info("Conflict requires manual resolution",
		"entity_type", rec.EntityType,
		"entity_id", rec.EntityID,
		"fields", len(rec.Conflicts),
		"reason", rec.Reason)
	s.emit(Event{
		Type:       EventConflictDetected,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		EntryID:    entry.ID,
		Conflict:   rec,
	})

	timer := time.NewTimer(s.cfg.ConflictWaitTimeout.Std())
	defer timer.Stop()

	select {
	case data := <-ch:
		// Покрытие полей проверено в ResolveConflict до доставки
		merged, err := conflict.Resolve(rec, models.StrategyMerge, data)
		if err != nil {
			s.logger.Error("Delivered resolution failed to apply", "key", key, "error", err)
			return nil, true
		}
		return merged, false

	case <-timer.C:
		// Таймаут: запись остаётся в очереди нетронутой, конфликт остаётся
		// видимым в pending map до позднего разрешения или следующего прохода
		s.conflictMu.Lock()
		delete(s.waiters, key)
		s.conflictMu.Unlock()

		s.logger.Warn("Conflict resolution wait timed out, moving on",
			"key", key, "timeout", s.cfg.ConflictWaitTimeout.Std())
		return nil, true

	case <-ctx.Done():
		s.conflictMu.Lock()
		delete(s.waiters, key)
		delete(s.pending, key)
		s.conflictMu.Unlock()
		return nil, true
	}
}

// ResolveConflict supplies the operator's field selections for a pending
// conflict. data must carry a value for every conflicting field (passing
// the local or server snapshot verbatim is the keep-local/keep-server
// choice). When the originating drain is still waiting, the resolution is
// delivered to it; otherwise it is stored and consumed by the next drain.
func (s *Syncer) ResolveConflict(key string, data models.Snapshot) error {
	s.conflictMu.Lock()

	rec, ok := s.pending[key]
	if !ok {
		s.conflictMu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoPendingConflict, key)
	}

	for _, fc := range rec.Conflicts {
		if _, covered := data[fc.Field]; !covered {
			s.conflictMu.Unlock()
			return fmt.Errorf("%w: missing selection for field %q", conflict.ErrIncompleteMerge, fc.Field)
		}
	}

	delete(s.pending, key)

	if ch, waiting := s.waiters[key]; waiting {
		delete(s.waiters, key)
		s.conflictMu.Unlock()
		ch <- data
	} else {
		// Ожидавший проход уже ушёл по таймауту — сохраняем выбор для
		// следующего прохода
		s.manualResolutions[key] = data
		s.conflictMu.Unlock()
	}

	s.logger.Info("Manual conflict resolution accepted", "key", key)
	s.emit(Event{
		Type:       EventConflictResolved,
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		Conflict:   rec,
	})

	return nil
}

// PendingConflicts returns a snapshot of the currently unresolved conflicts
func (s *Syncer) PendingConflicts() []*models.ConflictRecord {
	s.conflictMu.Lock()
	defer s.conflictMu.Unlock()

	out := make([]*models.ConflictRecord, 0, len(s.pending))
	for _, rec := range s.pending {
		out = append(out, rec)
	}
	return out
}
