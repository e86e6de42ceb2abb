package syncer

import (
	"time"

	"github.com/iudanet/fieldsync/internal/models"
)

// EventType классифицирует статусные события движка
type EventType string

const (
	EventSyncStarted      EventType = "sync_started"
	EventSyncCompleted    EventType = "sync_completed"
	EventItemSynced       EventType = "item_synced"
	EventItemFailed       EventType = "item_failed"
	EventEntityFailed     EventType = "entity_failed"
	EventConflictDetected EventType = "conflict_detected"
	EventConflictResolved EventType = "conflict_resolved"
	EventOnline           EventType = "online"
	EventOffline          EventType = "offline"
)

// Event is delivered synchronously to every subscriber immediately after a
// state transition, queue mutation or conflict registration/resolution.
type Event struct {
	Time       time.Time              `json:"time"`
	Type       EventType              `json:"type"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityID   string                 `json:"entity_id,omitempty"`
	EntryID    string                 `json:"entry_id,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Conflict   *models.ConflictRecord `json:"conflict,omitempty"`
	Result     *Result                `json:"result,omitempty"`
}

// Subscribe registers a status-event handler and returns its disposer.
// Обработчики вызываются синхронно; долгие обработчики тормозят движок.
func (s *Syncer) Subscribe(handler func(Event)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = handler
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// emit delivers an event to all current subscribers.
// Вызывается только когда мьютексы движка отпущены: обработчик имеет право
// обратиться к движку (например, вызвать ResolveConflict).
func (s *Syncer) emit(event Event) {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	s.subMu.RLock()
	handlers := make([]func(Event), 0, len(s.subscribers))
	for _, h := range s.subscribers {
		handlers = append(handlers, h)
	}
	s.subMu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
