package models

import "time"

// Snapshot представляет состояние сущности в виде JSON-документа.
// Ключи createdAt/updatedAt/id/syncStatus/version зарезервированы движком.
type Snapshot = map[string]any

// Reserved snapshot field names managed by the sync engine itself.
// They are excluded from conflict detection.
const (
	FieldID         = "id"
	FieldCreatedAt  = "createdAt"
	FieldUpdatedAt  = "updatedAt"
	FieldSyncStatus = "syncStatus"
	FieldVersion    = "version"
)

// SyncStatus описывает состояние синхронизации локальной сущности
type SyncStatus string

const (
	StatusPending SyncStatus = "pending" // локальные изменения ещё не подтверждены сервером
	StatusSynced  SyncStatus = "synced"  // сущность совпадает с сервером
	StatusFailed  SyncStatus = "failed"  // исчерпаны все попытки отправки
)

// IsValid returns true if the status is one of the known values.
func (s SyncStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSynced, StatusFailed:
		return true
	default:
		return false
	}
}

// Operation описывает тип отложенной мутации в очереди синхронизации
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// IsValid returns true if the operation is one of the known values.
func (o Operation) IsValid() bool {
	switch o {
	case OpCreate, OpUpdate, OpDelete:
		return true
	default:
		return false
	}
}

// EntityRecord представляет локально закэшированный снимок сущности.
// Владелец — Local Store; оркестратор меняет только SyncStatus.
type EntityRecord struct {
	CreatedAt  time.Time  `json:"created_at"`  // CreatedAt время создания записи
	UpdatedAt  time.Time  `json:"updated_at"`  // UpdatedAt время последнего изменения
	ID         string     `json:"id"`          // ID идентификатор сущности (задаётся доменным слоем)
	Type       string     `json:"type"`        // Type тип сущности: "case", "person", "evidence", ...
	SyncStatus SyncStatus `json:"sync_status"` // SyncStatus состояние синхронизации
	Fields     Snapshot   `json:"fields"`      // Fields доменные поля сущности
}

// Clone создает глубокую копию записи (поля копируются на один уровень)
func (e *EntityRecord) Clone() *EntityRecord {
	fields := make(Snapshot, len(e.Fields))
	for k, v := range e.Fields {
		fields[k] = v
	}

	return &EntityRecord{
		ID:         e.ID,
		Type:       e.Type,
		Fields:     fields,
		SyncStatus: e.SyncStatus,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// QueueEntry представляет одну отложенную мутацию в очереди синхронизации.
// Записи одной очереди полностью упорядочены по (Priority desc, CreatedAt asc).
type QueueEntry struct {
	CreatedAt  time.Time `json:"created_at"`  // CreatedAt время постановки в очередь
	ID         string    `json:"id"`          // ID уникальный идентификатор записи очереди (UUID)
	EntityType string    `json:"entity_type"` // EntityType тип сущности
	EntityID   string    `json:"entity_id"`   // EntityID идентификатор сущности
	Operation  Operation `json:"operation"`   // Operation тип мутации
	LastError  string    `json:"last_error"`  // LastError текст последней ошибки отправки
	Payload    Snapshot  `json:"payload"`     // Payload снимок сущности на момент постановки
	Attempts   int       `json:"attempts"`    // Attempts количество неудачных попыток отправки
	Priority   int       `json:"priority"`    // Priority приоритет (больше = срочнее, по умолчанию 0)
}

// Before reports whether e must be processed before other according to the
// queue ordering invariant: higher priority first, then older entries first.
func (e *QueueEntry) Before(other *QueueEntry) bool {
	if e.Priority != other.Priority {
		return e.Priority > other.Priority
	}
	return e.CreatedAt.Before(other.CreatedAt)
}
