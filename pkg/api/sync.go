// Package api contains the wire types shared with the remote sync endpoint.
package api

// Operation response statuses returned by the sync endpoint
const (
	// StatusOK means the operation was applied; the client may clear the
	// queue entry
	StatusOK = "ok"

	// StatusConflict means the server rejected the operation because its
	// current snapshot diverged; ServerData carries that snapshot and the
	// client must run its resolution flow
	StatusConflict = "conflict"
)

// SyncOpRequest представляет одну отложенную мутацию, отправляемую на сервер
type SyncOpRequest struct {
	EntityType string         `json:"entity_type"` // тип сущности
	EntityID   string         `json:"entity_id"`   // идентификатор сущности
	Operation  string         `json:"operation"`   // create | update | delete
	Payload    map[string]any `json:"payload"`     // снимок сущности на момент постановки в очередь
}

// SyncOpResponse представляет ответ сервера на применение мутации
type SyncOpResponse struct {
	Status     string         `json:"status"`                // ok | conflict
	ServerData map[string]any `json:"server_data,omitempty"` // текущий серверный снимок при конфликте
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
