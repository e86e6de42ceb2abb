package models

import (
	"fmt"
	"time"
)

// Strategy определяет способ разрешения конфликта
type Strategy string

const (
	// StrategyLocal keeps the locally queued version verbatim.
	StrategyLocal Strategy = "local"
	// StrategyServer keeps the server version verbatim.
	StrategyServer Strategy = "server"
	// StrategyMerge requires field-by-field selections from a human operator.
	StrategyMerge Strategy = "merge"
)

// IsValid returns true if the strategy is one of the known values.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyLocal, StrategyServer, StrategyMerge:
		return true
	default:
		return false
	}
}

// FieldConflict описывает расхождение одного поля между локальной
// и серверной версиями сущности
type FieldConflict struct {
	Field       string `json:"field"`
	LocalValue  any    `json:"local_value"`
	ServerValue any    `json:"server_value"`
}

// ConflictRecord представляет обнаруженное расхождение между локально
// поставленной в очередь версией сущности и текущей версией на сервере.
// Запись транзиентна: живёт в памяти оркестратора до разрешения или таймаута.
type ConflictRecord struct {
	LocalTimestamp      time.Time       `json:"local_timestamp"`
	ServerTimestamp     time.Time       `json:"server_timestamp"`
	EntityType          string          `json:"entity_type"`
	EntityID            string          `json:"entity_id"`
	Reason              string          `json:"reason"`
	RecommendedStrategy Strategy        `json:"recommended_strategy"`
	LocalData           Snapshot        `json:"local_data"`
	ServerData          Snapshot        `json:"server_data"`
	Conflicts           []FieldConflict `json:"conflicts"`
	AutoResolvable      bool            `json:"auto_resolvable"`
}

// Key returns the pending-conflicts map key for this record.
func (c *ConflictRecord) Key() string {
	return ConflictKey(c.EntityType, c.EntityID)
}

// ConflictKey builds the "entityType:entityId" key used by the
// orchestrator's pending-conflicts map.
func ConflictKey(entityType, entityID string) string {
	return fmt.Sprintf("%s:%s", entityType, entityID)
}
