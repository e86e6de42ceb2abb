// Package conflict implements field-level conflict detection and resolution
// between a locally queued entity snapshot and the server's current snapshot.
package conflict

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iudanet/fieldsync/internal/models"
)

// DefaultAutoResolveThreshold is the minimum timestamp gap at which the
// detector trusts wall-clock ordering. Near-simultaneous edits on
// unsynchronized clocks are ambiguous and go to a human operator.
const DefaultAutoResolveThreshold = 5 * time.Second

// ignoredFields are managed by the engine itself and never count as conflicts.
var ignoredFields = map[string]bool{
	models.FieldID:         true,
	models.FieldCreatedAt:  true,
	models.FieldSyncStatus: true,
	models.FieldVersion:    true,
}

// Detect diffs a local snapshot against a remote snapshot and classifies the
// result. Returns nil when there is no conflict: either side absent (the
// caller handles new-local and server-authoritative cases) or no field
// differs outside the ignored set.
//
// threshold <= 0 falls back to DefaultAutoResolveThreshold.
func Detect(local, server models.Snapshot, threshold time.Duration) *models.ConflictRecord {
	if local == nil || server == nil {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultAutoResolveThreshold
	}

	localTS := snapshotTimestamp(local)
	serverTS := snapshotTimestamp(server)

	// Объединение имён полей обеих сторон
	fields := make(map[string]bool, len(local)+len(server))
	for k := range local {
		fields[k] = true
	}
	for k := range server {
		fields[k] = true
	}

	var conflicts []models.FieldConflict
	for field := range fields {
		if ignoredFields[field] {
			continue
		}
		// updatedAt участвует в диффе только косвенно: само поле не
		// сравнивается, иначе любые две правки конфликтовали бы всегда
		if field == models.FieldUpdatedAt {
			continue
		}

		lv, lok := local[field]
		sv, sok := server[field]
		if lok != sok || !valueEqual(lv, sv) {
			conflicts = append(conflicts, models.FieldConflict{
				Field:       field,
				LocalValue:  lv,
				ServerValue: sv,
			})
		}
	}

	if len(conflicts) == 0 {
		return nil
	}

	// Детерминированный порядок полей в отчёте
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Field < conflicts[j].Field
	})

	record := &models.ConflictRecord{
		EntityType:      snapshotString(local, "type"),
		EntityID:        snapshotString(local, models.FieldID),
		LocalData:       local,
		ServerData:      server,
		LocalTimestamp:  localTS,
		ServerTimestamp: serverTS,
		Conflicts:       conflicts,
	}
	if record.EntityID == "" {
		record.EntityID = snapshotString(server, models.FieldID)
	}
	if record.EntityType == "" {
		record.EntityType = snapshotString(server, "type")
	}

	timeDiff := serverTS.Sub(localTS)
	if timeDiff < 0 {
		timeDiff = -timeDiff
	}

	if timeDiff > threshold {
		record.AutoResolvable = true
		if localTS.After(serverTS) {
			record.RecommendedStrategy = models.StrategyLocal
			record.Reason = fmt.Sprintf("local version is newer by %s", timeDiff.Round(time.Millisecond))
		} else {
			record.RecommendedStrategy = models.StrategyServer
			record.Reason = fmt.Sprintf("server version is newer by %s", timeDiff.Round(time.Millisecond))
		}
	} else {
		record.AutoResolvable = false
		record.RecommendedStrategy = models.StrategyMerge
		record.Reason = fmt.Sprintf(
			"local and server edits are only %s apart, too close to pick a side automatically",
			timeDiff.Round(time.Millisecond))
	}

	return record
}

// snapshotTimestamp extracts the modification timestamp from a snapshot:
// updatedAt first, createdAt as fallback, zero time when neither parses.
func snapshotTimestamp(snap models.Snapshot) time.Time {
	if ts, ok := parseTimestamp(snap[models.FieldUpdatedAt]); ok {
		return ts
	}
	if ts, ok := parseTimestamp(snap[models.FieldCreatedAt]); ok {
		return ts
	}
	return time.Time{}
}

// snapshotString reads a string field from a snapshot, "" when absent
func snapshotString(snap models.Snapshot, field string) string {
	if v, ok := snap[field].(string); ok {
		return v
	}
	return ""
}

// parseTimestamp accepts the timestamp shapes a snapshot can carry after a
// JSON round-trip: time.Time, RFC3339 string, or epoch milliseconds.
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts, true
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
		return time.Time{}, false
	case int64:
		return time.UnixMilli(t).UTC(), true
	case float64:
		return time.UnixMilli(int64(t)).UTC(), true
	case int:
		return time.UnixMilli(int64(t)).UTC(), true
	default:
		return time.Time{}, false
	}
}

// valueEqual performs deep structural equality: primitives by value (numbers
// across int/float forms), dates by instant, arrays element-wise and
// order-sensitive, objects by recursive key/value equality.
func valueEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	// Даты сравниваем по моменту времени независимо от представления
	if at, aok := parseTimestampStrict(a); aok {
		if bt, bok := parseTimestampStrict(b); bok {
			return at.Equal(bt)
		}
	}

	if an, aok := toFloat(a); aok {
		if bn, bok := toFloat(b); bok {
			return an == bn
		}
		return false
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, exists := bv[k]
			if !exists || !valueEqual(v, bval) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// parseTimestampStrict recognizes values that are unambiguously dates:
// time.Time or an RFC3339 string. Bare numbers stay numbers.
func parseTimestampStrict(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
