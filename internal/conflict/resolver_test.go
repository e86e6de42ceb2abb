package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/models"
)

// makeConflict создает типовой конфликт по двум полям
func makeConflict(autoResolvable bool, recommended models.Strategy) *models.ConflictRecord {
	return &models.ConflictRecord{
		EntityType: "observation",
		EntityID:   "obs-1",
		LocalData: models.Snapshot{
			"id":    "obs-1",
			"notes": "local notes",
			"count": 3,
			"gps":   "59.93,30.33",
		},
		ServerData: models.Snapshot{
			"id":    "obs-1",
			"notes": "server notes",
			"count": 5,
			"gps":   "59.93,30.33",
		},
		Conflicts: []models.FieldConflict{
			{Field: "count", LocalValue: 3, ServerValue: 5},
			{Field: "notes", LocalValue: "local notes", ServerValue: "server notes"},
		},
		AutoResolvable:      autoResolvable,
		RecommendedStrategy: recommended,
		LocalTimestamp:      time.Now().UTC(),
		ServerTimestamp:     time.Now().UTC(),
	}
}

func TestResolve_LocalStrategy(t *testing.T) {
	rec := makeConflict(true, models.StrategyLocal)

	resolved, err := Resolve(rec, models.StrategyLocal, nil)
	require.NoError(t, err)
	assert.Equal(t, rec.LocalData, resolved)
}

func TestResolve_ServerStrategy(t *testing.T) {
	rec := makeConflict(true, models.StrategyServer)

	resolved, err := Resolve(rec, models.StrategyServer, nil)
	require.NoError(t, err)
	assert.Equal(t, rec.ServerData, resolved)
}

func TestResolve_MergeRequiresData(t *testing.T) {
	rec := makeConflict(false, models.StrategyMerge)

	_, err := Resolve(rec, models.StrategyMerge, nil)
	require.ErrorIs(t, err, ErrMissingMergeData)
}

func TestResolve_MergeRequiresFullCoverage(t *testing.T) {
	rec := makeConflict(false, models.StrategyMerge)

	// Выбор сделан только для notes, count не покрыт
	_, err := Resolve(rec, models.StrategyMerge, models.Snapshot{"notes": "server notes"})
	require.ErrorIs(t, err, ErrIncompleteMerge)
	assert.Contains(t, err.Error(), "count")
}

func TestResolve_MergeOverlaysLocal(t *testing.T) {
	rec := makeConflict(false, models.StrategyMerge)

	resolved, err := Resolve(rec, models.StrategyMerge, models.Snapshot{
		"notes": "server notes",
		"count": 3,
	})
	require.NoError(t, err)

	// Невовлечённые поля взяты из локальной версии
	assert.Equal(t, "59.93,30.33", resolved["gps"])
	assert.Equal(t, "obs-1", resolved["id"])
	// Выборы оператора применены поверх
	assert.Equal(t, "server notes", resolved["notes"])
	assert.Equal(t, 3, resolved["count"])
}

func TestResolve_UnknownStrategy(t *testing.T) {
	rec := makeConflict(true, models.StrategyLocal)

	_, err := Resolve(rec, models.Strategy("theirs"), nil)
	require.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = Resolve(nil, models.StrategyLocal, nil)
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestAutoResolve(t *testing.T) {
	t.Run("applies recommended strategy", func(t *testing.T) {
		rec := makeConflict(true, models.StrategyServer)

		resolved, err := AutoResolve(rec)
		require.NoError(t, err)
		assert.Equal(t, rec.ServerData, resolved)
	})

	t.Run("refuses ambiguous conflicts", func(t *testing.T) {
		rec := makeConflict(false, models.StrategyMerge)
		rec.Reason = "local and server edits are only 2s apart"

		_, err := AutoResolve(rec)
		require.ErrorIs(t, err, ErrCannotAutoResolve)
		assert.Contains(t, err.Error(), rec.Reason)
	})

	t.Run("nil conflict", func(t *testing.T) {
		_, err := AutoResolve(nil)
		require.ErrorIs(t, err, ErrCannotAutoResolve)
	})
}
