package conflict

import (
	"errors"
	"fmt"

	"github.com/iudanet/fieldsync/internal/models"
)

// Resolver errors
var (
	// ErrMissingMergeData indicates that the merge strategy was applied
	// without manual merge data. This is a programming error on the caller
	// side, not a recoverable runtime condition.
	ErrMissingMergeData = errors.New("merge strategy requires manual merge data")

	// ErrIncompleteMerge indicates that manual merge data does not cover
	// every conflicting field
	ErrIncompleteMerge = errors.New("manual merge data does not cover all conflicting fields")

	// ErrCannotAutoResolve indicates that the conflict is too ambiguous to
	// resolve without a human operator
	ErrCannotAutoResolve = errors.New("conflict cannot be auto-resolved")

	// ErrUnknownStrategy indicates an unrecognized resolution strategy
	ErrUnknownStrategy = errors.New("unknown resolution strategy")
)

// Resolve applies the chosen strategy to a detected conflict and returns the
// final payload to send to the server.
//
// StrategyLocal and StrategyServer return the corresponding side verbatim.
// StrategyMerge requires manualMergeData carrying a value for every
// conflicting field; the merged payload is the local snapshot overlaid with
// the operator's selections.
func Resolve(conflict *models.ConflictRecord, strategy models.Strategy, manualMergeData models.Snapshot) (models.Snapshot, error) {
	if conflict == nil {
		return nil, fmt.Errorf("%w: nil conflict", ErrUnknownStrategy)
	}

	switch strategy {
	case models.StrategyLocal:
		return conflict.LocalData, nil

	case models.StrategyServer:
		return conflict.ServerData, nil

	case models.StrategyMerge:
		if manualMergeData == nil {
			return nil, ErrMissingMergeData
		}

		// Каждое конфликтующее поле обязано иметь выбор оператора
		for _, fc := range conflict.Conflicts {
			if _, ok := manualMergeData[fc.Field]; !ok {
				return nil, fmt.Errorf("%w: missing selection for field %q", ErrIncompleteMerge, fc.Field)
			}
		}

		merged := make(models.Snapshot, len(conflict.LocalData))
		for k, v := range conflict.LocalData {
			merged[k] = v
		}
		for k, v := range manualMergeData {
			merged[k] = v
		}
		return merged, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// AutoResolve applies the recommended strategy, but only when the detector
// marked the conflict as auto-resolvable.
func AutoResolve(conflict *models.ConflictRecord) (models.Snapshot, error) {
	if conflict == nil {
		return nil, fmt.Errorf("%w: nil conflict", ErrCannotAutoResolve)
	}
	if !conflict.AutoResolvable {
		return nil, fmt.Errorf("%w: %s", ErrCannotAutoResolve, conflict.Reason)
	}

	return Resolve(conflict, conflict.RecommendedStrategy, nil)
}
