package catalogmanager

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/common"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// FailedDelete records one id that could not be deleted and why.
type FailedDelete struct {
	ID  types.CombinationId
	Err error
}

// BulkDeleteError aggregates the outcome of a bulk delete: the (id, error)
// pairs that failed, in attempt order, plus the ids that were deleted.
// It matches ErrBulkDeleteFailed under errors.Is, and unwraps to the per-id
// errors so errors.Is against ErrCombinationNotFound or ErrDeleteFailed
// inspects every failure.
type BulkDeleteError struct {
	Failed  []FailedDelete
	Deleted []types.CombinationId
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("bulk combination delete failed for %d of %d ids",
		len(e.Failed), len(e.Failed)+len(e.Deleted))
}

func (e *BulkDeleteError) Is(target error) bool {
	return target == ErrBulkDeleteFailed
}

func (e *BulkDeleteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// BulkDeleteCombinations deletes every id in the given order, tolerating
// per-item failures: a failing id never stops the ids after it, and ids that
// succeeded stay deleted regardless of the rest. If anything failed, the one
// returned error is a *BulkDeleteError carrying the complete failure
// mapping. The batch has no transactional envelope; errorCode is the same
// opaque tag single delete takes.
func BulkDeleteCombinations(ctx context.Context, ids []types.CombinationId, errorCode string) error {
	ctx, opID := common.EnsureOperationId(ctx)
	logger := log.Ctx(ctx).With().Str("operation_id", opID).Logger()
	ctx = logger.WithContext(ctx)

	var failed []FailedDelete
	deleted := make([]types.CombinationId, 0, len(ids))
	for _, id := range ids {
		if err := DeleteCombination(ctx, id, errorCode); err != nil {
			failed = append(failed, FailedDelete{ID: id, Err: err})
			continue
		}
		deleted = append(deleted, id)
	}

	if len(failed) > 0 {
		logger.Error().Int("failed", len(failed)).Int("deleted", len(deleted)).Msg("bulk combination delete completed with failures")
		return &BulkDeleteError{Failed: failed, Deleted: deleted}
	}
	logger.Info().Int("deleted", len(deleted)).Msg("bulk combination delete completed")
	return nil
}
