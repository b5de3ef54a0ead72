package catalogmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmerce/catalogsrv/internal/db/dberror"
	"github.com/openmerce/catalogsrv/pkg/apperrors"
	"github.com/openmerce/catalogsrv/pkg/types"
)

func TestBulkDeleteCombinationsAllSucceed(t *testing.T) {
	f := newFakeDb()
	f.add(validCombination(1, 1))
	f.add(validCombination(2, 1))
	ctx := testContext(t, f)

	require.NoError(t, BulkDeleteCombinations(ctx, []types.CombinationId{1, 2}, "catalog.prune"))
	assert.ErrorIs(t, AssertCombinationExists(ctx, 1), ErrCombinationNotFound)
	assert.ErrorIs(t, AssertCombinationExists(ctx, 2), ErrCombinationNotFound)
}

func TestBulkDeleteCombinationsContinuesPastFailure(t *testing.T) {
	// B is already gone before the call: the result names exactly B, and A
	// and C are still deleted, proving one failure does not halt later ids.
	f := newFakeDb()
	f.add(validCombination(1, 1)) // A
	f.add(validCombination(3, 1)) // C
	ctx := testContext(t, f)

	err := BulkDeleteCombinations(ctx, []types.CombinationId{1, 2, 3}, "catalog.prune")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBulkDeleteFailed)

	var bulkErr *BulkDeleteError
	require.ErrorAs(t, err, &bulkErr)
	require.Len(t, bulkErr.Failed, 1)
	assert.Equal(t, types.CombinationId(2), bulkErr.Failed[0].ID)
	assert.ErrorIs(t, bulkErr.Failed[0].Err, ErrCombinationNotFound)
	assert.Equal(t, []types.CombinationId{1, 3}, bulkErr.Deleted)

	assert.ErrorIs(t, AssertCombinationExists(ctx, 1), ErrCombinationNotFound)
	assert.ErrorIs(t, AssertCombinationExists(ctx, 3), ErrCombinationNotFound)
	// Id 2 never reached the store delete: the load before it already
	// reported not found.
	assert.Equal(t, []types.CombinationId{1, 3}, f.deleteOrder)
}

func TestBulkDeleteCombinationsAggregatesEveryFailure(t *testing.T) {
	f := newFakeDb()
	f.add(validCombination(1, 1))
	f.add(validCombination(2, 1))
	f.deleteErr[2] = dberror.ErrDatabase.Msg("combination is still referenced")
	ctx := testContext(t, f)

	err := BulkDeleteCombinations(ctx, []types.CombinationId{1, 2, 9}, "catalog.prune")
	require.Error(t, err)

	var bulkErr *BulkDeleteError
	require.ErrorAs(t, err, &bulkErr)
	require.Len(t, bulkErr.Failed, 2)

	// Attempt order is preserved, with the cause that applies to each id.
	assert.Equal(t, types.CombinationId(2), bulkErr.Failed[0].ID)
	assert.ErrorIs(t, bulkErr.Failed[0].Err, ErrDeleteFailed)
	assert.Equal(t, types.CombinationId(9), bulkErr.Failed[1].ID)
	assert.ErrorIs(t, bulkErr.Failed[1].Err, ErrCombinationNotFound)

	// The composite unwraps to the per-id causes.
	assert.ErrorIs(t, err, ErrDeleteFailed)
	assert.ErrorIs(t, err, ErrCombinationNotFound)

	// The caller's error code rides on each per-id failure.
	aerr, ok := bulkErr.Failed[0].Err.(apperrors.Error)
	require.True(t, ok)
	assert.Equal(t, "catalog.prune", aerr.ErrorCode())
}

func TestBulkDeleteCombinationsEmptyInput(t *testing.T) {
	f := newFakeDb()
	ctx := testContext(t, f)
	assert.NoError(t, BulkDeleteCombinations(ctx, nil, ""))
}
