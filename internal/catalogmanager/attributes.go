package catalogmanager

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/db"
	"github.com/openmerce/catalogsrv/pkg/apperrors"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// GetCombinationIDsByAttributes returns the ids of every combination of the
// product whose attribute-id set is exactly the given selection. The input
// is normalized by sorting, so caller order never affects the result, and
// matching is whole-set equality: a combination with a subset or superset of
// the selection does not match.
//
// The unique-set invariant is soft, so more than one combination can match;
// all of them are returned, in ascending id order. No match is an empty
// slice, not an error.
func GetCombinationIDsByAttributes(ctx context.Context, productID types.ProductId, attributeIDs []types.AttributeId) ([]types.CombinationId, apperrors.Error) {
	want := slices.Clone(attributeIDs)
	slices.Sort(want)

	sets, err := db.DB(ctx).GetCombinationAttributeSets(ctx, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("failed to load combination attribute sets")
		return nil, asAppError(err)
	}

	matches := []types.CombinationId{}
	for _, set := range sets {
		if slices.Equal(set.AttributeIDs, want) {
			matches = append(matches, set.CombinationID)
		}
	}
	return matches, nil
}
