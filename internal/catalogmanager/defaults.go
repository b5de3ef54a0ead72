package catalogmanager

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/db"
	"github.com/openmerce/catalogsrv/internal/db/models"
	"github.com/openmerce/catalogsrv/pkg/apperrors"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// DefaultResolver supplies the catalog's business-rule choice of "best"
// default combination for a product, independent of the default flag.
// (nil, nil) means no candidate.
type DefaultResolver interface {
	BestCombination(ctx context.Context, productID types.ProductId) (*models.Combination, error)
}

// GetDefaultCombinationID returns the product's default-flagged combination
// id, trusting the stored flag. When no row is flagged the zero id is
// returned with no error (check with IsNil). When more than one row is
// flagged — an invariant violation this component tolerates — the smallest
// id wins, by virtue of the ascending sort behind the lookup. That tie-break
// is deliberate and relied upon by callers.
func GetDefaultCombinationID(ctx context.Context, productID types.ProductId) (types.CombinationId, apperrors.Error) {
	id, err := db.DB(ctx).GetDefaultCombinationID(ctx, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("failed to resolve default combination id")
		return 0, asAppError(err)
	}
	return id, nil
}

// FindDefaultCombination asks the resolver collaborator for the product's
// best default combination. It is deliberately independent of
// GetDefaultCombinationID and the two may disagree for the same product;
// callers pick the contract they need. A resolver failure is logged and
// replaced by the uniform ErrDefaultResolution — the resolver's own error
// types never cross this boundary. No candidate yields (nil, nil).
func FindDefaultCombination(ctx context.Context, productID types.ProductId, resolver DefaultResolver) (*models.Combination, apperrors.Error) {
	if resolver == nil {
		return nil, ErrDefaultResolution.Msg("default resolver is required")
	}

	c, err := resolver.BestCombination(ctx, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("default resolver failed")
		return nil, ErrDefaultResolution
	}
	return c, nil
}
