package catalogmanager

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/db"
	"github.com/openmerce/catalogsrv/internal/db/dberror"
	"github.com/openmerce/catalogsrv/internal/db/models"
	"github.com/openmerce/catalogsrv/pkg/apperrors"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// GetCombination loads a combination by primary key, including its
// attribute-id set. Returns ErrCombinationNotFound if the id does not exist.
func GetCombination(ctx context.Context, id types.CombinationId) (*models.Combination, apperrors.Error) {
	c, err := db.DB(ctx).GetCombination(ctx, id)
	if err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return nil, ErrCombinationNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to load combination")
		return nil, asAppError(err)
	}
	return c, nil
}

// UpdateCombination validates the full entity, then persists only the named
// fields. The validator's rejection propagates as ErrValidation and skips
// persistence entirely. errorCode is an opaque caller tag attached to
// persistence failures; it never influences behavior here.
func UpdateCombination(ctx context.Context, c *models.Combination, fields []string, errorCode string) apperrors.Error {
	if c == nil {
		return dberror.ErrInvalidInput.Msg("combination is required")
	}

	if err := combinationValidator.ValidateCombination(ctx, c); err != nil {
		log.Ctx(ctx).Info().Err(err).Str("combination_id", c.ID.String()).Msg("combination rejected by validator")
		return ErrValidation.Err(err)
	}

	if err := db.DB(ctx).UpdateCombinationFields(ctx, c, fields); err != nil {
		var aerr apperrors.Error
		if errors.Is(err, dberror.ErrNotFound) {
			aerr = ErrCombinationNotFound
		} else if errors.Is(err, dberror.ErrInvalidInput) {
			aerr = asAppError(err)
		} else {
			log.Ctx(ctx).Error().Err(err).Str("combination_id", c.ID.String()).Msg("failed to update combination")
			aerr = ErrUnableToUpdateCombination.Err(err)
		}
		if errorCode != "" {
			aerr = aerr.SetErrorCode(errorCode)
		}
		return aerr
	}
	return nil
}

// DeleteCombination loads the combination first, so a missing id surfaces as
// ErrCombinationNotFound exactly as it does on GetCombination, then deletes
// the row and its attribute relationships. A store-layer deletion failure is
// wrapped into ErrDeleteFailed carrying the opaque errorCode.
func DeleteCombination(ctx context.Context, id types.CombinationId, errorCode string) apperrors.Error {
	if _, err := GetCombination(ctx, id); err != nil {
		if errorCode != "" {
			err = err.SetErrorCode(errorCode)
		}
		return err
	}

	if err := db.DB(ctx).DeleteCombination(ctx, id); err != nil {
		var aerr apperrors.Error
		if errors.Is(err, dberror.ErrNotFound) {
			// Deleted between the load and the delete.
			aerr = ErrCombinationNotFound
		} else {
			log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to delete combination")
			aerr = ErrDeleteFailed.Err(err)
		}
		if errorCode != "" {
			aerr = aerr.SetErrorCode(errorCode)
		}
		return aerr
	}
	return nil
}

// AssertCombinationExists probes for the combination without fetching the
// row. Returns nil when it exists, ErrCombinationNotFound otherwise.
func AssertCombinationExists(ctx context.Context, id types.CombinationId) apperrors.Error {
	if err := db.DB(ctx).CombinationExists(ctx, id); err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return ErrCombinationNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to check combination existence")
		return asAppError(err)
	}
	return nil
}

// GetProductID resolves the parent product of a combination.
func GetProductID(ctx context.Context, id types.CombinationId) (types.ProductId, apperrors.Error) {
	productID, err := db.DB(ctx).GetProductID(ctx, id)
	if err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return 0, ErrCombinationNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to resolve product id")
		return 0, asAppError(err)
	}
	return productID, nil
}

// GetCombinationIDs lists every combination of the product in strictly
// ascending id order. A product with no combinations yields an empty slice.
func GetCombinationIDs(ctx context.Context, productID types.ProductId) ([]types.CombinationId, apperrors.Error) {
	ids, err := db.DB(ctx).GetCombinationIDs(ctx, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("failed to list combinations")
		return nil, asAppError(err)
	}
	return ids, nil
}

// asAppError passes apperrors through and wraps anything else into the
// generic catalog error.
func asAppError(err error) apperrors.Error {
	var aerr apperrors.Error
	if errors.As(err, &aerr) {
		return aerr
	}
	return ErrCatalogError.Err(err)
}
