package catalogmanager

import (
	"context"
	"slices"
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/db"
	"github.com/openmerce/catalogsrv/internal/db/dberror"
	"github.com/openmerce/catalogsrv/internal/db/models"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// fakeDb is an in-memory DB_ with the same ordering and not-found semantics
// as the postgres implementation.
type fakeDb struct {
	combinations map[types.CombinationId]*models.Combination

	// deleteErr injects a store-layer failure for specific ids.
	deleteErr map[types.CombinationId]error

	updateCalls int
	deleteOrder []types.CombinationId
}

func newFakeDb() *fakeDb {
	return &fakeDb{
		combinations: make(map[types.CombinationId]*models.Combination),
		deleteErr:    make(map[types.CombinationId]error),
	}
}

func (f *fakeDb) add(c models.Combination) {
	c.AttributeIDs = slices.Clone(c.AttributeIDs)
	slices.Sort(c.AttributeIDs)
	f.combinations[c.ID] = &c
}

func (f *fakeDb) GetCombination(_ context.Context, id types.CombinationId) (*models.Combination, error) {
	c, ok := f.combinations[id]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("combination not found")
	}
	cp := *c
	cp.AttributeIDs = slices.Clone(c.AttributeIDs)
	return &cp, nil
}

func (f *fakeDb) UpdateCombinationFields(_ context.Context, c *models.Combination, fields []string) error {
	f.updateCalls++
	stored, ok := f.combinations[c.ID]
	if !ok {
		return dberror.ErrNotFound.Msg("combination not found")
	}
	for _, field := range fields {
		if _, known := models.CombinationFieldColumns[field]; !known {
			return dberror.ErrInvalidInput.Msg("unknown combination field: " + field)
		}
	}
	for _, field := range fields {
		switch field {
		case "Reference":
			stored.Reference = c.Reference
		case "PriceImpact":
			stored.PriceImpact = c.PriceImpact
		case "WeightImpact":
			stored.WeightImpact = c.WeightImpact
		case "Quantity":
			stored.Quantity = c.Quantity
		case "MinimalQuantity":
			stored.MinimalQuantity = c.MinimalQuantity
		case "DefaultOn":
			stored.DefaultOn = c.DefaultOn
		case "Info":
			stored.Info = c.Info
		}
	}
	return nil
}

func (f *fakeDb) DeleteCombination(_ context.Context, id types.CombinationId) error {
	f.deleteOrder = append(f.deleteOrder, id)
	if err, ok := f.deleteErr[id]; ok {
		return err
	}
	if _, ok := f.combinations[id]; !ok {
		return dberror.ErrNotFound.Msg("combination not found")
	}
	delete(f.combinations, id)
	return nil
}

func (f *fakeDb) CombinationExists(_ context.Context, id types.CombinationId) error {
	if _, ok := f.combinations[id]; !ok {
		return dberror.ErrNotFound.Msg("combination not found")
	}
	return nil
}

func (f *fakeDb) GetProductID(_ context.Context, id types.CombinationId) (types.ProductId, error) {
	c, ok := f.combinations[id]
	if !ok {
		return 0, dberror.ErrNotFound.Msg("combination not found")
	}
	if c.ProductID.IsNil() {
		return 0, dberror.ErrNotFound.Msg("combination has no product")
	}
	return c.ProductID, nil
}

func (f *fakeDb) sortedIDs(productID types.ProductId) []types.CombinationId {
	ids := []types.CombinationId{}
	for id, c := range f.combinations {
		if c.ProductID == productID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (f *fakeDb) GetCombinationIDs(_ context.Context, productID types.ProductId) ([]types.CombinationId, error) {
	return f.sortedIDs(productID), nil
}

func (f *fakeDb) GetCombinationAttributeSets(_ context.Context, productID types.ProductId) ([]models.CombinationAttributeSet, error) {
	sets := []models.CombinationAttributeSet{}
	for _, id := range f.sortedIDs(productID) {
		sets = append(sets, models.CombinationAttributeSet{
			CombinationID: id,
			AttributeIDs:  slices.Clone(f.combinations[id].AttributeIDs),
		})
	}
	return sets, nil
}

func (f *fakeDb) GetDefaultCombinationID(_ context.Context, productID types.ProductId) (types.CombinationId, error) {
	for _, id := range f.sortedIDs(productID) {
		if f.combinations[id].DefaultOn {
			return id, nil
		}
	}
	return 0, nil
}

func (f *fakeDb) Close(_ context.Context) {}

var _ db.DB_ = (*fakeDb)(nil)

func testContext(_ *testing.T, f *fakeDb) context.Context {
	ctx := log.Logger.WithContext(context.Background())
	return db.ContextWithDB(ctx, f)
}
