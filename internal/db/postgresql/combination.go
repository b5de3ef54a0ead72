package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/openmerce/catalogsrv/internal/db/dberror"
	"github.com/openmerce/catalogsrv/internal/db/models"
	"github.com/openmerce/catalogsrv/pkg/types"
)

// GetCombination retrieves a combination by primary key, including its
// attribute-id set from the link table.
// Returns ErrNotFound if no row exists for the id.
func (h *catalogDb) GetCombination(ctx context.Context, id types.CombinationId) (*models.Combination, error) {
	if id.IsNil() {
		return nil, dberror.ErrInvalidInput.Msg("combination id is required")
	}

	query := `
		SELECT id, product_id, reference, price_impact, weight_impact, quantity, minimal_quantity, default_on, info
		FROM combinations
		WHERE id = $1;
	`
	c := &models.Combination{}
	row := h.c().QueryRowContext(ctx, query, id)
	err := row.Scan(&c.ID, &c.ProductID, &c.Reference, &c.PriceImpact, &c.WeightImpact,
		&c.Quantity, &c.MinimalQuantity, &c.DefaultOn, &c.Info)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Ctx(ctx).Info().Str("combination_id", id.String()).Msg("combination not found")
			return nil, dberror.ErrNotFound.Msg("combination not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to retrieve combination")
		return nil, dberror.ErrDatabase.Err(err)
	}

	attrs, err := h.combinationAttributeIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	c.AttributeIDs = attrs
	return c, nil
}

func (h *catalogDb) combinationAttributeIDs(ctx context.Context, id types.CombinationId) ([]types.AttributeId, error) {
	query := `
		SELECT attribute_id
		FROM combination_attributes
		WHERE combination_id = $1
		ORDER BY attribute_id ASC;
	`
	rows, err := h.c().QueryContext(ctx, query, id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to retrieve combination attributes")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	attrs := []types.AttributeId{}
	for rows.Next() {
		var a types.AttributeId
		if err := rows.Scan(&a); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return attrs, nil
}

// UpdateCombinationFields persists only the named fields of the combination.
// Field names are resolved through models.CombinationFieldColumns; an unknown
// name fails with ErrInvalidInput before any SQL is issued. Returns
// ErrNotFound if the row no longer exists.
func (h *catalogDb) UpdateCombinationFields(ctx context.Context, c *models.Combination, fields []string) error {
	if c == nil || c.ID.IsNil() {
		return dberror.ErrInvalidInput.Msg("combination id is required")
	}
	if len(fields) == 0 {
		return dberror.ErrInvalidInput.Msg("no fields to update")
	}

	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if seen[field] {
			continue
		}
		seen[field] = true
		col, ok := models.CombinationFieldColumns[field]
		if !ok {
			log.Ctx(ctx).Error().Str("field", field).Msg("unknown combination field")
			return dberror.ErrInvalidInput.Msg("unknown combination field: " + field)
		}
		value, _ := c.FieldValue(field)
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, c.ID)

	// Column names come from our own mapping, never from caller input.
	query := fmt.Sprintf(`
		UPDATE combinations
		SET %s
		WHERE id = $%d
		RETURNING id;
	`, strings.Join(set, ", "), len(args))

	var updatedID types.CombinationId
	err := h.c().QueryRowContext(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Ctx(ctx).Info().Str("combination_id", c.ID.String()).Msg("combination not found")
			return dberror.ErrNotFound.Msg("combination not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", c.ID.String()).Msg("failed to update combination")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// DeleteCombination removes the combination row and its link-table
// relationships in one transaction. Returns ErrNotFound if the row does not
// exist.
func (h *catalogDb) DeleteCombination(ctx context.Context, id types.CombinationId) error {
	if id.IsNil() {
		return dberror.ErrInvalidInput.Msg("combination id is required")
	}

	tx, err := h.c().BeginTx(ctx, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to begin transaction")
		return dberror.ErrDatabase.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM combination_attributes WHERE combination_id = $1;`, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to delete combination attributes")
		return dberror.ErrDatabase.Err(err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM combinations WHERE id = $1;`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // Foreign key restrict violation
			log.Ctx(ctx).Error().Str("combination_id", id.String()).Str("constraint", pgErr.ConstraintName).Msg("combination is still referenced")
			return dberror.ErrDatabase.MsgErr("combination is still referenced", err)
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to delete combination")
		return dberror.ErrDatabase.Err(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	if n == 0 {
		log.Ctx(ctx).Info().Str("combination_id", id.String()).Msg("combination not found")
		return dberror.ErrNotFound.Msg("combination not found")
	}

	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to commit combination delete")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// CombinationExists probes for the row with a minimal existence query.
// Returns ErrNotFound when absent, nil otherwise.
func (h *catalogDb) CombinationExists(ctx context.Context, id types.CombinationId) error {
	if id.IsNil() {
		return dberror.ErrInvalidInput.Msg("combination id is required")
	}

	query := `
		SELECT 1
		FROM combinations
		WHERE id = $1;
	`
	var one int
	err := h.c().QueryRowContext(ctx, query, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dberror.ErrNotFound.Msg("combination not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to check combination existence")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// GetProductID resolves the parent product of a combination.
// Returns ErrNotFound if the combination does not exist or carries no
// resolvable product id.
func (h *catalogDb) GetProductID(ctx context.Context, id types.CombinationId) (types.ProductId, error) {
	if id.IsNil() {
		return 0, dberror.ErrInvalidInput.Msg("combination id is required")
	}

	query := `
		SELECT product_id
		FROM combinations
		WHERE id = $1;
	`
	var productID sql.NullInt64
	err := h.c().QueryRowContext(ctx, query, id).Scan(&productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Ctx(ctx).Info().Str("combination_id", id.String()).Msg("combination not found")
			return 0, dberror.ErrNotFound.Msg("combination not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("combination_id", id.String()).Msg("failed to resolve product id")
		return 0, dberror.ErrDatabase.Err(err)
	}
	if !productID.Valid || productID.Int64 <= 0 {
		return 0, dberror.ErrNotFound.Msg("combination has no product")
	}
	return types.ProductId(productID.Int64), nil
}

// GetCombinationIDs lists every combination of a product, strictly ascending
// by id. A product with no combinations yields an empty slice, not an error.
func (h *catalogDb) GetCombinationIDs(ctx context.Context, productID types.ProductId) ([]types.CombinationId, error) {
	if productID.IsNil() {
		return nil, dberror.ErrInvalidInput.Msg("product id is required")
	}

	query := `
		SELECT id
		FROM combinations
		WHERE product_id = $1
		ORDER BY id ASC;
	`
	rows, err := h.c().QueryContext(ctx, query, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("failed to list combinations")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	ids := []types.CombinationId{}
	for rows.Next() {
		var id types.CombinationId
		if err := rows.Scan(&id); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return ids, nil
}

// GetCombinationAttributeSets returns every combination of the product with
// its attribute-id set. Sets come back sorted ascending and grouped in
// ascending combination-id order; combinations without attributes appear
// with an empty set.
func (h *catalogDb) GetCombinationAttributeSets(ctx context.Context, productID types.ProductId) ([]models.CombinationAttributeSet, error) {
	if productID.IsNil() {
		return nil, dberror.ErrInvalidInput.Msg("product id is required")
	}

	query := `
		SELECT c.id, ca.attribute_id
		FROM combinations c
		LEFT JOIN combination_attributes ca ON ca.combination_id = c.id
		WHERE c.product_id = $1
		ORDER BY c.id ASC, ca.attribute_id ASC;
	`
	rows, err := h.c().QueryContext(ctx, query, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("failed to list combination attribute sets")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	sets := []models.CombinationAttributeSet{}
	for rows.Next() {
		var id types.CombinationId
		var attr sql.NullInt64
		if err := rows.Scan(&id, &attr); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		if len(sets) == 0 || sets[len(sets)-1].CombinationID != id {
			sets = append(sets, models.CombinationAttributeSet{CombinationID: id, AttributeIDs: []types.AttributeId{}})
		}
		if attr.Valid {
			last := &sets[len(sets)-1]
			last.AttributeIDs = append(last.AttributeIDs, types.AttributeId(attr.Int64))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return sets, nil
}

// GetDefaultCombinationID returns the first default-flagged combination of
// the product in ascending id order. When several rows are flagged, the
// smallest id wins by virtue of the sort; when none is flagged, the zero id
// and no error are returned.
func (h *catalogDb) GetDefaultCombinationID(ctx context.Context, productID types.ProductId) (types.CombinationId, error) {
	if productID.IsNil() {
		return 0, dberror.ErrInvalidInput.Msg("product id is required")
	}

	query := `
		SELECT id
		FROM combinations
		WHERE product_id = $1 AND default_on = true
		ORDER BY id ASC
		LIMIT 1;
	`
	var id types.CombinationId
	err := h.c().QueryRowContext(ctx, query, productID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("product_id", productID.String()).Msg("failed to resolve default combination")
		return 0, dberror.ErrDatabase.Err(err)
	}
	return id, nil
}
