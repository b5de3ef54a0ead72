package models

import (
	"github.com/jackc/pgtype"
	"github.com/shopspring/decimal"

	"github.com/openmerce/catalogsrv/pkg/types"
)

/*
 combinations
      Column      |     Type      | Collation | Nullable | Default
------------------+---------------+-----------+----------+---------
 id               | bigint        |           | not null |
 product_id       | bigint        |           | not null |
 reference        | varchar(64)   |           |          |
 price_impact     | numeric(17,2) |           | not null | 0
 weight_impact    | numeric(17,3) |           | not null | 0
 quantity         | integer       |           | not null | 0
 minimal_quantity | integer       |           | not null | 1
 default_on       | boolean       |           | not null | false
 info             | jsonb         |           |          |

 combination_attributes
      Column      |  Type  | Collation | Nullable | Default
------------------+--------+-----------+----------+---------
 combination_id   | bigint |           | not null |
 attribute_id     | bigint |           | not null |
*/

// Combination is one variant of a product, distinguished from its siblings
// by its attribute-id set. Business fields beyond identity are treated
// opaquely by this component; they change only through named-field partial
// updates.
type Combination struct {
	ID              types.CombinationId `db:"id"`
	ProductID       types.ProductId     `db:"product_id" validate:"required,gt=0"`
	Reference       string              `db:"reference" validate:"max=64"`
	PriceImpact     decimal.Decimal     `db:"price_impact"`
	WeightImpact    decimal.Decimal     `db:"weight_impact"`
	Quantity        int                 `db:"quantity" validate:"gte=0"`
	MinimalQuantity int                 `db:"minimal_quantity" validate:"gte=1"`
	DefaultOn       bool                `db:"default_on"`
	Info            pgtype.JSONB        `db:"info"`

	// AttributeIDs is the combination's option-value set, sorted ascending.
	// Lives in combination_attributes and is loaded alongside the row.
	AttributeIDs []types.AttributeId `db:"-"`
}

// CombinationFieldColumns maps partial-update field names to their columns.
// Identity (ID, ProductID) and the attribute set are not updatable here.
var CombinationFieldColumns = map[string]string{
	"Reference":       "reference",
	"PriceImpact":     "price_impact",
	"WeightImpact":    "weight_impact",
	"Quantity":        "quantity",
	"MinimalQuantity": "minimal_quantity",
	"DefaultOn":       "default_on",
	"Info":            "info",
}

// FieldValue returns the current value of a named updatable field.
func (c *Combination) FieldValue(field string) (any, bool) {
	switch field {
	case "Reference":
		return c.Reference, true
	case "PriceImpact":
		return c.PriceImpact, true
	case "WeightImpact":
		return c.WeightImpact, true
	case "Quantity":
		return c.Quantity, true
	case "MinimalQuantity":
		return c.MinimalQuantity, true
	case "DefaultOn":
		return c.DefaultOn, true
	case "Info":
		return c.Info, true
	}
	return nil, false
}

// CombinationAttributeSet pairs a combination id with its attribute-id set,
// sorted ascending.
type CombinationAttributeSet struct {
	CombinationID types.CombinationId
	AttributeIDs  []types.AttributeId
}
