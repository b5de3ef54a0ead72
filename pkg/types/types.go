package types

import "strconv"

// ProductId identifies a catalog product.
type ProductId int64

// CombinationId identifies one combination (variant) of a product.
type CombinationId int64

// AttributeId identifies a selectable option value (e.g. "red", "size M").
// This component consumes attribute ids as input; it never mints them.
type AttributeId int64

func (p ProductId) String() string {
	return strconv.FormatInt(int64(p), 10)
}

func (p ProductId) IsNil() bool {
	return p <= 0
}

func (c CombinationId) String() string {
	return strconv.FormatInt(int64(c), 10)
}

func (c CombinationId) IsNil() bool {
	return c <= 0
}

func (a AttributeId) String() string {
	return strconv.FormatInt(int64(a), 10)
}

func (a AttributeId) IsNil() bool {
	return a <= 0
}

type Nullable interface {
	IsNil() bool
}
