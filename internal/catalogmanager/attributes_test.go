package catalogmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmerce/catalogsrv/pkg/types"
)

func addWithAttributes(f *fakeDb, id types.CombinationId, productID types.ProductId, attrs ...types.AttributeId) {
	c := validCombination(id, productID)
	c.AttributeIDs = attrs
	f.add(c)
}

func TestGetCombinationIDsByAttributesInputOrder(t *testing.T) {
	f := newFakeDb()
	addWithAttributes(f, 7, 1, 1, 2)
	ctx := testContext(t, f)

	a, err := GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{2, 1})
	require.Nil(t, err)
	b, err := GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{1, 2})
	require.Nil(t, err)

	assert.Equal(t, []types.CombinationId{7}, a)
	assert.Equal(t, a, b)
}

func TestGetCombinationIDsByAttributesExactSet(t *testing.T) {
	f := newFakeDb()
	addWithAttributes(f, 7, 1, 1, 2)
	ctx := testContext(t, f)

	ids, err := GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{1, 2})
	require.Nil(t, err)
	assert.Equal(t, []types.CombinationId{7}, ids)

	// A superset of the combination's attribute set does not match.
	ids, err = GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{1, 2, 3})
	require.Nil(t, err)
	assert.Empty(t, ids)

	// Nor does a subset.
	ids, err = GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{1})
	require.Nil(t, err)
	assert.Empty(t, ids)
}

func TestGetCombinationIDsByAttributesAllMatches(t *testing.T) {
	// The unique-set invariant is soft: two combinations of one product can
	// carry the same attribute set, and both must be reported.
	f := newFakeDb()
	addWithAttributes(f, 7, 1, 1, 2)
	addWithAttributes(f, 9, 1, 2, 1)
	addWithAttributes(f, 8, 1, 1, 3)
	ctx := testContext(t, f)

	ids, err := GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{1, 2})
	require.Nil(t, err)
	assert.Equal(t, []types.CombinationId{7, 9}, ids)
}

func TestGetCombinationIDsByAttributesOtherProduct(t *testing.T) {
	f := newFakeDb()
	addWithAttributes(f, 7, 1, 1, 2)
	addWithAttributes(f, 8, 2, 1, 2)
	ctx := testContext(t, f)

	ids, err := GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{1, 2})
	require.Nil(t, err)
	assert.Equal(t, []types.CombinationId{7}, ids)
}

func TestGetCombinationIDsByAttributesNoMatch(t *testing.T) {
	f := newFakeDb()
	addWithAttributes(f, 7, 1, 1, 2)
	ctx := testContext(t, f)

	ids, err := GetCombinationIDsByAttributes(ctx, 1, []types.AttributeId{5})
	require.Nil(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
