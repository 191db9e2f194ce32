package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

func TestCart_RemoveWithoutCatalogProduct(t *testing.T) {
	m := NewMarket()
	code, err := m.Catalog.Register("Arroz", decimal.RequireFromString("20"), 5)
	require.NoError(t, err)
	require.NoError(t, m.Cart.Add(code, 2))

	// Only reachable if the delete guard is bypassed.
	delete(m.Catalog.products, code)

	_, err = m.Cart.Remove(code)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal), "got %v", err)
	assert.Equal(t, 1, m.Cart.Len(), "entry is kept when its units cannot be returned")
}
