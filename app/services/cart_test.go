package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

func stock(t *testing.T, m *services.Market, code int) int {
	t.Helper()
	p, ok := m.Catalog.Get(code)
	require.True(t, ok, "product %d missing", code)
	return p.Stock
}

func TestCart_AddThenRemoveRestoresStock(t *testing.T) {
	m := newMarket(t)
	code, _ := m.Catalog.Register("Arroz", price("20.00"), 10)

	require.NoError(t, m.Cart.Add(code, 3))
	assert.Equal(t, 7, stock(t, m, code))
	assert.Equal(t, "60.00", m.Cart.View().Total.StringFixed(2))

	entry, err := m.Cart.Remove(code)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, 10, stock(t, m, code))
	assert.True(t, m.Cart.View().Empty())
}

func TestCart_AddConsolidatesEntries(t *testing.T) {
	m := newMarket(t)
	code, _ := m.Catalog.Register("Arroz", price("20"), 10)

	require.NoError(t, m.Cart.Add(code, 2))
	require.NoError(t, m.Cart.Add(code, 5))

	assert.Equal(t, 1, m.Cart.Len())
	assert.Equal(t, 7, m.Cart.Quantity(code))
	assert.Equal(t, 3, stock(t, m, code))
}

func TestCart_AddFailures(t *testing.T) {
	m := newMarket(t)
	code, _ := m.Catalog.Register("Arroz", price("20"), 10)

	err := m.Cart.Add(code, 15)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeInsufficientStock), "got %v", err)
	available, ok := pkgerrors.As(err).Detail("available")
	require.True(t, ok)
	assert.Equal(t, 10, available)
	assert.Equal(t, 10, stock(t, m, code))

	for _, q := range []int{0, -2} {
		err = m.Cart.Add(code, q)
		assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidQuantity), "quantity %d: %v", q, err)
	}

	err = m.Cart.Add(42, 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	assert.Zero(t, m.Cart.Len())
	assert.Equal(t, 10, stock(t, m, code))
}

func TestCart_AddExactStock(t *testing.T) {
	m := newMarket(t)
	code, _ := m.Catalog.Register("Leite", price("5"), 4)

	require.NoError(t, m.Cart.Add(code, 4))
	assert.Zero(t, stock(t, m, code))

	err := m.Cart.Add(code, 1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInsufficientStock))
}

func TestCart_RemoveUnknown(t *testing.T) {
	m := newMarket(t)
	_, err := m.Cart.Remove(1)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestCart_ConservationAcrossOperations(t *testing.T) {
	m := newMarket(t)
	initial := map[int]int{}
	for _, s := range []int{10, 5, 8} {
		code, err := m.Catalog.Register("p", price("1.25"), s)
		require.NoError(t, err)
		initial[code] = s
	}

	ops := []struct {
		add  bool
		code int
		qty  int
	}{
		{true, 1, 3}, {true, 2, 5}, {true, 1, 4}, {false, 2, 0},
		{true, 3, 9}, {true, 3, 8}, {false, 1, 0}, {true, 2, 1}, {true, 1, 10},
	}
	for _, op := range ops {
		if op.add {
			_ = m.Cart.Add(op.code, op.qty)
		} else {
			_, _ = m.Cart.Remove(op.code)
		}
		for code, s := range initial {
			assert.Equal(t, s-m.Cart.Quantity(code), stock(t, m, code), "code %d", code)
			assert.GreaterOrEqual(t, stock(t, m, code), 0)
		}
		for _, e := range m.Cart.Entries() {
			assert.Positive(t, e.Quantity)
		}
	}
}

func TestCart_ViewOrderAndSubtotals(t *testing.T) {
	m := newMarket(t)
	a, _ := m.Catalog.Register("Arroz", price("20.00"), 10)
	b, _ := m.Catalog.Register("Café", price("15.90"), 10)

	require.NoError(t, m.Cart.Add(b, 2))
	require.NoError(t, m.Cart.Add(a, 1))

	v := m.Cart.View()
	require.Len(t, v.Lines, 2)
	assert.Equal(t, "Café", v.Lines[0].Name)
	assert.Equal(t, "31.80", v.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "Arroz", v.Lines[1].Name)
	assert.Equal(t, "51.80", v.Total.StringFixed(2))
	assert.Equal(t, 3, v.Units())
}

func TestCart_EmptyViewIsValid(t *testing.T) {
	m := newMarket(t)
	v := m.Cart.View()
	assert.True(t, v.Empty())
	assert.True(t, v.Total.IsZero())
}

func TestCart_FinalizeKeepsStockReduced(t *testing.T) {
	id := uuid.MustParse("6f1c1d5e-8c39-4c57-9a43-9d1f2d8a1a10")
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	m := services.NewMarket(
		services.WithBcryptCost(bcrypt.MinCost),
		services.WithClock(func() time.Time { return at }),
		services.WithReceiptIDs(func() uuid.UUID { return id }),
	)
	code, _ := m.Catalog.Register("Arroz", price("20.00"), 10)
	require.NoError(t, m.Cart.Add(code, 3))

	r, err := m.Cart.Finalize()
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, at, r.FinishedAt)
	assert.Equal(t, "60.00", r.Total.StringFixed(2))
	require.Len(t, r.Lines, 1)
	assert.Equal(t, 3, r.Lines[0].Quantity)

	assert.Zero(t, m.Cart.Len())
	assert.Equal(t, 7, stock(t, m, code))

	require.NoError(t, m.Catalog.Delete(code), "finalized products are no longer held")
}

func TestCart_FinalizeEmpty(t *testing.T) {
	m := newMarket(t)
	_, err := m.Cart.Finalize()
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyCart))
}

func TestCart_ViewUsesCurrentCatalogPrice(t *testing.T) {
	m := newMarket(t)
	code, _ := m.Catalog.Register("Arroz", price("20"), 10)
	require.NoError(t, m.Cart.Add(code, 2))

	require.NoError(t, m.Catalog.Edit(code, services.ProductPatch{Price: ptr(price("25"))}))
	assert.Equal(t, "50.00", m.Cart.View().Total.StringFixed(2))
}
