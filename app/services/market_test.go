package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/mercado/app/models"
	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

func TestMarket_StateRoundTrip(t *testing.T) {
	m := newMarket(t)
	a, _ := m.Catalog.Register("Arroz", price("20"), 10)
	b, _ := m.Catalog.Register("Feijão", price("8.5"), 6)
	c, _ := m.Catalog.Register("Sal", price("2"), 1)
	require.NoError(t, m.Catalog.Delete(c))
	require.NoError(t, m.Cart.Add(b, 2))
	require.NoError(t, m.Cart.Add(a, 3))
	require.NoError(t, m.Admins.Register("98765432100", "pw"))

	restored, report, err := services.Restore(m.State(), services.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	assert.Empty(t, report.DroppedEntries)
	assert.False(t, report.DefaultAdminSeeded)

	assert.Equal(t, m.Catalog.List(), restored.Catalog.List())
	assert.Equal(t, m.Cart.Entries(), restored.Cart.Entries())
	assert.Equal(t, m.Admins.Export(), restored.Admins.Export())
	assert.True(t, restored.Admins.Authenticate("98765432100", "pw"))

	next, err := restored.Catalog.Register("Óleo", price("9"), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func TestRestore_DropsEntriesForMissingProducts(t *testing.T) {
	state := services.State{
		Products: []models.Product{{Code: 1, Name: "Arroz", Price: price("20"), Stock: 7}},
		Cart: []models.CartEntry{
			{ProductCode: 1, Quantity: 3},
			{ProductCode: 9, Quantity: 2},
		},
		Admins: []models.AdminCredential{{CPF: "12345678901", Secret: "1234"}},
	}

	m, report, err := services.Restore(state)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, report.DroppedEntries)
	assert.Equal(t, []models.CartEntry{{ProductCode: 1, Quantity: 3}}, m.Cart.Entries())

	p, _ := m.Catalog.Get(1)
	assert.Equal(t, 7, p.Stock, "stock is taken as stored")
}

func TestRestore_AcceptsBlankNameAndSecret(t *testing.T) {
	state := services.State{
		Products: []models.Product{{Code: 1, Name: "", Price: price("3"), Stock: 2}},
		Admins:   []models.AdminCredential{{CPF: "11111111111", Secret: ""}},
	}

	m, report, err := services.Restore(state)
	require.NoError(t, err)
	assert.False(t, report.DefaultAdminSeeded)
	assert.Equal(t, state.Products, m.Catalog.List())
	assert.True(t, m.Admins.Authenticate("11111111111", ""))
	assert.False(t, m.Admins.Authenticate("11111111111", "x"))

	err = m.Admins.Register("22222222222", "")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidInput), "new admins still need a secret")
}

func TestRestore_SeedsDefaultAdminWhenNoneStored(t *testing.T) {
	m, report, err := services.Restore(services.State{})
	require.NoError(t, err)
	assert.True(t, report.DefaultAdminSeeded)
	assert.True(t, m.Admins.Authenticate(services.DefaultAdminCPF, services.DefaultAdminSecret))
}

func TestRestore_RejectsCorruptState(t *testing.T) {
	admins := []models.AdminCredential{{CPF: "12345678901", Secret: "1234"}}
	cases := map[string]services.State{
		"negative stock": {
			Products: []models.Product{{Code: 1, Name: "A", Price: price("1"), Stock: -1}},
			Admins:   admins,
		},
		"negative price": {
			Products: []models.Product{{Code: 1, Name: "A", Price: price("-1"), Stock: 1}},
			Admins:   admins,
		},
		"duplicate code": {
			Products: []models.Product{
				{Code: 1, Name: "A", Price: price("1"), Stock: 1},
				{Code: 1, Name: "B", Price: price("1"), Stock: 1},
			},
			Admins: admins,
		},
		"zero quantity": {
			Products: []models.Product{{Code: 1, Name: "A", Price: price("1"), Stock: 1}},
			Cart:     []models.CartEntry{{ProductCode: 1, Quantity: 0}},
			Admins:   admins,
		},
		"bad cpf": {
			Admins: []models.AdminCredential{{CPF: "123", Secret: "x"}},
		},
		"duplicate admin": {
			Admins: append(admins, admins[0]),
		},
	}

	for name, state := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := services.Restore(state)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeCorruptState), "got %v", err)
		})
	}
}

func TestRestore_KeepsHigherLastCode(t *testing.T) {
	state := services.State{
		Products: []models.Product{{Code: 2, Name: "A", Price: price("1"), Stock: 1}},
		LastCode: 5,
	}
	m, _, err := services.Restore(state)
	require.NoError(t, err)

	code, err := m.Catalog.Register("B", price("1"), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, code)
}
