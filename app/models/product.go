package models

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

// Product is a catalogue item. Stock counts the units not held by any cart.
type Product struct {
	Code  int             `field:"code"  validate:"gt=0"`
	Name  string          `field:"name"`
	Price decimal.Decimal `field:"price" validate:"gte=0"`
	Stock int             `field:"stock" validate:"gte=0"`
}

// NewProduct trims the name and validates every field. A blank name is
// allowed.
func NewProduct(code int, name string, price decimal.Decimal, stock int) (Product, error) {
	p := Product{
		Code:  code,
		Name:  strings.TrimSpace(name),
		Price: price,
		Stock: stock,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) Validate() error {
	return check(pkgerrors.CodeInvalidInput, "product", p)
}

// CartEntry is one consolidated cart line. It refers to its product by code.
type CartEntry struct {
	ProductCode int `field:"code"     validate:"gt=0"`
	Quantity    int `field:"quantity" validate:"gt=0"`
}

func NewCartEntry(code, quantity int) (CartEntry, error) {
	e := CartEntry{ProductCode: code, Quantity: quantity}
	if err := check(pkgerrors.CodeInvalidQuantity, "cart entry", e); err != nil {
		return CartEntry{}, err
	}
	return e, nil
}
