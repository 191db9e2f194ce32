package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/mercado/app/models"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
	"github.com/shashiranjanraj/mercado/pkg/event"
)

// Cart holds the customer's consolidated selection. Entries refer to
// products by code; every stock and price read goes through the catalog.
//
// Conservation: for every code, catalog stock plus the quantity held here
// equals the stock before the units were added.
type Cart struct {
	catalog *Catalog
	qty     map[int]int
	order   []int
	events  *event.Bus
	now     func() time.Time
	newID   func() uuid.UUID
}

// NewCart binds a cart to catalog and stops the catalog from deleting
// products the cart still holds.
func NewCart(catalog *Catalog, bus *event.Bus) *Cart {
	c := &Cart{
		catalog: catalog,
		qty:     make(map[int]int),
		events:  bus,
		now:     time.Now,
		newID:   uuid.New,
	}
	catalog.inUse = c.Holds
	return c
}

// Line is one rendered cart row.
type Line struct {
	Code      int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type View struct {
	Lines []Line
	Total decimal.Decimal
}

func (v View) Empty() bool { return len(v.Lines) == 0 }

// Units sums the quantities of every line.
func (v View) Units() int {
	n := 0
	for _, l := range v.Lines {
		n += l.Quantity
	}
	return n
}

// Receipt summarises a finalized sale.
type Receipt struct {
	ID         uuid.UUID
	FinishedAt time.Time
	View
}

// Add moves quantity units of code from stock into the cart.
func (c *Cart) Add(code, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.Newf(pkgerrors.CodeInvalidQuantity, "quantity must be greater than 0, got %d", quantity).
			WithDetail("quantity", quantity)
	}
	p, err := c.catalog.take(code, quantity)
	if err != nil {
		return err
	}
	if _, ok := c.qty[code]; !ok {
		c.order = append(c.order, code)
	}
	c.qty[code] += quantity

	c.events.Fire(event.New(event.CartAdded).
		With("code", code).
		With("name", p.Name).
		With("quantity", quantity).
		With("stock", p.Stock))
	return nil
}

// Remove drops the whole entry for code and returns its units to stock.
func (c *Cart) Remove(code int) (models.CartEntry, error) {
	quantity, ok := c.qty[code]
	if !ok {
		return models.CartEntry{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d is not in the cart", code).
			WithDetail("code", code)
	}
	p, ok := c.catalog.give(code, quantity)
	if !ok {
		return models.CartEntry{}, pkgerrors.Newf(pkgerrors.CodeInternal,
			"cart holds %d of product %d, which is not in the catalog", quantity, code).
			WithDetail("code", code)
	}
	c.drop(code)

	c.events.Fire(event.New(event.CartRemoved).
		With("code", code).
		With("name", p.Name).
		With("quantity", quantity).
		With("stock", p.Stock))
	return models.CartEntry{ProductCode: code, Quantity: quantity}, nil
}

func (c *Cart) drop(code int) {
	delete(c.qty, code)
	for i, held := range c.order {
		if held == code {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// View prices every entry at the catalog's current unit price.
func (c *Cart) View() View {
	v := View{Lines: make([]Line, 0, len(c.order)), Total: decimal.Zero}
	for _, code := range c.order {
		p, ok := c.catalog.Get(code)
		if !ok {
			continue
		}
		q := c.qty[code]
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(q)))
		v.Lines = append(v.Lines, Line{
			Code:      code,
			Name:      p.Name,
			Quantity:  q,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		})
		v.Total = v.Total.Add(subtotal)
	}
	return v
}

// Finalize sells the cart: it returns the receipt and clears the entries
// without restoring stock.
func (c *Cart) Finalize() (Receipt, error) {
	if len(c.order) == 0 {
		return Receipt{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	r := Receipt{
		ID:         c.newID(),
		FinishedAt: c.now(),
		View:       c.View(),
	}
	c.qty = make(map[int]int)
	c.order = nil

	c.events.Fire(event.New(event.SaleFinalized).
		With("receipt", r.ID.String()).
		With("units", r.Units()).
		With("total", r.Total.StringFixed(2)))
	return r, nil
}

// Holds reports whether code has an entry.
func (c *Cart) Holds(code int) bool {
	_, ok := c.qty[code]
	return ok
}

// Quantity returns the units held for code.
func (c *Cart) Quantity(code int) int { return c.qty[code] }

func (c *Cart) Len() int { return len(c.order) }

// Entries returns the entries in insertion order.
func (c *Cart) Entries() []models.CartEntry {
	out := make([]models.CartEntry, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, models.CartEntry{ProductCode: code, Quantity: c.qty[code]})
	}
	return out
}

// restore re-links persisted entries. Entries for products the catalog no
// longer has are dropped and reported; stock is taken as stored.
func (c *Cart) restore(entries []models.CartEntry) ([]int, error) {
	var dropped []int
	for _, e := range entries {
		if e.Quantity <= 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeCorruptState,
				"cart entry for product %d has quantity %d", e.ProductCode, e.Quantity).
				WithDetail("code", e.ProductCode)
		}
		if _, dup := c.qty[e.ProductCode]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeCorruptState, "duplicate cart entry for product %d", e.ProductCode).
				WithDetail("code", e.ProductCode)
		}
		if _, ok := c.catalog.Get(e.ProductCode); !ok {
			dropped = append(dropped, e.ProductCode)
			continue
		}
		c.qty[e.ProductCode] = e.Quantity
		c.order = append(c.order, e.ProductCode)
	}
	return dropped, nil
}
