package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/mercado/app/models"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
	"github.com/shashiranjanraj/mercado/pkg/event"
)

// Catalog owns every product record and its stock.
//
// Codes are assigned from a high-water mark, so a code is never handed out
// twice even after the product holding it is deleted.
type Catalog struct {
	products map[int]*models.Product
	lastCode int
	inUse    func(code int) bool
	events   *event.Bus
}

func NewCatalog(bus *event.Bus) *Catalog {
	return &Catalog{
		products: make(map[int]*models.Product),
		events:   bus,
	}
}

// ProductPatch is a partial update. Nil fields keep their current value.
type ProductPatch struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Stock == nil
}

// ParsePatch turns raw prompt answers into a patch. Blank answers keep the
// old value; anything else must parse as a number.
func ParsePatch(name, price, stock string) (ProductPatch, error) {
	var patch ProductPatch

	if n := strings.TrimSpace(name); n != "" {
		patch.Name = &n
	}
	if raw := strings.TrimSpace(price); raw != "" {
		d, err := ParsePrice(raw)
		if err != nil {
			return ProductPatch{}, err
		}
		patch.Price = &d
	}
	if raw := strings.TrimSpace(stock); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ProductPatch{}, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "stock must be a whole number").
				WithDetail("stock", raw)
		}
		patch.Stock = &n
	}
	return patch, nil
}

// ParsePrice accepts "20", "20.5" and the comma form "20,50".
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ",") == 1 && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "price must be a number").
			WithDetail("price", raw)
	}
	return d, nil
}

// Register stores a new product and returns its code.
func (c *Catalog) Register(name string, price decimal.Decimal, stock int) (int, error) {
	code := c.nextCode()
	p, err := models.NewProduct(code, name, price, stock)
	if err != nil {
		return 0, err
	}
	c.products[code] = &p
	c.lastCode = code

	c.events.Fire(event.New(event.ProductRegistered).
		With("code", code).
		With("name", p.Name).
		With("stock", p.Stock))
	return code, nil
}

func (c *Catalog) nextCode() int {
	highest := c.lastCode
	for code := range c.products {
		if code > highest {
			highest = code
		}
	}
	return highest + 1
}

// Edit applies patch to the product. Either every field is applied or none.
func (c *Catalog) Edit(code int, patch ProductPatch) error {
	current, ok := c.products[code]
	if !ok {
		return notFoundProduct(code)
	}

	next := *current
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*current = next

	c.events.Fire(event.New(event.ProductUpdated).With("code", code))
	return nil
}

// Delete removes a product. Products held by the cart cannot be deleted;
// the customer has to remove them from the cart first.
func (c *Catalog) Delete(code int) error {
	p, ok := c.products[code]
	if !ok {
		return notFoundProduct(code)
	}
	if c.inUse != nil && c.inUse(code) {
		return pkgerrors.Newf(pkgerrors.CodeProductInCart,
			"product %d (%s) is in the cart", code, p.Name).
			WithDetail("code", code)
	}
	delete(c.products, code)

	c.events.Fire(event.New(event.ProductDeleted).With("code", code).With("name", p.Name))
	return nil
}

// Get returns a copy of the product.
func (c *Catalog) Get(code int) (models.Product, bool) {
	p, ok := c.products[code]
	if !ok {
		return models.Product{}, false
	}
	return *p, true
}

// List returns copies of every product ordered by code.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (c *Catalog) Len() int { return len(c.products) }

// LastCode is the highest code ever assigned.
func (c *Catalog) LastCode() int {
	if c.lastCode > 0 {
		return c.lastCode
	}
	return c.nextCode() - 1
}

// take reserves quantity units of code. Only the cart calls it.
func (c *Catalog) take(code, quantity int) (models.Product, error) {
	p, ok := c.products[code]
	if !ok {
		return models.Product{}, notFoundProduct(code)
	}
	if p.Stock < quantity {
		return models.Product{}, pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
			"only %d of %s available", p.Stock, p.Name).
			WithDetail("code", code).
			WithDetail("available", p.Stock).
			WithDetail("requested", quantity)
	}
	p.Stock -= quantity
	return *p, nil
}

// give returns quantity units of code to stock.
func (c *Catalog) give(code, quantity int) (models.Product, bool) {
	p, ok := c.products[code]
	if !ok {
		return models.Product{}, false
	}
	p.Stock += quantity
	return *p, true
}

func (c *Catalog) load(products []models.Product, lastCode int) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeCorruptState, err, "invalid product record").
				WithDetail("code", p.Code)
		}
		if _, dup := c.products[p.Code]; dup {
			return pkgerrors.Newf(pkgerrors.CodeCorruptState, "duplicate product code %d", p.Code).
				WithDetail("code", p.Code)
		}
		p := p
		c.products[p.Code] = &p
	}
	if lastCode < 0 {
		return pkgerrors.Newf(pkgerrors.CodeCorruptState, "negative last code %d", lastCode)
	}
	c.lastCode = c.nextCode() - 1
	if lastCode > c.lastCode {
		c.lastCode = lastCode
	}
	return nil
}

func notFoundProduct(code int) error {
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", code).
		WithDetail("code", code)
}
