// Package services holds the market's consistency rules: the catalog, the
// cart that reserves catalog stock, and the administrator registry.
package services

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/mercado/app/models"
	"github.com/shashiranjanraj/mercado/pkg/event"
)

// Credentials of the administrator every fresh market starts with.
const (
	DefaultAdminCPF    = "12345678901"
	DefaultAdminSecret = "1234"
)

// Market is one session's state: a catalog, the cart bound to it and the
// administrator registry.
type Market struct {
	Catalog *Catalog
	Cart    *Cart
	Admins  *AdminRegistry
	Events  *event.Bus
}

type options struct {
	bus   *event.Bus
	cost  int
	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*options)

func WithEvents(bus *event.Bus) Option { return func(o *options) { o.bus = bus } }

func WithBcryptCost(cost int) Option { return func(o *options) { o.cost = cost } }

func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

func WithReceiptIDs(newID func() uuid.UUID) Option { return func(o *options) { o.newID = newID } }

func build(opts []Option) *Market {
	o := options{cost: bcrypt.DefaultCost}
	for _, fn := range opts {
		fn(&o)
	}
	if o.bus == nil {
		o.bus = event.NewBus()
	}

	catalog := NewCatalog(o.bus)
	cart := NewCart(catalog, o.bus)
	if o.now != nil {
		cart.now = o.now
	}
	if o.newID != nil {
		cart.newID = o.newID
	}
	return &Market{
		Catalog: catalog,
		Cart:    cart,
		Admins:  NewAdminRegistry(o.bus, o.cost),
		Events:  o.bus,
	}
}

// NewMarket returns an empty market with the default administrator.
func NewMarket(opts ...Option) *Market {
	m := build(opts)
	m.Admins.admins = []models.AdminCredential{defaultAdmin()}
	return m
}

func defaultAdmin() models.AdminCredential {
	return models.AdminCredential{CPF: DefaultAdminCPF, Secret: DefaultAdminSecret}
}

// State is everything that survives a restart.
type State struct {
	Products []models.Product
	LastCode int
	Cart     []models.CartEntry
	Admins   []models.AdminCredential
}

// RestoreReport lists what Restore had to repair.
type RestoreReport struct {
	DroppedEntries     []int
	DefaultAdminSeeded bool
}

// Restore rebuilds a market from persisted state. Invalid records fail with
// CORRUPT_STATE; cart entries for missing products are dropped.
func Restore(s State, opts ...Option) (*Market, RestoreReport, error) {
	var report RestoreReport
	m := build(opts)

	if err := m.Catalog.load(s.Products, s.LastCode); err != nil {
		return nil, report, err
	}
	dropped, err := m.Cart.restore(s.Cart)
	if err != nil {
		return nil, report, err
	}
	report.DroppedEntries = dropped

	if len(s.Admins) == 0 {
		m.Admins.admins = []models.AdminCredential{defaultAdmin()}
		report.DefaultAdminSeeded = true
	} else if err := m.Admins.load(s.Admins); err != nil {
		return nil, report, err
	}
	return m, report, nil
}

// State captures the market for persistence.
func (m *Market) State() State {
	return State{
		Products: m.Catalog.List(),
		LastCode: m.Catalog.LastCode(),
		Cart:     m.Cart.Entries(),
		Admins:   m.Admins.Export(),
	}
}
