// Package testkit: runner.go
//
// Run() executes a single scenario against a session function.
// RunDir() discovers all *.json files in a directory and runs them as subtests.
package testkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/pkg/event"
)

// Session is the interactive loop under test.
type Session func(ctx context.Context, m *services.Market, in io.Reader, out io.Writer) error

// ─── Public API ───────────────────────────────────────────────────────────────

// Run executes a single scenario from a JSON file against session.
//
// Lifecycle per scenario:
//  1. Load the scenario JSON file.
//  2. Build a market from the products, cart and admins fixtures.
//  3. Attach an EventRecorder after the fixtures are in place.
//  4. Feed the typed input to the session and capture its output.
//  5. Assert the returned error, output, stock, cart and events.
func Run(t *testing.T, session Session, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, session, s)
	})
}

// RunDir discovers every *.json file in dir and runs each as a t.Run subtest.
// Scenario files that fail to parse are reported as test failures (not fatal).
func RunDir(t *testing.T, session Session, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}
	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, session, s)
		})
	}
}

// NewMarket builds the starting market for s. Admin secrets are hashed at
// the lowest bcrypt cost to keep tests fast.
func NewMarket(s *Scenario) (*services.Market, *EventRecorder, error) {
	bus := event.NewBus()
	m := services.NewMarket(
		services.WithEvents(bus),
		services.WithBcryptCost(bcrypt.MinCost),
	)

	for i, p := range s.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		if _, err := m.Catalog.Register(p.Name, price, p.Stock); err != nil {
			return nil, nil, fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	for i, c := range s.Cart {
		if err := m.Cart.Add(c.Code, c.Quantity); err != nil {
			return nil, nil, fmt.Errorf("cart[%d]: %w", i, err)
		}
	}
	for i, a := range s.Admins {
		if err := m.Admins.Register(a.CPF, a.Secret); err != nil {
			return nil, nil, fmt.Errorf("admins[%d]: %w", i, err)
		}
	}
	return m, NewEventRecorder(bus), nil
}

// ─── Internal execution ───────────────────────────────────────────────────────

func runScenario(t *testing.T, session Session, s *Scenario) {
	t.Helper()

	m, rec, err := NewMarket(s)
	if err != nil {
		t.Fatalf("[%s] build market: %v", s.Name, err)
	}

	script, err := s.Script()
	if err != nil {
		t.Fatalf("[%s] %v", s.Name, err)
	}

	var out bytes.Buffer
	err = session(context.Background(), m, strings.NewReader(script), &out)

	AssertSessionError(t, s, err)
	AssertOutput(t, s, out.String())
	AssertStock(t, s, m)
	AssertCart(t, s, m)
	AssertEvents(t, s, rec)
}
