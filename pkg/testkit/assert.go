package testkit

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

// AssertOutput checks that every expected substring appears, in order, and
// that no unexpected substring appears at all.
func AssertOutput(t *testing.T, scenario *Scenario, output string) {
	t.Helper()

	rest := output
	for _, want := range scenario.ExpectedOutput {
		i := strings.Index(rest, want)
		if !assert.GreaterOrEqual(t, i, 0,
			"[%s] output missing %q (in order)\noutput:\n%s", scenario.Name, want, output) {
			return
		}
		rest = rest[i+len(want):]
	}
	for _, unwanted := range scenario.UnexpectedOutput {
		assert.NotContains(t, output, unwanted, "[%s] unexpected output", scenario.Name)
	}
}

// AssertStock compares catalog stock for every code in ExpectedStock.
func AssertStock(t *testing.T, scenario *Scenario, m *services.Market) {
	t.Helper()
	for key, want := range scenario.ExpectedStock {
		code, _ := strconv.Atoi(key)
		p, ok := m.Catalog.Get(code)
		if !assert.True(t, ok, "[%s] product %d missing from catalog", scenario.Name, code) {
			continue
		}
		assert.Equal(t, want, p.Stock, "[%s] stock of product %d", scenario.Name, code)
	}
}

// AssertCart compares the cart to ExpectedCart exactly when it is set.
func AssertCart(t *testing.T, scenario *Scenario, m *services.Market) {
	t.Helper()
	if scenario.ExpectedCart == nil {
		return
	}
	got := map[string]int{}
	for _, e := range m.Cart.Entries() {
		got[strconv.Itoa(e.ProductCode)] = e.Quantity
	}
	assert.Equal(t, scenario.ExpectedCart, got, "[%s] cart mismatch", scenario.Name)
}

// AssertEvents compares fired event names when ExpectedEvents is set.
func AssertEvents(t *testing.T, scenario *Scenario, rec *EventRecorder) {
	t.Helper()
	if scenario.ExpectedEvents == nil {
		return
	}
	assert.Equal(t, scenario.ExpectedEvents, rec.Names(), "[%s] events mismatch", scenario.Name)
	for _, name := range scenario.ExpectedEvents {
		rec.Mock().AssertCalled(t, "Handle", name)
	}
}

// AssertSessionError checks the error returned by the session.
func AssertSessionError(t *testing.T, scenario *Scenario, err error) {
	t.Helper()
	if scenario.ExpectedError == "" {
		assert.NoError(t, err, "[%s] session failed", scenario.Name)
		return
	}
	assert.Equal(t, pkgerrors.Code(scenario.ExpectedError), pkgerrors.CodeOf(err),
		"[%s] session error code", scenario.Name)
}
