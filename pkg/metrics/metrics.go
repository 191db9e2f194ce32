// Package metrics provides Prometheus instrumentation for the market.
//
// There is no HTTP endpoint to scrape; counters are fed from the event bus
// during a session and written at exit in the node-exporter textfile format:
//
//	rec := metrics.New()
//	rec.Subscribe(market.Events)
//	defer rec.WriteTextfile("/var/lib/node_exporter/mercado.prom")
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shashiranjanraj/mercado/pkg/event"
)

const namespace = "mercado"

// Recorder owns a registry and the market counters registered on it.
type Recorder struct {
	registry *prometheus.Registry

	ItemsAdded    prometheus.Counter
	ItemsRemoved  prometheus.Counter
	Sales         prometheus.Counter
	Revenue       prometheus.Counter
	LoginFailures prometheus.Counter
	Catalog       *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "items_added_total",
			Help:      "Units moved from stock into the cart.",
		}),
		ItemsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "items_removed_total",
			Help:      "Units returned from the cart to stock.",
		}),
		Sales: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_total",
			Help:      "Finalized purchases.",
		}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Sum of finalized purchase totals.",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "admin",
			Name:      "login_failures_total",
			Help:      "Rejected administrator logins with a well-formed CPF.",
		}),
		Catalog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "changes_total",
			Help:      "Catalog changes by kind.",
		}, []string{"kind"}), // "registered" | "updated" | "deleted"
	}

	r.registry.MustRegister(
		r.ItemsAdded,
		r.ItemsRemoved,
		r.Sales,
		r.Revenue,
		r.LoginFailures,
		r.Catalog,
	)
	return r
}

// Registry exposes the underlying registry, e.g. for a Gatherer.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// TrackProducts registers a gauge reporting the current catalog size.
func (r *Recorder) TrackProducts(count func() int) error {
	return r.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "products",
		Help:      "Products currently in the catalog.",
	}, func() float64 { return float64(count()) }))
}

// Subscribe feeds the counters from bus.
func (r *Recorder) Subscribe(bus *event.Bus) {
	bus.Listen(event.CartAdded, func(e event.Event) {
		r.ItemsAdded.Add(float64(e.Int("quantity")))
	})
	bus.Listen(event.CartRemoved, func(e event.Event) {
		r.ItemsRemoved.Add(float64(e.Int("quantity")))
	})
	bus.Listen(event.SaleFinalized, func(e event.Event) {
		r.Sales.Inc()
		if s, ok := e.Fields["total"].(string); ok {
			if total, err := strconv.ParseFloat(s, 64); err == nil && total >= 0 {
				r.Revenue.Add(total)
			}
		}
	})
	bus.Listen(event.AdminLoginFailed, func(event.Event) { r.LoginFailures.Inc() })
	bus.Listen(event.ProductRegistered, func(event.Event) { r.Catalog.WithLabelValues("registered").Inc() })
	bus.Listen(event.ProductUpdated, func(event.Event) { r.Catalog.WithLabelValues("updated").Inc() })
	bus.Listen(event.ProductDeleted, func(event.Event) { r.Catalog.WithLabelValues("deleted").Inc() })
}

// WriteTextfile writes every metric to path atomically. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
