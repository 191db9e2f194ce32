// Package seeders provides a registry of catalog seed sets.
//
// Usage (define a seeder in any file in this package):
//
//	func init() {
//	    seeders.Register("bakery", SeedBakery)
//	}
//
//	func SeedBakery(c *services.Catalog) error {
//	    // register products …
//	    return nil
//	}
//
// Then run via CLI: mercado seed [name]
package seeders

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/mercado/app/services"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(c *services.Catalog) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists the registered seeders in registration order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}

func snapshot() []seederEntry {
	mu.Lock()
	defer mu.Unlock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	return current
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(c *services.Catalog, out io.Writer) error {
	current := snapshot()
	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}
	for _, e := range current {
		if err := run(e, c, out); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the seeder registered under name.
func Run(name string, c *services.Catalog, out io.Writer) error {
	for _, e := range snapshot() {
		if e.name == name {
			return run(e, c, out)
		}
	}
	return fmt.Errorf("seeder %q is not registered", name)
}

func run(e seederEntry, c *services.Catalog, out io.Writer) error {
	fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
	if err := e.fn(c); err != nil {
		fmt.Fprintln(out, "FAILED")
		return fmt.Errorf("seeder %q: %w", e.name, err)
	}
	fmt.Fprintln(out, "done")
	return nil
}
