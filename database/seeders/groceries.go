package seeders

import (
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/mercado/app/services"
)

func init() {
	Register("groceries", SeedGroceries)
}

var groceries = []struct {
	name  string
	price string
	stock int
}{
	{"Arroz 5kg", "24.90", 30},
	{"Feijão carioca 1kg", "8.49", 40},
	{"Açúcar 1kg", "4.79", 25},
	{"Café 500g", "14.90", 20},
	{"Leite integral 1L", "5.29", 60},
	{"Óleo de soja 900ml", "7.99", 18},
}

// SeedGroceries registers a basic grocery assortment. Products whose name is
// already in the catalog are skipped so the seeder can be run twice.
func SeedGroceries(c *services.Catalog) error {
	existing := make(map[string]bool, c.Len())
	for _, p := range c.List() {
		existing[p.Name] = true
	}
	for _, g := range groceries {
		if existing[g.name] {
			continue
		}
		if _, err := c.Register(g.name, decimal.RequireFromString(g.price), g.stock); err != nil {
			return err
		}
	}
	return nil
}
