package search

// Criteria are the structural storefront filters applied independently of
// the text query: the single active category button, the multi-select
// category chips and the price range. Nil price bounds mean unbounded.
type Criteria struct {
	ActiveCategory string
	CategoryIDs    []string
	MinPrice       *float64
	MaxPrice       *float64
}

// Filter keeps the products that pass every structural constraint. Price
// bounds are inclusive; a product without a price is treated as costing 0.
// Input order is preserved.
func Filter(products []Product, c Criteria) []Product {
	selected := make(map[string]bool, len(c.CategoryIDs))
	for _, id := range c.CategoryIDs {
		selected[id] = true
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if len(selected) > 0 && !selected[p.CategoryID] {
			continue
		}
		if c.ActiveCategory != "" && p.CategoryID != c.ActiveCategory {
			continue
		}
		out = append(out, p)
	}
	return out
}
