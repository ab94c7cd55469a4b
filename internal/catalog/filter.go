package catalog

import "strings"

// Filter keeps every product whose name or category contains query,
// ignoring case. Catalog order is preserved and an empty query keeps all.
func Filter(query string, products []Product) []Product {
	q := strings.ToLower(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
