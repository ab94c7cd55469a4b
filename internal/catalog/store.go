package catalog

import "context"

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	PriceCents  int64   `json:"price_cents"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
}

// Store is read-only: the catalog is fixed for the lifetime of the process.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
	Ping(ctx context.Context) error
}
