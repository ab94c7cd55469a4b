package catalog

import "context"

type MemStore struct {
	products []Product
	byID     map[int]int
}

func NewMemStore(products []Product) *MemStore {
	s := &MemStore{
		products: append([]Product(nil), products...),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	return s
}

// NewStore returns the showcase catalog.
func NewStore() *MemStore {
	return NewMemStore(Default())
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, bool, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func Default() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "UltraBook Pro X1",
			PriceCents:  129900,
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=300&h=200&fit=crop",
			Description: "Revolutionary laptop with quantum processing capabilities and holographic display.",
			Rating:      4.8,
			Category:    "Laptops",
		},
		{
			ID:          2,
			Name:        "SmartWatch Infinity",
			PriceCents:  39900,
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=200&fit=crop",
			Description: "AI-powered smartwatch that predicts your health needs before you do.",
			Rating:      4.6,
			Category:    "Wearables",
		},
		{
			ID:          3,
			Name:        "Neural Headphones",
			PriceCents:  29900,
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=200&fit=crop",
			Description: "Mind-reading headphones with telepathic noise cancellation technology.",
			Rating:      4.9,
			Category:    "Audio",
		},
		{
			ID:          4,
			Name:        "Quantum Phone 12",
			PriceCents:  99900,
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=200&fit=crop",
			Description: "Smartphone that exists in multiple dimensions simultaneously.",
			Rating:      4.7,
			Category:    "Phones",
		},
		{
			ID:          5,
			Name:        "AR Glasses Vision",
			PriceCents:  59900,
			Image:       "https://images.unsplash.com/photo-1592478411213-6153e4ebc696?w=300&h=200&fit=crop",
			Description: "Augmented reality glasses that let you see into parallel universes.",
			Rating:      4.5,
			Category:    "AR/VR",
		},
		{
			ID:          6,
			Name:        "Hover Drone Mini",
			PriceCents:  44900,
			Image:       "https://images.unsplash.com/photo-1473968512647-3e447244af8f?w=300&h=200&fit=crop",
			Description: "Personal assistant drone with AI companion and coffee brewing capabilities.",
			Rating:      4.4,
			Category:    "Drones",
		},
	}
}
