package catalog

import (
	"math"
	"strconv"
)

type Stats struct {
	Found         int     `json:"found"`
	AverageRating float64 `json:"average_rating"`
	CartCount     int     `json:"cart_count"`
	MinPriceCents int64   `json:"min_price_cents"`
	MaxPriceCents int64   `json:"max_price_cents"`
}

// Summarize derives the footer statistics. Found counts the filtered view;
// rating and price range always cover the full catalog.
func Summarize(all, filtered []Product, cartCount int) Stats {
	st := Stats{
		Found:     len(filtered),
		CartCount: cartCount,
	}
	if len(all) == 0 {
		return st
	}

	st.AverageRating = averageRating(all)
	st.MinPriceCents = all[0].PriceCents
	st.MaxPriceCents = all[0].PriceCents
	for _, p := range all[1:] {
		st.MinPriceCents = min(st.MinPriceCents, p.PriceCents)
		st.MaxPriceCents = max(st.MaxPriceCents, p.PriceCents)
	}
	return st
}

// averageRating rounds half-up to one decimal. Ratings are summed as whole
// hundredths so 4.65 does not drift below the rounding boundary.
func averageRating(all []Product) float64 {
	var sum int64
	for _, p := range all {
		sum += int64(math.Round(p.Rating * 100))
	}
	n := int64(len(all))
	tenths := (sum + 5*n) / (10 * n)
	return float64(tenths) / 10
}

func (s Stats) AverageRatingText() string {
	return strconv.FormatFloat(s.AverageRating, 'f', 1, 64)
}

func (s Stats) PriceRangeText() string {
	return FormatPrice(s.MinPriceCents) + " - " + FormatPrice(s.MaxPriceCents)
}

// FormatPrice renders whole-dollar amounts without a fraction.
func FormatPrice(cents int64) string {
	if cents%100 == 0 {
		return "$" + strconv.FormatInt(cents/100, 10)
	}
	return "$" + strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}
