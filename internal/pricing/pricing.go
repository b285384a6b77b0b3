// Package pricing reduces a multi-retailer price stream to a single best
// quote and decides whether a price drop justifies notifying the user.
package pricing

import (
	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

// SelectBestQuote reduces one scrape batch to the cheapest quote. Quotes are
// first collapsed to one representative per retailer (the batch is a single
// observation window, so the first quote seen for a retailer stands for it),
// then the global minimum is selected. Ties break in favor of the quote seen
// first, so the selection is stable under reordering of equal prices. The
// input is never mutated. Returns false when the batch is empty.
func SelectBestQuote(quotes []models.PriceQuote) (models.PriceQuote, bool) {
	seen := make(map[string]bool, len(quotes))

	var best models.PriceQuote
	found := false

	for _, quote := range quotes {
		if seen[quote.Retailer] {
			continue
		}
		seen[quote.Retailer] = true

		if !found || quote.Price < best.Price {
			best = quote
			found = true
		}
	}

	return best, found
}

// EvaluateTarget reports whether bestPrice is a drop below targetPrice.
// Equal-to-target is not a drop.
func EvaluateTarget(bestPrice, targetPrice float64) bool {
	return bestPrice < targetPrice
}
