package pricing

import (
	"time"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

// Gate enforces the alert cooldown: at most one alert per product per
// cooldown window, keyed off the single most recent alert record.
type Gate struct {
	clock Clock
}

// Option is custom configuration of Gate.
type Option func(g *Gate)

// NewGate returns a Gate evaluating cooldowns against the system clock.
func NewGate(ops ...Option) Gate {
	gate := Gate{clock: systemClock{}}
	for _, op := range ops {
		op(&gate)
	}
	return gate
}

// WithClock sets Gate's custom Clock.
func WithClock(c Clock) Option {
	return func(g *Gate) {
		g.clock = c
	}
}

// ShouldAlert reports whether a notification is due: the best price must be
// strictly below the target, and the most recent alert (nil when none was
// ever sent) must be older than the cooldown. The window slides from the
// last alert's send time, evaluated against wall-clock now.
func (g Gate) ShouldAlert(bestPrice, targetPrice float64, lastAlert *models.AlertRecord, cooldown time.Duration) bool {
	if !EvaluateTarget(bestPrice, targetPrice) {
		return false
	}
	if lastAlert != nil && g.clock.Now().Sub(lastAlert.SentAt) < cooldown {
		return false
	}
	return true
}

// Decide runs the full decision chain over one scrape batch: best-quote
// selection, threshold evaluation and the cooldown gate.
func (g Gate) Decide(
	quotes []models.PriceQuote,
	targetPrice float64,
	lastAlert *models.AlertRecord,
	cooldown time.Duration,
) models.AlertDecision {
	best, ok := SelectBestQuote(quotes)
	if !ok || !g.ShouldAlert(best.Price, targetPrice, lastAlert, cooldown) {
		return models.AlertDecision{}
	}

	return models.AlertDecision{
		ShouldNotify: true,
		Retailer:     best.Retailer,
		Price:        best.Price,
		URL:          best.URL,
	}
}
