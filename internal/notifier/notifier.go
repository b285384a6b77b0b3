// Package notifier delivers price drop alerts to users.
package notifier

import "context"

// Alert is a single price drop notification.
type Alert struct {
	To           string
	ProductName  string
	CurrentPrice float64
	TargetPrice  float64
	Currency     string
	Retailer     string
	URL          string
}

// Notifier delivers alerts. Send returns the delivery ID assigned by the
// channel so callers can tell a delivered alert from a failed one.
type Notifier interface {
	Send(ctx context.Context, alert Alert) (string, error)
}
