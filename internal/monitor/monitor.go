// Package monitor runs price checks for tracked products and decides when
// to alert their owners.
package monitor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/accadaniel/PriceSpy/internal/notifier"
	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/pricing"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Searcher --filename searcher.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Notifier --filename notifier.go

// Searcher fetches retailer price quotes for a product.
type Searcher interface {
	SearchProduct(ctx context.Context, product *models.Product, maxResults int) ([]models.PriceQuote, error)
}

// Notifier delivers price drop alerts and returns the delivery ID.
type Notifier interface {
	Send(ctx context.Context, alert notifier.Alert) (string, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is products, prices, alerts and runs storage.
type Storage interface {
	// Products returns tracked products, optionally only the active ones.
	Products(ctx context.Context, activeOnly bool) ([]models.Product, error)
	// Product returns one product by ID.
	Product(ctx context.Context, productID int) (*models.Product, error)
	// AddPriceRecords persists one batch of price quotes for a product.
	AddPriceRecords(ctx context.Context, productID int, quotes []models.PriceQuote) error
	// MostRecentAlert returns the newest alert sent within the window, or nil.
	MostRecentAlert(ctx context.Context, productID int, within time.Duration) (*models.AlertRecord, error)
	// AddAlertRecord persists one sent alert.
	AddAlertRecord(ctx context.Context, alert *models.AlertRecord) error
	// StartRun creates new run if there is no run running.
	StartRun(ctx context.Context) (run *models.Run, err error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
}

// Option is custom configuration of Monitor.
type Option func(m *Monitor)

// Monitor searches prices, records them and sends price drop alerts.
type Monitor struct {
	searcher      Searcher
	storage       Storage
	notifier      Notifier
	gate          pricing.Gate
	cooldown      time.Duration
	maxResults    int
	parallelLimit int
	clock         Clock
}

// NewMonitor returns new Monitor.
func NewMonitor(searcher Searcher, storage Storage, notif Notifier, ops ...Option) *Monitor {
	mon := &Monitor{
		searcher:      searcher,
		storage:       storage,
		notifier:      notif,
		gate:          pricing.NewGate(),
		cooldown:      24 * time.Hour,
		maxResults:    10,
		parallelLimit: 4,
		clock:         systemClock{},
	}

	for _, op := range ops {
		op(mon)
	}

	return mon
}

// CheckByID runs a price check for one product.
func (m *Monitor) CheckByID(ctx context.Context, productID int) error {
	product, err := m.storage.Product(ctx, productID)
	if err != nil {
		return fmt.Errorf("can't get product: %w", err)
	}

	_, _, err = m.checkProduct(ctx, product)

	return err
}

// CheckAll runs a price check for every active product, recording the run's
// statistics. A failed product does not stop the rest of the batch.
func (m *Monitor) CheckAll(ctx context.Context) error {
	run, err := m.storage.StartRun(ctx)
	if err != nil {
		return fmt.Errorf("can't start price check run: %w", err)
	}

	products, err := m.storage.Products(ctx, true)
	if err != nil {
		return m.finishRun(ctx, run, fmt.Errorf("can't get products: %w", err))
	}

	checkedProducts := int32(0)
	foundPrices := int32(0)
	sentAlerts := int32(0)
	failedProducts := int32(0)

	errGroup, egCtx := errgroup.WithContext(ctx)
	errGroup.SetLimit(m.parallelLimit)

	for ix := range products {
		product := products[ix]
		errGroup.Go(func() error {
			found, alerted, err := m.checkProduct(egCtx, &product)
			if err != nil {
				_ = atomic.AddInt32(&failedProducts, 1)
				return nil
			}
			_ = atomic.AddInt32(&checkedProducts, 1)
			_ = atomic.AddInt32(&foundPrices, found)
			if alerted {
				_ = atomic.AddInt32(&sentAlerts, 1)
			}
			return nil
		})
	}

	err = errGroup.Wait()

	run.CheckedProducts = &checkedProducts
	run.FoundPrices = &foundPrices
	run.SentAlerts = &sentAlerts
	run.FailedProducts = &failedProducts

	return m.finishRun(ctx, run, err)
}

// checkProduct searches prices for one product, records them and sends an
// alert when the decision gate allows it. Zero found prices is not an error.
func (m *Monitor) checkProduct(ctx context.Context, product *models.Product) (int32, bool, error) {
	quotes, err := m.searcher.SearchProduct(ctx, product, m.maxResults)
	if err != nil {
		return 0, false, fmt.Errorf("can't search prices: %w", err)
	}

	if len(quotes) == 0 {
		return 0, false, nil
	}

	if err := m.storage.AddPriceRecords(ctx, product.ID, quotes); err != nil {
		return 0, false, fmt.Errorf("can't record prices: %w", err)
	}

	lastAlert, err := m.storage.MostRecentAlert(ctx, product.ID, m.cooldown)
	if err != nil {
		return int32(len(quotes)), false, fmt.Errorf("can't get recent alert: %w", err)
	}

	decision := m.gate.Decide(quotes, product.TargetPrice, lastAlert, m.cooldown)
	if !decision.ShouldNotify {
		return int32(len(quotes)), false, nil
	}

	deliveryID, err := m.notifier.Send(ctx, notifier.Alert{
		To:           product.UserEmail,
		ProductName:  product.Name,
		CurrentPrice: decision.Price,
		TargetPrice:  product.TargetPrice,
		Currency:     product.Currency,
		Retailer:     decision.Retailer,
		URL:          decision.URL,
	})
	if err != nil {
		return int32(len(quotes)), false, fmt.Errorf("can't send alert: %w", err)
	}

	// The cooldown window must only advance on a confirmed delivery.
	if deliveryID == "" {
		return int32(len(quotes)), false, nil
	}

	alert := models.AlertRecord{
		ProductID: product.ID,
		Price:     decision.Price,
		Retailer:  decision.Retailer,
	}
	if err := m.storage.AddAlertRecord(ctx, &alert); err != nil {
		return int32(len(quotes)), true, fmt.Errorf("can't record alert: %w", err)
	}

	return int32(len(quotes)), true, nil
}

func (m *Monitor) finishRun(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = m.clock.Now()

	err := m.storage.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish price check run: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed price check run: %w (fail reason: %w)", err, status)
	}

	return status
}

// WithCooldown sets how long a product stays muted after a sent alert.
func WithCooldown(cooldown time.Duration) Option {
	return func(m *Monitor) {
		m.cooldown = cooldown
	}
}

// WithMaxResults caps how many quotes one search may return.
func WithMaxResults(maxResults int) Option {
	return func(m *Monitor) {
		m.maxResults = maxResults
	}
}

// WithParallelLimit caps how many products are checked concurrently.
func WithParallelLimit(limit int) Option {
	return func(m *Monitor) {
		m.parallelLimit = limit
	}
}

// WithClock sets Monitor's custom Clock.
func WithClock(c Clock) Option {
	return func(m *Monitor) {
		m.clock = c
	}
}

// WithGate sets Monitor's custom decision gate.
func WithGate(gate pricing.Gate) Option {
	return func(m *Monitor) {
		m.gate = gate
	}
}
