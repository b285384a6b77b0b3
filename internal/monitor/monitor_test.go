package monitor_test

import (
	"context"
	"testing"
	"time"

	"github.com/accadaniel/PriceSpy/internal/monitor"
	"github.com/accadaniel/PriceSpy/internal/monitor/mocks"
	"github.com/accadaniel/PriceSpy/internal/notifier"
	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/platform/models/modelstesting"
	"github.com/accadaniel/PriceSpy/internal/pricing"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	cooldown   = 24 * time.Hour
	maxResults = 10
	loc        = func() *time.Location {
		loc, err := time.LoadLocation("Etc/UTC")
		if err != nil {
			panic(err)
		}
		return loc
	}()
	createdAt                      = time.Date(2024, time.April, 1, 1, 1, 1, 0, loc)
	now                            = time.Date(2024, time.April, 2, 1, 1, 1, 0, loc)
	errShouldContainAssertErrorMsg = "should return error containing assert.AnError"
)

func TestUnitCheckByID(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = 7
		p.TargetPrice = 100
	})
	quotes := []models.PriceQuote{
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Retailer = "ShopA"; q.Price = 120 }),
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Retailer = "ShopB"; q.Price = 89.99 }),
	}

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageProduct(storage, product.ID, &product, nil)
	mockSearcher(searcher, &product, quotes, nil)
	mockStorageAddPriceRecords(storage, product.ID, quotes, nil)
	mockStorageMostRecentAlert(storage, product.ID, nil, nil)
	notif.On("Send", mock.Anything, notifier.Alert{
		To:           product.UserEmail,
		ProductName:  product.Name,
		CurrentPrice: 89.99,
		TargetPrice:  100,
		Currency:     product.Currency,
		Retailer:     "ShopB",
		URL:          quotes[1].URL,
	}).Return("msg-1", nil)
	storage.On("AddAlertRecord", mock.Anything, &models.AlertRecord{
		ProductID: product.ID,
		Price:     89.99,
		Retailer:  "ShopB",
	}).Return(nil)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckByID(context.TODO(), product.ID)

	require.NoError(t, err, "shouldn't return any error")
}

func TestUnitCheckByIDAboveTarget(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = 7
		p.TargetPrice = 50
	})
	quotes := []models.PriceQuote{
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Price = 60 }),
	}

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageProduct(storage, product.ID, &product, nil)
	mockSearcher(searcher, &product, quotes, nil)
	mockStorageAddPriceRecords(storage, product.ID, quotes, nil)
	mockStorageMostRecentAlert(storage, product.ID, nil, nil)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckByID(context.TODO(), product.ID)

	require.NoError(t, err, "shouldn't return any error")
	notif.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestUnitCheckByIDCooldown(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = 7
		p.TargetPrice = 100
	})
	quotes := []models.PriceQuote{
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Price = 80 }),
	}
	lastAlert := modelstesting.FakeAlertRecord(func(a *models.AlertRecord) {
		a.ProductID = product.ID
		a.SentAt = now.Add(-2 * time.Hour)
	})

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageProduct(storage, product.ID, &product, nil)
	mockSearcher(searcher, &product, quotes, nil)
	mockStorageAddPriceRecords(storage, product.ID, quotes, nil)
	mockStorageMostRecentAlert(storage, product.ID, &lastAlert, nil)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckByID(context.TODO(), product.ID)

	require.NoError(t, err, "shouldn't return any error")
	notif.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "AddAlertRecord", mock.Anything, mock.Anything)
}

func TestUnitCheckByIDNoQuotes(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) { p.ID = 7 })

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageProduct(storage, product.ID, &product, nil)
	mockSearcher(searcher, &product, nil, nil)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckByID(context.TODO(), product.ID)

	require.NoError(t, err, "empty search result shouldn't be an error")
	storage.AssertNotCalled(t, "AddPriceRecords", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnitCheckByIDNotifierError(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = 7
		p.TargetPrice = 100
	})
	quotes := []models.PriceQuote{
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Price = 80 }),
	}

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageProduct(storage, product.ID, &product, nil)
	mockSearcher(searcher, &product, quotes, nil)
	mockStorageAddPriceRecords(storage, product.ID, quotes, nil)
	mockStorageMostRecentAlert(storage, product.ID, nil, nil)
	notif.On("Send", mock.Anything, mock.Anything).Return("", assert.AnError)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckByID(context.TODO(), product.ID)

	require.ErrorContains(t, err, "can't send alert", "should return error about failed delivery")
	require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	storage.AssertNotCalled(t, "AddAlertRecord", mock.Anything, mock.Anything)
}

func TestUnitCheckAll(t *testing.T) {
	run := &models.Run{ID: 3, CreatedAt: createdAt}

	healthy := modelstesting.FakeProduct(func(p *models.Product) {
		p.ID = 1
		p.TargetPrice = 100
	})
	failing := modelstesting.FakeProduct(func(p *models.Product) { p.ID = 2 })
	quotes := []models.PriceQuote{
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Retailer = "ShopA"; q.Price = 90 }),
		modelstesting.FakeQuote(func(q *models.PriceQuote) { q.Retailer = "ShopB"; q.Price = 110 }),
	}

	wantRun := &models.Run{
		ID:              run.ID,
		CreatedAt:       createdAt,
		FinishedAt:      &now,
		IsSuccess:       lo.ToPtr(true),
		CheckedProducts: lo.ToPtr(int32(1)),
		FoundPrices:     lo.ToPtr(int32(2)),
		SentAlerts:      lo.ToPtr(int32(1)),
		FailedProducts:  lo.ToPtr(int32(1)),
	}

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageStartRun(storage, run, nil)
	storage.On("Products", mock.Anything, true).Return([]models.Product{healthy, failing}, nil)
	mockSearcher(searcher, &healthy, quotes, nil)
	mockSearcher(searcher, &failing, nil, assert.AnError)
	mockStorageAddPriceRecords(storage, healthy.ID, quotes, nil)
	mockStorageMostRecentAlert(storage, healthy.ID, nil, nil)
	notif.On("Send", mock.Anything, mock.Anything).Return("msg-1", nil)
	storage.On("AddAlertRecord", mock.Anything, &models.AlertRecord{
		ProductID: healthy.ID,
		Price:     90,
		Retailer:  "ShopA",
	}).Return(nil)
	mockStorageFinishRun(storage, wantRun, nil)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckAll(context.TODO())

	require.NoError(t, err, "failed products shouldn't fail the whole run")
}

func TestUnitCheckAllStartRunError(t *testing.T) {
	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageStartRun(storage, nil, assert.AnError)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckAll(context.TODO())

	require.ErrorContains(t, err, "can't start price check run", "should return error about failed run start")
	require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
}

func TestUnitCheckAllFinishRunError(t *testing.T) {
	run := &models.Run{ID: 3, CreatedAt: createdAt}

	searcher := mocks.NewSearcher(t)
	storage := mocks.NewStorage(t)
	notif := mocks.NewNotifier(t)

	mockStorageStartRun(storage, run, nil)
	storage.On("Products", mock.Anything, true).Return(nil, assert.AnError)
	storage.On("FinishRun", mock.Anything, mock.Anything).Return(assert.AnError)

	mon := newMonitor(searcher, storage, notif)
	err := mon.CheckAll(context.TODO())

	require.ErrorContains(t, err, "can't finish failed price check run", "should return error about failed run finishing")
	require.ErrorContains(t, err, "can't get products", "should keep the fail reason")
	require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
}

func newMonitor(searcher *mocks.Searcher, storage *mocks.Storage, notif *mocks.Notifier) *monitor.Monitor {
	return monitor.NewMonitor(
		searcher,
		storage,
		notif,
		monitor.WithCooldown(cooldown),
		monitor.WithMaxResults(maxResults),
		monitor.WithParallelLimit(2),
		monitor.WithClock(fakeClock{now: &now}),
		monitor.WithGate(pricing.NewGate(pricing.WithClock(fakeGateClock{now: now}))),
	)
}

func mockStorageProduct(storage *mocks.Storage, productID int, product *models.Product, err error) {
	storage.On("Product", mock.Anything, productID).Return(product, err)
}

func mockStorageAddPriceRecords(storage *mocks.Storage, productID int, quotes []models.PriceQuote, err error) {
	storage.On("AddPriceRecords", mock.Anything, productID, quotes).Return(err)
}

func mockStorageMostRecentAlert(storage *mocks.Storage, productID int, alert *models.AlertRecord, err error) {
	storage.On("MostRecentAlert", mock.Anything, productID, cooldown).Return(alert, err)
}

func mockStorageStartRun(storage *mocks.Storage, run *models.Run, err error) {
	storage.On("StartRun", mock.Anything).Return(run, err)
}

func mockStorageFinishRun(storage *mocks.Storage, run *models.Run, err error) {
	storage.On("FinishRun", mock.Anything, run).Return(err)
}

func mockSearcher(searcher *mocks.Searcher, product *models.Product, quotes []models.PriceQuote, err error) {
	searcher.On("SearchProduct", mock.Anything, product, maxResults).Return(quotes, err)
}

type fakeClock struct {
	now *time.Time
}

func (c fakeClock) Now() *time.Time {
	return c.now
}

type fakeGateClock struct {
	now time.Time
}

func (c fakeGateClock) Now() time.Time {
	return c.now
}
