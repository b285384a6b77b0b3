// Package modelstesting has fake model builders for tests.
package modelstesting

import (
	"math/rand"
	"time"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeProduct returns models.Product with fake data.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		Name:        faker.Word(),
		SearchQuery: faker.Sentence(),
		Category:    models.CategoryElectronics,
		Region:      "eu",
		Size:        lo.ToPtr(faker.Word()),
		Color:       lo.ToPtr(faker.Word()),
		Brand:       lo.ToPtr(faker.Word()),
		Model:       lo.ToPtr(faker.Word()),
		Storage:     lo.ToPtr(faker.Word()),
		Material:    lo.ToPtr(faker.Word()),
		TargetPrice: float64(rand.Intn(100000)) / 100,
		Currency:    "EUR",
		UserEmail:   faker.Email(),
		IsActive:    true,
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeQuote returns models.PriceQuote with fake data.
func FakeQuote(ops ...func(q *models.PriceQuote)) models.PriceQuote {
	quote := models.PriceQuote{
		Retailer: faker.Word(),
		Price:    float64(rand.Intn(100000)) / 100,
		Currency: "EUR",
		URL:      faker.URL(),
		Title:    faker.Sentence(),
	}

	for _, op := range ops {
		op(&quote)
	}

	return quote
}

// FakeAlertRecord returns models.AlertRecord with fake data.
func FakeAlertRecord(ops ...func(a *models.AlertRecord)) models.AlertRecord {
	alert := models.AlertRecord{
		ProductID: rand.Intn(1000) + 1,
		Price:     float64(rand.Intn(100000)) / 100,
		Retailer:  faker.Word(),
		SentAt:    time.Now().UTC().Truncate(time.Second),
	}

	for _, op := range ops {
		op(&alert)
	}

	return alert
}
