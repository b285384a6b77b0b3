// Package storagetesting has test helpers for the storage integration tests.
package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/accadaniel/PriceSpy/internal/platform/models"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// CleanupData removes all rows from every table.
func CleanupData(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, table := range []string{"price_history", "alerts_sent", "scrape_runs", "products"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("can't clean table %q: %s", table, err)
		}
	}
}

// InsertProducts is a helper test function to insert products.
// It fills the inserted products' IDs.
func InsertProducts(t *testing.T, db *sql.DB, products ...*models.Product) {
	t.Helper()

	for _, product := range products {
		err := db.QueryRow(`
			INSERT INTO products (
				name, search_query, category, region,
				size, color, brand, model, storage, material,
				target_price, currency, user_email, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id, created_at`,
			product.Name,
			product.SearchQuery,
			product.Category,
			product.Region,
			product.Size,
			product.Color,
			product.Brand,
			product.Model,
			product.Storage,
			product.Material,
			product.TargetPrice,
			product.Currency,
			product.UserEmail,
			product.IsActive,
		).Scan(&product.ID, &product.CreatedAt)
		if err != nil {
			t.Fatal("can't insert products", err)
		}
	}
}

// InsertPriceRecords is a helper test function to insert price history rows.
func InsertPriceRecords(t *testing.T, db *sql.DB, records ...models.PriceRecord) {
	t.Helper()

	for _, record := range records {
		_, err := db.Exec(`
			INSERT INTO price_history (product_id, retailer, price, currency, url, scraped_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			record.ProductID,
			record.Retailer,
			record.Price,
			record.Currency,
			record.URL,
			record.ScrapedAt,
		)
		if err != nil {
			t.Fatal("can't insert price records", err)
		}
	}
}

// InsertAlertRecords is a helper test function to insert sent alerts.
func InsertAlertRecords(t *testing.T, db *sql.DB, alerts ...models.AlertRecord) {
	t.Helper()

	for _, alert := range alerts {
		_, err := db.Exec(`
			INSERT INTO alerts_sent (product_id, price, retailer, sent_at)
			VALUES ($1, $2, $3, $4)`,
			alert.ProductID,
			alert.Price,
			alert.Retailer,
			alert.SentAt,
		)
		if err != nil {
			t.Fatal("can't insert alert records", err)
		}
	}
}
