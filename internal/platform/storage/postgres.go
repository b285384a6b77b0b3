// Package storage persists products, price history, sent alerts and scrape
// runs in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/accadaniel/PriceSpy/internal/platform"
	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

//go:embed schema.sql
var schema string

// Postgres is storage for products, price history, alerts and runs.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{db: db}
}

// Init creates missing tables and indexes.
func (p Postgres) Init(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("can't apply database schema: %w", err)
	}

	return nil
}

const productColumns = `id, name, search_query, category, region,
	size, color, brand, model, storage, material,
	target_price, currency, user_email, is_active, created_at`

// CreateProduct inserts a new tracked product and fills its ID and CreatedAt.
func (p Postgres) CreateProduct(ctx context.Context, product *models.Product) error {
	err := p.db.QueryRowContext(ctx, `
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
		return fmt.Errorf("can't insert product: %w", err)
	}

	return nil
}

// Product returns one product by ID.
// It returns platform.ErrNotFound if the product does not exist.
func (p Postgres) Product(ctx context.Context, productID int) (*models.Product, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, productID)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, fmt.Errorf("can't get product: %w", err)
	}

	return product, nil
}

// Products returns tracked products, optionally only the active ones.
func (p Postgres) Products(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't get products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("can't get products: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't get products: %w", err)
	}

	return products, nil
}

// productFields maps update keys to product columns. Only these columns can
// be changed after creation.
var productFields = map[string]string{
	"name":         "name",
	"search_query": "search_query",
	"category":     "category",
	"region":       "region",
	"size":         "size",
	"color":        "color",
	"brand":        "brand",
	"model":        "model",
	"storage":      "storage",
	"material":     "material",
	"target_price": "target_price",
	"currency":     "currency",
	"user_email":   "user_email",
	"is_active":    "is_active",
}

// UpdateProduct changes the given fields of one product.
// Unknown field names are rejected; an empty fields map is a no-op.
func (p Postgres) UpdateProduct(ctx context.Context, productID int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for name, value := range fields {
		column, ok := productFields[name]
		if !ok {
			return fmt.Errorf("can't update product: unknown field %q", name)
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, productID)

	result, err := p.db.ExecContext(ctx, fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d`,
		strings.Join(assignments, ", "), len(args),
	), args...)
	if err != nil {
		return fmt.Errorf("can't update product: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("can't update product: %w", err)
	} else if rowsAffected == 0 {
		return platform.ErrNotFound
	}

	return nil
}

// DeleteProduct removes a product with its price history and alerts.
func (p Postgres) DeleteProduct(ctx context.Context, productID int) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("can't delete product: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("can't delete product: %w", err)
	} else if rowsAffected == 0 {
		return platform.ErrNotFound
	}

	return nil
}

// AddPriceRecords persists one batch of price quotes for a product.
func (p Postgres) AddPriceRecords(ctx context.Context, productID int, quotes []models.PriceQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO price_history (product_id, retailer, price, currency, url)
			VALUES ($1, $2, $3, $4, $5)`)
		if err != nil {
			return fmt.Errorf("can't prepare price insert: %w", err)
		}
		defer stmt.Close()

		for _, quote := range quotes {
			if _, err := stmt.ExecContext(ctx,
				productID, quote.Retailer, quote.Price, quote.Currency, quote.URL,
			); err != nil {
				return fmt.Errorf("can't insert price record: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("can't add price records: %w", err)
	}

	return nil
}

// PriceHistory returns up to limit newest price records of a product.
func (p Postgres) PriceHistory(ctx context.Context, productID, limit int) ([]models.PriceRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, product_id, retailer, price, currency, url, scraped_at
		FROM price_history
		WHERE product_id = $1
		ORDER BY scraped_at DESC, id DESC
		LIMIT $2`,
		productID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("can't get price history: %w", err)
	}
	defer rows.Close()

	return scanPriceRecords(rows)
}

// LatestPricePerRetailer returns each retailer's newest price record for a
// product.
func (p Postgres) LatestPricePerRetailer(ctx context.Context, productID int) ([]models.PriceRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT DISTINCT ON (retailer)
			id, product_id, retailer, price, currency, url, scraped_at
		FROM price_history
		WHERE product_id = $1
		ORDER BY retailer, scraped_at DESC, id DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("can't get latest prices: %w", err)
	}
	defer rows.Close()

	return scanPriceRecords(rows)
}

// LowestPrice returns the cheapest recorded price of a product.
// It returns platform.ErrNotFound if the product has no price history.
func (p Postgres) LowestPrice(ctx context.Context, productID int) (*models.PriceRecord, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, product_id, retailer, price, currency, url, scraped_at
		FROM price_history
		WHERE product_id = $1
		ORDER BY price ASC, scraped_at ASC
		LIMIT 1`,
		productID,
	)

	var record models.PriceRecord
	err := row.Scan(
		&record.ID,
		&record.ProductID,
		&record.Retailer,
		&record.Price,
		&record.Currency,
		&record.URL,
		&record.ScrapedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, fmt.Errorf("can't get lowest price: %w", err)
	}

	return &record, nil
}

// AddAlertRecord persists one sent alert and fills its ID and SentAt.
func (p Postgres) AddAlertRecord(ctx context.Context, alert *models.AlertRecord) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO alerts_sent (product_id, price, retailer)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at`,
		alert.ProductID, alert.Price, alert.Retailer,
	).Scan(&alert.ID, &alert.SentAt)
	if err != nil {
		return fmt.Errorf("can't insert alert record: %w", err)
	}

	return nil
}

// MostRecentAlert returns the newest alert sent for a product within the
// given window, or nil if there is none.
func (p Postgres) MostRecentAlert(ctx context.Context, productID int, within time.Duration) (*models.AlertRecord, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, product_id, price, retailer, sent_at
		FROM alerts_sent
		WHERE product_id = $1 AND sent_at > now() - make_interval(secs => $2)
		ORDER BY sent_at DESC, id DESC
		LIMIT 1`,
		productID, within.Seconds(),
	)

	var alert models.AlertRecord
	err := row.Scan(&alert.ID, &alert.ProductID, &alert.Price, &alert.Retailer, &alert.SentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("can't get recent alert: %w", err)
	}

	return &alert, nil
}

// StartRun creates new unfinished run in database and returns it.
// It returns ErrAlreadyRunning if previous run is not finished yet.
func (p Postgres) StartRun(ctx context.Context) (*models.Run, error) {
	run := &models.Run{}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		var unfinished int
		err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM scrape_runs WHERE finished_at IS NULL AND is_success IS NULL`,
		).Scan(&unfinished)
		if err != nil {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if unfinished > 0 {
			return platform.ErrAlreadyRunning
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO scrape_runs DEFAULT VALUES RETURNING id, created_at`,
		).Scan(&run.ID, &run.CreatedAt)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return nil, err
		}
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	result, err := p.db.ExecContext(ctx, `
		UPDATE scrape_runs SET
			finished_at = $2,
			is_success = $3,
			status_message = $4,
			checked_products = $5,
			found_prices = $6,
			sent_alerts = $7,
			failed_products = $8
		WHERE id = $1`,
		run.ID,
		run.FinishedAt,
		run.IsSuccess,
		run.StatusMessage,
		run.CheckedProducts,
		run.FoundPrices,
		run.SentAlerts,
		run.FailedProducts,
	)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	return nil
}

// LastRun returns the newest scrape run.
// It returns platform.ErrNotFound if no run was ever started.
func (p Postgres) LastRun(ctx context.Context) (*models.Run, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, created_at, finished_at, is_success, status_message,
			checked_products, found_prices, sent_alerts, failed_products
		FROM scrape_runs
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)

	var run models.Run
	err := row.Scan(
		&run.ID,
		&run.CreatedAt,
		&run.FinishedAt,
		&run.IsSuccess,
		&run.StatusMessage,
		&run.CheckedProducts,
		&run.FoundPrices,
		&run.SentAlerts,
		&run.FailedProducts,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, platform.ErrNotFound
		}
		return nil, fmt.Errorf("can't get last run: %w", err)
	}

	return &run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.SearchQuery,
		&product.Category,
		&product.Region,
		&product.Size,
		&product.Color,
		&product.Brand,
		&product.Model,
		&product.Storage,
		&product.Material,
		&product.TargetPrice,
		&product.Currency,
		&product.UserEmail,
		&product.IsActive,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func scanPriceRecords(rows *sql.Rows) ([]models.PriceRecord, error) {
	var records []models.PriceRecord
	for rows.Next() {
		var record models.PriceRecord
		err := rows.Scan(
			&record.ID,
			&record.ProductID,
			&record.Retailer,
			&record.Price,
			&record.Currency,
			&record.URL,
			&record.ScrapedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("can't scan price record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read price records: %w", err)
	}

	return records, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
