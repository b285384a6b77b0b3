package models

import "time"

// Category is a product category used to pick specialized extraction patterns.
type Category string

// Known product categories.
const (
	CategoryElectronics Category = "electronics"
	CategoryClothes     Category = "clothes"
)

// Product is a tracked product.
type Product struct {
	ID          int
	Name        string
	SearchQuery string
	Category    Category
	Region      string
	Size        *string
	Color       *string
	Brand       *string
	Model       *string
	Storage     *string
	Material    *string
	TargetPrice float64
	Currency    string
	UserEmail   string
	IsActive    bool
	CreatedAt   time.Time
}

// ExtractedProduct is the result of running the extraction pipeline over one
// HTML document. Zero values mean the corresponding signal was not found.
type ExtractedProduct struct {
	Name        string
	Brand       string
	Model       string
	Color       string
	Size        string
	Storage     string
	Material    string
	Price       float64
	SearchQuery string
}

// IsEmpty reports whether no field was extracted at all.
func (p ExtractedProduct) IsEmpty() bool {
	return p == ExtractedProduct{}
}

// PriceQuote is one price observation from the search feed.
type PriceQuote struct {
	Retailer string
	Price    float64
	Currency string
	URL      string
	Title    string
}

// PriceRecord is a persisted price observation.
type PriceRecord struct {
	ID        int
	ProductID int
	Retailer  string
	Price     float64
	Currency  string
	URL       string
	ScrapedAt time.Time
}

// AlertRecord is a persisted record of a sent price alert.
type AlertRecord struct {
	ID        int
	ProductID int
	Price     float64
	Retailer  string
	SentAt    time.Time
}

// AlertDecision is the outcome of one price evaluation cycle.
// Retailer, Price and URL are set only when ShouldNotify is true.
type AlertDecision struct {
	ShouldNotify bool
	Retailer     string
	Price        float64
	URL          string
}

// Run is scrape cycle run model.
type Run struct {
	ID              int
	CreatedAt       time.Time
	FinishedAt      *time.Time
	IsSuccess       *bool
	StatusMessage   *string
	CheckedProducts *int32
	FoundPrices     *int32
	SentAlerts      *int32
	FailedProducts  *int32
}
