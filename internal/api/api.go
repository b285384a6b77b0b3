// Package api is the HTTP interface for managing tracked products and
// triggering price checks.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/rs/zerolog"
)

// Storage is products, prices and runs storage.
type Storage interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	Product(ctx context.Context, productID int) (*models.Product, error)
	Products(ctx context.Context, activeOnly bool) ([]models.Product, error)
	UpdateProduct(ctx context.Context, productID int, fields map[string]any) error
	DeleteProduct(ctx context.Context, productID int) error
	PriceHistory(ctx context.Context, productID, limit int) ([]models.PriceRecord, error)
	LatestPricePerRetailer(ctx context.Context, productID int) ([]models.PriceRecord, error)
	LowestPrice(ctx context.Context, productID int) (*models.PriceRecord, error)
}

// Checker runs price checks for tracked products.
type Checker interface {
	CheckAll(ctx context.Context) error
	CheckByID(ctx context.Context, productID int) error
}

// PageFetcher downloads product pages for extraction.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Server handles API requests.
type Server struct {
	storage Storage
	checker Checker
	fetcher PageFetcher
	logger  *zerolog.Logger
}

// NewServer returns new Server.
func NewServer(storage Storage, checker Checker, fetcher PageFetcher, logger *zerolog.Logger) *Server {
	return &Server{
		storage: storage,
		checker: checker,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Routes returns the server's route table.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/products", s.handleCreateProduct)
	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	mux.HandleFunc("PUT /api/products/{id}", s.handleUpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", s.handleDeleteProduct)
	mux.HandleFunc("POST /api/products/{id}/toggle", s.handleToggleProduct)
	mux.HandleFunc("POST /api/products/from-url", s.handleProductFromURL)

	mux.HandleFunc("GET /api/prices/{id}/history", s.handlePriceHistory)
	mux.HandleFunc("GET /api/prices/{id}/latest", s.handleLatestPrices)
	mux.HandleFunc("POST /api/prices/{id}/scrape", s.handleScrapeProduct)
	mux.HandleFunc("POST /api/prices/scrape-all", s.handleScrapeAll)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().
			Err(err).
			Msg("can't write response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respond(w, status, map[string]string{"detail": detail})
}
