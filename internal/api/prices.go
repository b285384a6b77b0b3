package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/accadaniel/PriceSpy/internal/platform"
	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

const defaultHistoryLimit = 50

type priceRecordPayload struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	Retailer  string    `json:"retailer"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	URL       string    `json:"url"`
	ScrapedAt time.Time `json:"scraped_at"`
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	if _, err := s.storage.Product(r.Context(), productID); err != nil {
		s.respondStorageError(w, err, "can't get product")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	history, err := s.storage.PriceHistory(r.Context(), productID, limit)
	if err != nil {
		s.respondStorageError(w, err, "can't get price history")
		return
	}

	s.respond(w, http.StatusOK, toPriceRecordPayloads(history))
}

func (s *Server) handleLatestPrices(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	if _, err := s.storage.Product(r.Context(), productID); err != nil {
		s.respondStorageError(w, err, "can't get product")
		return
	}

	latest, err := s.storage.LatestPricePerRetailer(r.Context(), productID)
	if err != nil {
		s.respondStorageError(w, err, "can't get latest prices")
		return
	}

	s.respond(w, http.StatusOK, toPriceRecordPayloads(latest))
}

func (s *Server) handleScrapeProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	if err := s.checker.CheckByID(r.Context(), productID); err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		s.logger.Error().
			Err(err).
			Int("productId", productID).
			Msg("can't check product")
		s.respondError(w, http.StatusInternalServerError, "price check failed")
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"message": "Price check completed"})
}

func (s *Server) handleScrapeAll(w http.ResponseWriter, r *http.Request) {
	if err := s.checker.CheckAll(r.Context()); err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			s.respondError(w, http.StatusConflict, "A price check is already running")
			return
		}
		s.logger.Error().
			Err(err).
			Msg("can't check products")
		s.respondError(w, http.StatusInternalServerError, "price check failed")
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"message": "Price check completed"})
}

func toPriceRecordPayloads(records []models.PriceRecord) []priceRecordPayload {
	payload := make([]priceRecordPayload, 0, len(records))
	for _, record := range records {
		payload = append(payload, priceRecordPayload{
			ID:        record.ID,
			ProductID: record.ProductID,
			Retailer:  record.Retailer,
			Price:     record.Price,
			Currency:  record.Currency,
			URL:       record.URL,
			ScrapedAt: record.ScrapedAt,
		})
	}
	return payload
}
