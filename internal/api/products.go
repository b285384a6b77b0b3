package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/accadaniel/PriceSpy/internal/extractor"
	"github.com/accadaniel/PriceSpy/internal/platform"
	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

type productPayload struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	SearchQuery string    `json:"search_query"`
	Category    string    `json:"category"`
	Region      string    `json:"region"`
	Size        *string   `json:"size,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Model       *string   `json:"model,omitempty"`
	Storage     *string   `json:"storage,omitempty"`
	Material    *string   `json:"material,omitempty"`
	TargetPrice float64   `json:"target_price"`
	Currency    string    `json:"currency"`
	UserEmail   string    `json:"user_email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	LowestPrice         *float64             `json:"lowest_price,omitempty"`
	LowestPriceRetailer string               `json:"lowest_price_retailer,omitempty"`
	LowestPriceURL      string               `json:"lowest_price_url,omitempty"`
	CurrentPrices       []priceRecordPayload `json:"current_prices,omitempty"`
}

type createProductRequest struct {
	Name        string  `json:"name"`
	SearchQuery string  `json:"search_query"`
	Category    string  `json:"category"`
	Region      string  `json:"region"`
	Size        *string `json:"size"`
	Color       *string `json:"color"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Storage     *string `json:"storage"`
	Material    *string `json:"material"`
	TargetPrice float64 `json:"target_price"`
	Currency    string  `json:"currency"`
	UserEmail   string  `json:"user_email"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	SearchQuery *string  `json:"search_query"`
	Category    *string  `json:"category"`
	Region      *string  `json:"region"`
	Size        *string  `json:"size"`
	Color       *string  `json:"color"`
	Brand       *string  `json:"brand"`
	Model       *string  `json:"model"`
	Storage     *string  `json:"storage"`
	Material    *string  `json:"material"`
	TargetPrice *float64 `json:"target_price"`
	Currency    *string  `json:"currency"`
	UserEmail   *string  `json:"user_email"`
	IsActive    *bool    `json:"is_active"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.SearchQuery == "" || req.UserEmail == "" {
		s.respondError(w, http.StatusBadRequest, "name, search_query and user_email are required")
		return
	}
	if req.TargetPrice <= 0 {
		s.respondError(w, http.StatusBadRequest, "target_price must be positive")
		return
	}

	product := models.Product{
		Name:        req.Name,
		SearchQuery: req.SearchQuery,
		Category:    models.CategoryElectronics,
		Region:      "eu",
		Size:        req.Size,
		Color:       req.Color,
		Brand:       req.Brand,
		Model:       req.Model,
		Storage:     req.Storage,
		Material:    req.Material,
		TargetPrice: req.TargetPrice,
		Currency:    "EUR",
		UserEmail:   req.UserEmail,
		IsActive:    true,
	}
	if req.Category != "" {
		product.Category = models.Category(req.Category)
	}
	if req.Region != "" {
		product.Region = req.Region
	}
	if req.Currency != "" {
		product.Currency = req.Currency
	}

	if err := s.storage.CreateProduct(r.Context(), &product); err != nil {
		s.logger.Error().
			Err(err).
			Msg("can't create product")
		s.respondError(w, http.StatusInternalServerError, "can't create product")
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{
		"id":      product.ID,
		"message": "Product created successfully",
	})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	products, err := s.storage.Products(r.Context(), activeOnly)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("can't list products")
		s.respondError(w, http.StatusInternalServerError, "can't list products")
		return
	}

	payload := make([]productPayload, 0, len(products))
	for ix := range products {
		payload = append(payload, s.enrichProduct(r, &products[ix], false))
	}

	s.respond(w, http.StatusOK, payload)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	product, err := s.storage.Product(r.Context(), productID)
	if err != nil {
		s.respondStorageError(w, err, "can't get product")
		return
	}

	s.respond(w, http.StatusOK, s.enrichProduct(r, product, true))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		s.respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := s.storage.UpdateProduct(r.Context(), productID, fields); err != nil {
		s.respondStorageError(w, err, "can't update product")
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	if err := s.storage.DeleteProduct(r.Context(), productID); err != nil {
		s.respondStorageError(w, err, "can't delete product")
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (s *Server) handleToggleProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.productID(w, r)
	if !ok {
		return
	}

	product, err := s.storage.Product(r.Context(), productID)
	if err != nil {
		s.respondStorageError(w, err, "can't get product")
		return
	}

	newStatus := !product.IsActive
	if err := s.storage.UpdateProduct(r.Context(), productID, map[string]any{"is_active": newStatus}); err != nil {
		s.respondStorageError(w, err, "can't update product")
		return
	}

	message := "Product deactivated"
	if newStatus {
		message = "Product activated"
	}
	s.respond(w, http.StatusOK, map[string]any{
		"message":   message,
		"is_active": newStatus,
	})
}

type productFromURLRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

type extractedPayload struct {
	Name        string  `json:"name,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Model       string  `json:"model,omitempty"`
	Color       string  `json:"color,omitempty"`
	Size        string  `json:"size,omitempty"`
	Storage     string  `json:"storage,omitempty"`
	Material    string  `json:"material,omitempty"`
	Price       float64 `json:"price,omitempty"`
	SearchQuery string  `json:"search_query,omitempty"`
}

// handleProductFromURL downloads a product page and runs signal extraction
// over it, returning a prefilled product draft.
func (s *Server) handleProductFromURL(w http.ResponseWriter, r *http.Request) {
	var req productFromURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	page, err := s.fetcher.FetchPage(r.Context(), req.URL)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("url", req.URL).
			Msg("can't fetch product page")
		s.respondError(w, http.StatusBadGateway, "can't fetch product page")
		return
	}

	extracted := extractor.Extract(page, models.Category(req.Category))

	s.respond(w, http.StatusOK, extractedPayload{
		Name:        extracted.Name,
		Brand:       extracted.Brand,
		Model:       extracted.Model,
		Color:       extracted.Color,
		Size:        extracted.Size,
		Storage:     extracted.Storage,
		Material:    extracted.Material,
		Price:       extracted.Price,
		SearchQuery: extracted.SearchQuery,
	})
}

func (s *Server) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || productID < 1 {
		s.respondError(w, http.StatusBadRequest, "invalid product ID")
		return 0, false
	}
	return productID, true
}

func (s *Server) respondStorageError(w http.ResponseWriter, err error, detail string) {
	if errors.Is(err, platform.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	s.logger.Error().
		Err(err).
		Msg(detail)
	s.respondError(w, http.StatusInternalServerError, detail)
}

// enrichProduct adds the cheapest recorded offer, and the per-retailer
// latest prices when withCurrent is set.
func (s *Server) enrichProduct(r *http.Request, product *models.Product, withCurrent bool) productPayload {
	payload := productPayload{
		ID:          product.ID,
		Name:        product.Name,
		SearchQuery: product.SearchQuery,
		Category:    string(product.Category),
		Region:      product.Region,
		Size:        product.Size,
		Color:       product.Color,
		Brand:       product.Brand,
		Model:       product.Model,
		Storage:     product.Storage,
		Material:    product.Material,
		TargetPrice: product.TargetPrice,
		Currency:    product.Currency,
		UserEmail:   product.UserEmail,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
	}

	lowest, err := s.storage.LowestPrice(r.Context(), product.ID)
	if err == nil {
		payload.LowestPrice = &lowest.Price
		payload.LowestPriceRetailer = lowest.Retailer
		payload.LowestPriceURL = lowest.URL
	} else if !errors.Is(err, platform.ErrNotFound) {
		s.logger.Warn().
			Err(err).
			Int("productId", product.ID).
			Msg("can't get lowest price")
	}

	if withCurrent {
		latest, err := s.storage.LatestPricePerRetailer(r.Context(), product.ID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int("productId", product.ID).
				Msg("can't get latest prices")
		}
		payload.CurrentPrices = toPriceRecordPayloads(latest)
	}

	return payload
}

func (r updateProductRequest) fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.SearchQuery != nil {
		fields["search_query"] = *r.SearchQuery
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Region != nil {
		fields["region"] = *r.Region
	}
	if r.Size != nil {
		fields["size"] = *r.Size
	}
	if r.Color != nil {
		fields["color"] = *r.Color
	}
	if r.Brand != nil {
		fields["brand"] = *r.Brand
	}
	if r.Model != nil {
		fields["model"] = *r.Model
	}
	if r.Storage != nil {
		fields["storage"] = *r.Storage
	}
	if r.Material != nil {
		fields["material"] = *r.Material
	}
	if r.TargetPrice != nil {
		fields["target_price"] = *r.TargetPrice
	}
	if r.Currency != nil {
		fields["currency"] = *r.Currency
	}
	if r.UserEmail != nil {
		fields["user_email"] = *r.UserEmail
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}
