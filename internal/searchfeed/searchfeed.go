// Package searchfeed queries the SerpAPI Google Shopping feed for retailer
// price quotes.
package searchfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/platform/priceutil"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// Client is a SerpAPI Google Shopping client.
type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// Option is custom configuration of Client.
type Option func(c *Client)

// NewClient returns new Client.
func NewClient(client *http.Client, apiKey string, ops ...Option) *Client {
	cli := &Client{
		client:  client,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}

	for _, op := range ops {
		op(cli)
	}

	return cli
}

// WithBaseURL overrides the SerpAPI endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// searchResponse mirrors the SerpAPI shopping response.
type searchResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
}

type shoppingResult struct {
	Source         string  `json:"source"`
	Title          string  `json:"title"`
	Link           string  `json:"link"`
	Price          string  `json:"price"`
	ExtractedPrice float64 `json:"extracted_price"`
}

// SearchProduct fetches shopping quotes for a tracked product. The query is
// the product's stored search query plus its attribute variants; the
// product's region picks market, language, location and currency. Zero
// results is not an error.
func (c *Client) SearchProduct(ctx context.Context, product *models.Product, maxResults int) ([]models.PriceQuote, error) {
	return c.Search(ctx, BuildQuery(product), product.Region, maxResults)
}

// Search fetches up to maxResults shopping quotes for a raw query string.
func (c *Client) Search(ctx context.Context, query, region string, maxResults int) ([]models.PriceQuote, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	reg := LookupRegion(region)

	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(maxResults))
	params.Set("hl", reg.Language)
	params.Set("gl", reg.Country)
	params.Set("location", reg.Location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("can't build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get search response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("can't decode search response: %w", err)
	}

	return toQuotes(result.ShoppingResults, reg.Currency, maxResults), nil
}

// toQuotes converts raw shopping results to price quotes, preferring the
// pre-parsed numeric price and skipping entries with no usable price.
func toQuotes(results []shoppingResult, currency string, maxResults int) []models.PriceQuote {
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	quotes := make([]models.PriceQuote, 0, len(results))
	for _, item := range results {
		price := item.ExtractedPrice
		if price <= 0 {
			parsed, ok := priceutil.Parse(item.Price)
			if !ok {
				continue
			}
			price = parsed
		}

		quotes = append(quotes, models.PriceQuote{
			Retailer: lo.Ternary(item.Source != "", item.Source, "Unknown"),
			Price:    price,
			Currency: currency,
			URL:      item.Link,
			Title:    item.Title,
		})
	}

	return quotes
}

// BuildQuery joins the product's stored search query with its attribute
// variants so retailers list the exact configuration.
func BuildQuery(product *models.Product) string {
	parts := []string{product.SearchQuery}
	for _, attr := range []*string{
		product.Brand,
		product.Model,
		product.Size,
		product.Color,
		product.Storage,
		product.Material,
	} {
		if attr != nil && *attr != "" {
			parts = append(parts, *attr)
		}
	}

	return strings.Join(parts, " ")
}
