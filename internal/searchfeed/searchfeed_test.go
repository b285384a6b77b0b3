package searchfeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/searchfeed"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "test-key"

const searchResponse = `{
  "shopping_results": [
    {"source": "ShopA", "title": "Acme Widget Pro", "link": "https://a.example/p", "extracted_price": 99.99, "price": "$99.99"},
    {"source": "ShopB", "title": "Acme Widget Pro", "link": "https://b.example/p", "price": "89,99 EUR"},
    {"source": "", "title": "Acme Widget Pro", "link": "https://c.example/p", "extracted_price": 120},
    {"source": "ShopD", "title": "Acme Widget Pro", "link": "https://d.example/p", "price": "call for price"}
  ]
}`

func TestUnitSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		gotQuery = map[string]string{
			"engine":   req.URL.Query().Get("engine"),
			"q":        req.URL.Query().Get("q"),
			"api_key":  req.URL.Query().Get("api_key"),
			"hl":       req.URL.Query().Get("hl"),
			"gl":       req.URL.Query().Get("gl"),
			"location": req.URL.Query().Get("location"),
		}
		wrt.Header().Set("Content-Type", "application/json")
		wrt.Write([]byte(searchResponse))
	}))
	t.Cleanup(srv.Close)

	cli := searchfeed.NewClient(srv.Client(), apiKey, searchfeed.WithBaseURL(srv.URL))
	quotes, err := cli.Search(context.TODO(), "acme widget pro", "hu", 10)

	require.NoError(t, err, "shouldn't return any error")

	assert.Equal(t, map[string]string{
		"engine":   "google_shopping",
		"q":        "acme widget pro",
		"api_key":  apiKey,
		"hl":       "hu",
		"gl":       "hu",
		"location": "Hungary",
	}, gotQuery, "should send correct search parameters")

	require.Len(t, quotes, 3, "should skip the entry with no usable price")
	assert.Equal(t, models.PriceQuote{
		Retailer: "ShopA",
		Price:    99.99,
		Currency: "HUF",
		URL:      "https://a.example/p",
		Title:    "Acme Widget Pro",
	}, quotes[0], "should prefer the pre-parsed numeric price")
	assert.InDelta(t, 89.99, quotes[1].Price, 1e-9, "should parse the formatted price string")
	assert.Equal(t, "Unknown", quotes[2].Retailer, "should substitute a placeholder for a missing source")
}

func TestUnitSearchMissingAPIKey(t *testing.T) {
	cli := searchfeed.NewClient(http.DefaultClient, "")

	_, err := cli.Search(context.TODO(), "anything", "eu", 10)

	require.ErrorIs(t, err, searchfeed.ErrMissingAPIKey, "missing key must surface as a configuration error")
}

func TestUnitSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	cli := searchfeed.NewClient(srv.Client(), apiKey, searchfeed.WithBaseURL(srv.URL))
	_, err := cli.Search(context.TODO(), "anything", "eu", 10)

	require.ErrorIs(t, err, searchfeed.ErrStatusNotOK, "should return correct error")
}

func TestUnitSearchMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.Write([]byte(searchResponse))
	}))
	t.Cleanup(srv.Close)

	cli := searchfeed.NewClient(srv.Client(), apiKey, searchfeed.WithBaseURL(srv.URL))
	quotes, err := cli.Search(context.TODO(), "acme widget pro", "eu", 2)

	require.NoError(t, err, "shouldn't return any error")
	assert.Len(t, quotes, 2, "should cap results at maxResults")
}

func TestUnitLookupRegionFallback(t *testing.T) {
	region := searchfeed.LookupRegion("atlantis")

	assert.Equal(t, "EUR", region.Currency, "unknown region should fall back to the EU market")
	assert.Equal(t, "de", region.Country, "unknown region should fall back to the EU market")
}

func TestUnitBuildQuery(t *testing.T) {
	product := models.Product{
		SearchQuery: "acme widget pro",
		Brand:       lo.ToPtr("Acme"),
		Model:       lo.ToPtr("AW-100"),
		Color:       lo.ToPtr("Black"),
		Storage:     lo.ToPtr("256GB"),
	}

	query := searchfeed.BuildQuery(&product)

	assert.Equal(t, "acme widget pro Acme AW-100 Black 256GB", query,
		"should append attribute variants in a fixed order",
	)
}
