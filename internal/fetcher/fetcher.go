// Package fetcher retrieves retailer product pages over HTTP.
package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxPageSize caps how much of a page is read; product data sits in the head
// and early body, anything beyond this is padding or trackers.
const maxPageSize = 4 << 20

// Fetcher builds http requests and fetches page text via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// FetchPage returns the decoded text of the page at url or an error. The
// extraction pipeline never sees a page that failed to fetch.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", "text/html,application/xhtml+xml")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrStatusNotOK
	}

	body := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		decompressed, err := gzip.NewReader(body)
		if err != nil {
			return "", fmt.Errorf("can't decompress response: %w", err)
		}
		defer decompressed.Close()
		body = decompressed
	}

	page, err := io.ReadAll(io.LimitReader(body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("can't read response body: %w", err)
	}

	return string(page), nil
}
