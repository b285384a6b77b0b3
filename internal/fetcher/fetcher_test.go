package fetcher_test

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/accadaniel/PriceSpy/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userAgent = "test/0.0.0"
	page      = "<html><body>hello-world</body></html>"
)

func TestUnitFetchPage(t *testing.T) {
	wantHeaders := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Encoding": "gzip",
	}

	tests := map[string]struct {
		serverHandler http.Handler
		wantBody      string
		wantErr       error
	}{
		"ok html": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add("Content-Type", "text/html")
				wrt.Write([]byte(page))
			}),
			wantBody: page,
		},
		"ok gzip": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add("Content-Type", "text/html")
				wrt.Header().Add("Content-Encoding", "gzip")
				compressedWrt := gzip.NewWriter(wrt)
				compressedWrt.Write([]byte(page))
				compressedWrt.Close()
			}),
			wantBody: page,
		},
		"bad status error": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.WriteHeader(http.StatusServiceUnavailable)
			}),
			wantErr: fetcher.ErrStatusNotOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tt.serverHandler)
			t.Cleanup(func() {
				srv.Close()
			})

			fet := fetcher.NewFetcher(srv.Client(), userAgent)
			body, err := fet.FetchPage(context.TODO(), srv.URL)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			assert.Equal(t, tt.wantBody, body, "should return correct page text")
		})
	}
}

func validateHeaders(t *testing.T, headers http.Header, expected map[string]string) {
	t.Helper()

	for header, expectedValue := range expected {
		assert.Equalf(t, expectedValue, headers.Get(header), "request should contain correct value for header %s", header)
	}
}
