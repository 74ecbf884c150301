package edgar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(
		WithHTTPClient(srv.Client()),
		WithLimiter(rate.NewLimiter(rate.Inf, 0)),
		WithUserAgent("filingfacts-tests admin@example.com"),
		WithBaseURLs(
			srv.URL+"/files/company_tickers.json",
			srv.URL+"/submissions",
			srv.URL+"/archives",
		),
	)
}

func TestResolver(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
			"1": {"cik_str": 12345, "ticker": "ACME", "title": "Acme Corp"}
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resolver := NewResolver(newTestClient(srv))
	if err := resolver.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		ticker   string
		expected string
	}{
		{"AAPL", "0000320193"},
		{"aapl", "0000320193"},
		{"Acme", "0000012345"},
	}
	for _, tc := range tests {
		cik, err := resolver.Resolve(tc.ticker)
		if err != nil {
			t.Errorf("Resolve(%s): %v", tc.ticker, err)
			continue
		}
		if cik != tc.expected {
			t.Errorf("Resolve(%s) = %q, want %q", tc.ticker, cik, tc.expected)
		}
	}

	_, err := resolver.Resolve("ZZZZ")
	if !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("expected ErrTickerNotFound, got %v", err)
	}
}

func TestResolverRegistryUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resolver := NewResolver(newTestClient(srv))
	err := resolver.Load(context.Background())
	if !errors.Is(err, ErrUpstreamStatus) {
		t.Fatalf("expected ErrUpstreamStatus, got %v", err)
	}
}
