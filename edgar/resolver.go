package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrTickerNotFound means the ticker is absent from the SEC registry
// snapshot. Callers should give up on the ticker, not on the run.
var ErrTickerNotFound = errors.New("ticker not found in registry")

// Resolver maps ticker symbols to CIK identifiers. The registry
// snapshot is fetched once per run; lookups after that are local.
type Resolver struct {
	client *Client
	ciks   map[string]string
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Load fetches the company_tickers.json snapshot and builds a
// case-insensitive ticker lookup with CIKs zero-padded to 10 digits.
func (r *Resolver) Load(ctx context.Context) error {
	body, status, err := r.client.Get(ctx, r.client.registryURL)
	if err != nil {
		return fmt.Errorf("fetch ticker registry: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: ticker registry returned %d", ErrUpstreamStatus, status)
	}

	// The registry is keyed by row number, not by ticker.
	var entries map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("decode ticker registry: %w", err)
	}

	ciks := make(map[string]string, len(entries))
	for _, entry := range entries {
		ciks[strings.ToLower(entry.Ticker)] = fmt.Sprintf("%010d", entry.CIK)
	}
	r.ciks = ciks

	return nil
}

// Resolve returns the 10-digit CIK for a ticker. Load must have been
// called first.
func (r *Resolver) Resolve(ticker string) (string, error) {
	cik, ok := r.ciks[strings.ToLower(ticker)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	return cik, nil
}
