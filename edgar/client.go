// Package edgar talks to the SEC EDGAR endpoints: the ticker registry
// snapshot, the per-CIK submissions documents and the filing archives.
package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	defaultRegistryURL        = "https://www.sec.gov/files/company_tickers.json"
	defaultSubmissionsBaseURL = "https://data.sec.gov/submissions"
	defaultArchivesBaseURL    = "https://www.sec.gov/Archives/edgar/data"

	// SEC fair-access guidance allows up to 10 requests per second; we
	// stay well under it.
	defaultRequestsPerSecond = 5
)

// ErrUpstreamStatus marks a non-success HTTP status from EDGAR.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// Limiter paces upstream calls. *rate.Limiter implements it; every
// component that talks to EDGAR shares one instance.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Client is a rate-limited EDGAR HTTP client. All requests carry the
// identifying User-Agent the SEC requires and are paced by the shared
// limiter. Fetches are single-shot: callers that can tolerate a missing
// page are expected to carry on without it.
type Client struct {
	http      *http.Client
	limiter   Limiter
	userAgent string

	registryURL        string
	submissionsBaseURL string
	archivesBaseURL    string
}

type Option func(c *Client)

func WithLimiter(l Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURLs points the client at alternate endpoints. Tests use this
// to target a local server.
func WithBaseURLs(registry, submissions, archives string) Option {
	return func(c *Client) {
		c.registryURL = registry
		c.submissionsBaseURL = submissions
		c.archivesBaseURL = archives
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		registryURL:        defaultRegistryURL,
		submissionsBaseURL: defaultSubmissionsBaseURL,
		archivesBaseURL:    defaultArchivesBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		rc := retryablehttp.NewClient()
		rc.Logger = nil
		// One attempt per fetch. Enumeration treats a failed page as
		// "no more data" rather than retrying it.
		rc.RetryMax = 0
		c.http = rc.StandardClient()
	}

	if c.limiter == nil {
		c.limiter = rate.NewLimiter(defaultRequestsPerSecond, 1)
	}

	if c.userAgent == "" {
		c.userAgent = os.Getenv("EDGAR_USER_AGENT")
	}

	if c.userAgent == "" {
		c.userAgent = "filingfacts/1.0 (ops@filingfacts.dev)"
	}

	return c
}

// Get performs one rate-limited GET and returns the body and status
// code. A non-2xx status is not an error here; callers decide whether a
// miss is fatal.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}

func (c *Client) submissionsURL(cik string) string {
	return fmt.Sprintf("%s/CIK%s.json", c.submissionsBaseURL, cik)
}

func (c *Client) submissionsPageURL(name string) string {
	return fmt.Sprintf("%s/%s", c.submissionsBaseURL, name)
}

// archivePath builds the per-filing archive prefix. The archive wants
// the CIK without leading zeros and the accession number without
// dashes.
func (c *Client) archivePath(cik, accessionNumber string) string {
	shortCIK := strings.TrimLeft(cik, "0")
	return fmt.Sprintf("%s/%s/%s", c.archivesBaseURL, shortCIK, strings.ReplaceAll(accessionNumber, "-", ""))
}

// DocumentURL returns the download URL for one named document inside a
// filing's archive directory.
func (c *Client) DocumentURL(cik string, filing Filing, name string) string {
	return fmt.Sprintf("%s/%s", c.archivePath(cik, filing.AccessionNumber), name)
}
