package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Form types we retain. Everything else in the submissions feed is
// ignored.
const (
	Form10Q = "10-Q"
	Form10K = "10-K"
)

// DefaultMinFilings is how many retained filings the enumerator tries
// to collect before it stops walking archival pages.
const DefaultMinFilings = 40

// Filing is one regulatory submission. AccessionNumber is its identity:
// the same filing can show up both in the recent block and in an
// archival page and must collapse to one entry.
type Filing struct {
	AccessionNumber string
	Form            string
	FilingDate      time.Time
	ReportDate      time.Time
	IndexURL        string
}

// filingBlock is the parallel-array schema EDGAR uses both for the
// "recent" block of the primary submissions document and for the root
// of each archival page.
type filingBlock struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
}

type submissionsDoc struct {
	Filings struct {
		Recent filingBlock `json:"recent"`
		Files  []struct {
			Name string `json:"name"`
		} `json:"files"`
	} `json:"filings"`
}

// Enumerator walks a CIK's submissions feed and returns its quarterly
// and annual filings.
type Enumerator struct {
	client *Client
}

func NewEnumerator(client *Client) *Enumerator {
	return &Enumerator{client: client}
}

// Enumerate returns the CIK's 10-Q and 10-K filings, deduplicated by
// accession number and sorted by filing date descending. It reads the
// primary submissions document first and only walks archival pages
// until minCount filings have been collected. A page that fails to
// fetch or decode truncates enumeration to what was already collected;
// it does not fail the call.
func (e *Enumerator) Enumerate(ctx context.Context, cik string, minCount int) ([]Filing, error) {
	if minCount <= 0 {
		minCount = DefaultMinFilings
	}

	body, status, err := e.client.Get(ctx, e.client.submissionsURL(cik))
	if err != nil {
		return nil, fmt.Errorf("fetch submissions for CIK %s: %w", cik, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: submissions for CIK %s returned %d", ErrUpstreamStatus, cik, status)
	}

	var doc submissionsDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode submissions for CIK %s: %w", cik, err)
	}

	filings := e.fromBlock(doc.Filings.Recent, cik)

	for _, page := range doc.Filings.Files {
		if len(filings) >= minCount {
			break
		}
		if page.Name == "" {
			continue
		}

		body, status, err := e.client.Get(ctx, e.client.submissionsPageURL(page.Name))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if status != http.StatusOK {
			continue
		}

		var block filingBlock
		if err := json.Unmarshal(body, &block); err != nil {
			continue
		}

		filings = append(filings, e.fromBlock(block, cik)...)
	}

	return dedupeAndSort(filings), nil
}

// fromBlock denormalizes a parallel-array block, keeping only 10-Q and
// 10-K entries.
func (e *Enumerator) fromBlock(block filingBlock, cik string) []Filing {
	filings := make([]Filing, 0, len(block.Form))
	for i, form := range block.Form {
		if form != Form10Q && form != Form10K {
			continue
		}
		if i >= len(block.AccessionNumber) || i >= len(block.FilingDate) {
			break
		}

		filed, _ := time.Parse("2006-01-02", block.FilingDate[i])
		var reported time.Time
		if i < len(block.ReportDate) {
			reported, _ = time.Parse("2006-01-02", block.ReportDate[i])
		}

		accessionNumber := block.AccessionNumber[i]
		filings = append(filings, Filing{
			AccessionNumber: accessionNumber,
			Form:            form,
			FilingDate:      filed,
			ReportDate:      reported,
			IndexURL:        fmt.Sprintf("%s/index.json", e.client.archivePath(cik, accessionNumber)),
		})
	}

	return filings
}

// dedupeAndSort collapses duplicate accession numbers (first occurrence
// wins) and sorts by filing date descending. The sort is stable so ties
// keep the order produced by the dedup pass.
func dedupeAndSort(filings []Filing) []Filing {
	seen := make(map[string]bool, len(filings))
	unique := make([]Filing, 0, len(filings))
	for _, f := range filings {
		if seen[f.AccessionNumber] {
			continue
		}
		seen[f.AccessionNumber] = true
		unique = append(unique, f)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].FilingDate.After(unique[j].FilingDate)
	})

	return unique
}
