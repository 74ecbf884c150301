package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// ErrNoCandidateDocument means a filing's archive directory holds no
// .xml entries at all, so there is nothing to try extracting from.
var ErrNoCandidateDocument = errors.New("no candidate fact document")

// Instance documents come under two naming conventions: a dated suffix
// (acme-20230401.xml) or an _htm suffix (acme10q_htm.xml). Dated names
// are the modern convention and are tried first.
var (
	datedXMLPattern = regexp.MustCompile(`\d{8}\.xml$`)
	htmXMLPattern   = regexp.MustCompile(`_htm\.xml$`)
)

type directoryIndex struct {
	Directory struct {
		Item []struct {
			Name string `json:"name"`
		} `json:"item"`
	} `json:"directory"`
}

// Selector picks fact-document candidates out of a filing's archive
// directory listing.
type Selector struct {
	client *Client
}

func NewSelector(client *Client) *Selector {
	return &Selector{client: client}
}

// SelectDocuments fetches the filing's index.json and returns candidate
// document names in attempt order: dated-suffix matches first, then
// _htm matches, each group in listing order. If neither pattern matches
// anything the full .xml set is returned so the caller can still try
// something.
func (s *Selector) SelectDocuments(ctx context.Context, filing Filing) ([]string, error) {
	body, status, err := s.client.Get(ctx, filing.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index for %s: %w", filing.AccessionNumber, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: index for %s returned %d", ErrUpstreamStatus, filing.AccessionNumber, status)
	}

	var index directoryIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("decode index for %s: %w", filing.AccessionNumber, err)
	}

	var all, dated, htm []string
	for _, item := range index.Directory.Item {
		lower := strings.ToLower(item.Name)
		if !strings.HasSuffix(lower, ".xml") {
			continue
		}
		all = append(all, item.Name)
		switch {
		case datedXMLPattern.MatchString(lower):
			dated = append(dated, item.Name)
		case htmXMLPattern.MatchString(lower):
			htm = append(htm, item.Name)
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCandidateDocument, filing.AccessionNumber)
	}

	candidates := append(dated, htm...)
	if len(candidates) == 0 {
		candidates = all
	}

	return candidates, nil
}
