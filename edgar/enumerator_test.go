package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Fixture: three retained filings in the recent block and an archival
// page, with one accession number appearing in both, one filing-date
// tie, and a second page that always fails.
func newSubmissionsServer(t *testing.T, pageHits *int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/submissions/CIK0000012345.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"filings": {
				"recent": {
					"accessionNumber": ["0001-24-000010", "0001-24-000011", "0001-23-000099"],
					"filingDate": ["2024-02-01", "2024-01-15", "2023-11-15"],
					"reportDate": ["2023-12-31", "2024-01-10", "2023-09-30"],
					"form": ["10-Q", "8-K", "10-K"]
				},
				"files": [
					{"name": "CIK0000012345-submissions-001.json"},
					{"name": "CIK0000012345-submissions-002.json"}
				]
			}
		}`))
	})
	mux.HandleFunc("/submissions/CIK0000012345-submissions-001.json", func(w http.ResponseWriter, r *http.Request) {
		*pageHits++
		w.Write([]byte(`{
			"accessionNumber": ["0001-23-000099", "0001-23-000051", "0001-23-000050"],
			"filingDate": ["2023-11-15", "2023-11-15", "2023-08-01"],
			"reportDate": ["2023-09-30", "2023-09-30", "2023-06-30"],
			"form": ["10-K", "10-Q", "10-Q"]
		}`))
	})
	mux.HandleFunc("/submissions/CIK0000012345-submissions-002.json", func(w http.ResponseWriter, r *http.Request) {
		*pageHits++
		w.WriteHeader(http.StatusNotFound)
	})

	return httptest.NewServer(mux)
}

func TestEnumerateDedupesAndSorts(t *testing.T) {
	var pageHits int
	srv := newSubmissionsServer(t, &pageHits)
	defer srv.Close()

	enumerator := NewEnumerator(newTestClient(srv))
	filings, err := enumerator.Enumerate(context.Background(), "0000012345", 10)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	// The 8-K is filtered, the duplicated 10-K collapses to one entry,
	// and the failed second page truncates silently. The date tie
	// between the 10-K and 10-Q of 2023-11-15 keeps dedup order.
	expected := []string{"0001-24-000010", "0001-23-000099", "0001-23-000051", "0001-23-000050"}
	if len(filings) != len(expected) {
		t.Fatalf("expected %d filings, got %d: %+v", len(expected), len(filings), filings)
	}
	for i, accessionNumber := range expected {
		if filings[i].AccessionNumber != accessionNumber {
			t.Errorf("filings[%d] = %s, want %s", i, filings[i].AccessionNumber, accessionNumber)
		}
	}

	if filings[1].Form != Form10K {
		t.Errorf("duplicate should keep its first occurrence: %+v", filings[1])
	}
	if pageHits != 2 {
		t.Errorf("expected both pages visited, got %d", pageHits)
	}
}

func TestEnumerateStopsAtMinCount(t *testing.T) {
	var pageHits int
	srv := newSubmissionsServer(t, &pageHits)
	defer srv.Close()

	enumerator := NewEnumerator(newTestClient(srv))
	filings, err := enumerator.Enumerate(context.Background(), "0000012345", 2)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	if pageHits != 0 {
		t.Errorf("archival pages should not be fetched once minCount is reached, got %d hits", pageHits)
	}
	if len(filings) != 2 {
		t.Errorf("expected the 2 retained recent filings, got %d", len(filings))
	}
}

func TestEnumerateBuildsIndexURL(t *testing.T) {
	var pageHits int
	srv := newSubmissionsServer(t, &pageHits)
	defer srv.Close()

	enumerator := NewEnumerator(newTestClient(srv))
	filings, err := enumerator.Enumerate(context.Background(), "0000012345", 2)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	// The archive path wants the CIK unpadded and the accession number
	// without dashes.
	expected := srv.URL + "/archives/12345/000124000010/index.json"
	if filings[0].IndexURL != expected {
		t.Errorf("IndexURL = %s, want %s", filings[0].IndexURL, expected)
	}
}

func TestEnumerateSubmissionsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	enumerator := NewEnumerator(newTestClient(srv))
	_, err := enumerator.Enumerate(context.Background(), "0000012345", 10)
	if err == nil {
		t.Fatal("expected error when the primary submissions document is unavailable")
	}
}
