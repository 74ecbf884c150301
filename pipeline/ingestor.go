// Package pipeline drives filing discovery and idempotent fact
// ingestion for a set of tickers.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"filingfacts/edgar"
	"filingfacts/models"
	"filingfacts/xbrl"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tickers with fewer retained filings than this end up in the
// few-filings list.
const fewFilingsThreshold = 10

// Store is the persistence surface the ingestor needs. *models.Store
// implements it; tests substitute an in-memory fake.
type Store interface {
	IsCompleted(ticker string) (bool, error)
	MarkCompleted(ticker, runID string) error
	HasReport(ticker, report string) (bool, error)
	TryInsertReport(ticker, report string, facts models.FactSet) (bool, error)
}

// Result is the per-run outcome summary. NoFilings holds tickers with
// no resolvable identifier or zero retained filings; FewFilings holds
// tickers with a thin filing history.
type Result struct {
	NoFilings  []string
	FewFilings []string
}

// Ingestor processes tickers one at a time in input order. Failures are
// isolated at the smallest unit that can be skipped: a bad document
// candidate falls through to the next candidate, a bad filing to the
// next filing, a bad ticker to the next ticker.
type Ingestor struct {
	store      Store
	client     *edgar.Client
	resolver   *edgar.Resolver
	enumerator *edgar.Enumerator
	selector   *edgar.Selector
	logger     *zap.SugaredLogger

	// MinFilings is the enumeration target before archival pages stop
	// being walked.
	MinFilings int
	// TickerPause is the extra pause between tickers, on top of the
	// per-call rate limit.
	TickerPause time.Duration
}

func NewIngestor(store Store, client *edgar.Client, logger *zap.SugaredLogger) *Ingestor {
	return &Ingestor{
		store:       store,
		client:      client,
		resolver:    edgar.NewResolver(client),
		enumerator:  edgar.NewEnumerator(client),
		selector:    edgar.NewSelector(client),
		logger:      logger,
		MinFilings:  edgar.DefaultMinFilings,
		TickerPause: time.Second,
	}
}

// Run ingests every ticker and always returns a Result, even when some
// tickers fail. The returned error is non-nil only for run-level
// conditions: a registry snapshot that cannot be loaded, or
// cancellation.
func (in *Ingestor) Run(ctx context.Context, tickers []string) (Result, error) {
	runID := uuid.New().String()
	logger := in.logger.With("run_id", runID)

	var result Result
	if err := in.resolver.Load(ctx); err != nil {
		return result, fmt.Errorf("load ticker registry: %w", err)
	}

	logger.Infow("starting ingestion run", "tickers", len(tickers))
	for i, ticker := range tickers {
		if i > 0 && in.TickerPause > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(in.TickerPause):
			}
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := in.processTicker(ctx, logger.With("ticker", ticker), runID, ticker, &result); err != nil {
			// processTicker only propagates cancellation; everything
			// else is logged and skipped inside.
			return result, err
		}
	}
	logger.Infow("ingestion run finished", "no_filings", len(result.NoFilings), "few_filings", len(result.FewFilings))

	return result, nil
}

func (in *Ingestor) processTicker(ctx context.Context, logger *zap.SugaredLogger, runID, ticker string, result *Result) error {
	completed, err := in.store.IsCompleted(ticker)
	if err != nil {
		logger.Errorw("completion lookup failed", "err", err)
		return nil
	}
	if completed {
		logger.Info("already ingested by a previous run, skipping")
		return nil
	}

	cik, err := in.resolver.Resolve(ticker)
	if err != nil {
		logger.Infow("no registry identifier", "err", err)
		result.NoFilings = append(result.NoFilings, ticker)
		return nil
	}

	filings, err := in.enumerator.Enumerate(ctx, cik, in.MinFilings)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Errorw("enumeration failed", "cik", cik, "err", err)
		result.NoFilings = append(result.NoFilings, ticker)
		return nil
	}
	if len(filings) == 0 {
		logger.Info("no quarterly or annual filings")
		result.NoFilings = append(result.NoFilings, ticker)
		// Trivially drained; don't re-enumerate on the next run.
		in.markCompleted(logger, ticker, runID)
		return nil
	}
	if len(filings) < fewFilingsThreshold {
		logger.Infow("thin filing history", "filings", len(filings))
		result.FewFilings = append(result.FewFilings, ticker)
	}

	for _, filing := range filings {
		if err := ctx.Err(); err != nil {
			// Leave the ticker incomplete so the next run reprocesses
			// it; reports inserted so far stay put.
			return err
		}

		if err := in.ingestFiling(ctx, logger, ticker, cik, filing); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warnw("filing left unrepresented", "accession", filing.AccessionNumber, "err", err)
		}
	}

	in.markCompleted(logger, ticker, runID)
	return nil
}

// ingestFiling stores at most one report for the filing. It tries each
// candidate document until one yields facts; candidates that fail to
// fetch, fail to parse, or parse empty just advance to the next one.
func (in *Ingestor) ingestFiling(ctx context.Context, logger *zap.SugaredLogger, ticker, cik string, filing edgar.Filing) error {
	report := models.BuildReportKey(ticker, filing.Form, filing.FilingDate)

	exists, err := in.store.HasReport(ticker, report)
	if err != nil {
		return err
	}
	if exists {
		logger.Infow("report already stored", "report", report)
		return nil
	}

	candidates, err := in.selector.SelectDocuments(ctx, filing)
	if err != nil {
		return err
	}

	for _, name := range candidates {
		body, status, err := in.client.Get(ctx, in.client.DocumentURL(cik, filing, name))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Infow("document fetch failed", "document", name, "err", err)
			continue
		}
		if status != http.StatusOK {
			logger.Infow("document fetch failed", "document", name, "status", status)
			continue
		}

		facts, err := xbrl.Extract(body)
		if err != nil {
			logger.Infow("document unusable", "document", name, "err", err)
			continue
		}

		inserted, err := in.store.TryInsertReport(ticker, report, facts)
		if err != nil {
			return err
		}
		if inserted {
			logger.Infow("report stored", "report", report, "document", name, "facts", len(facts))
		} else {
			logger.Infow("report landed concurrently, keeping existing row", "report", report)
		}
		return nil
	}

	return fmt.Errorf("no usable fact document for %s", report)
}

func (in *Ingestor) markCompleted(logger *zap.SugaredLogger, ticker, runID string) {
	if err := in.store.MarkCompleted(ticker, runID); err != nil {
		logger.Errorw("failed to mark ticker completed", "err", err)
	}
}
