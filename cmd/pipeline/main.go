package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"filingfacts/core"
	"filingfacts/edgar"
	"filingfacts/internal"
	"filingfacts/models"
	"filingfacts/pipeline"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	logger, err := internal.NewLogger()
	if err != nil {
		panic(err)
	}

	db, err := core.InitDB()
	if err != nil {
		logger.Fatalw("cannot establish storage connection", "err", err)
	}

	err = db.AutoMigrate(
		&models.FactReport{},
		&models.TickerRun{},
	)
	if err != nil {
		logger.Fatalw("migration failed", "err", err)
	}

	tickers, err := loadTickers()
	if err != nil {
		logger.Fatalw("cannot load tickers", "err", err)
	}
	if len(tickers) == 0 {
		logger.Fatal("no tickers to process; pass tickers as arguments or set TICKER_CSV_PATH")
	}

	// Abortable between tickers; already stored reports survive an
	// interrupt and the in-flight ticker is reprocessed next run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := &models.Store{DB: db}
	ingestor := pipeline.NewIngestor(store, edgar.NewClient(), logger)

	result, err := ingestor.Run(ctx, tickers)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorw("run aborted", "err", err)
	}

	if err := writeTickerList("no_reports.csv", result.NoFilings); err != nil {
		logger.Errorw("cannot write no_reports.csv", "err", err)
	}
	if err := writeTickerList("few_reports.csv", result.FewFilings); err != nil {
		logger.Errorw("cannot write few_reports.csv", "err", err)
	}
}

// loadTickers takes tickers from the command line, or from the CSV file
// named by TICKER_CSV_PATH (a file with a Ticker column).
func loadTickers() ([]string, error) {
	if len(os.Args) > 1 {
		return os.Args[1:], nil
	}

	csvPath := os.Getenv("TICKER_CSV_PATH")
	if csvPath == "" {
		return nil, nil
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	column := -1
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "Ticker") {
			column = i
			break
		}
	}
	if column == -1 {
		return nil, fmt.Errorf("no Ticker column in %s", csvPath)
	}

	seen := make(map[string]bool)
	var tickers []string
	for _, row := range rows[1:] {
		if column >= len(row) {
			continue
		}
		ticker := strings.TrimSpace(row[column])
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true
		tickers = append(tickers, ticker)
	}

	return tickers, nil
}

func writeTickerList(path string, tickers []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Ticker"}); err != nil {
		return err
	}
	for _, ticker := range tickers {
		if err := w.Write([]string{ticker}); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}
