package models

import "gorm.io/gorm"

// Store bundles the report and completion helpers behind one handle so
// the pipeline can take a narrow interface instead of a *gorm.DB.
type Store struct {
	DB *gorm.DB
}

func (s *Store) IsCompleted(ticker string) (bool, error) {
	return IsTickerCompleted(s.DB, ticker)
}

func (s *Store) MarkCompleted(ticker, runID string) error {
	return MarkTickerCompleted(s.DB, ticker, runID)
}

func (s *Store) HasReport(ticker, report string) (bool, error) {
	return HasReport(s.DB, ticker, report)
}

func (s *Store) TryInsertReport(ticker, report string, facts FactSet) (bool, error) {
	return TryInsertReport(s.DB, ticker, report, facts)
}
