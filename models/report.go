package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FactReport is one ingested report: the flat fact set of a single 10-Q
// or 10-K, keyed by ticker and derived reporting period. The composite
// unique index is the correctness backstop for idempotence -- even if
// two writers race past the existence check, only one row lands.
type FactReport struct {
	gorm.Model

	Ticker string `gorm:"uniqueIndex:idx_fact_reports_ticker_report;not null" json:"ticker"`
	Report string `gorm:"uniqueIndex:idx_fact_reports_ticker_report;not null" json:"report"`
	Facts  []byte `gorm:"type:jsonb;not null" json:"-"`
}

// FactSet decodes the stored facts payload.
func (r *FactReport) FactSet() (FactSet, error) {
	var facts FactSet
	if err := json.Unmarshal(r.Facts, &facts); err != nil {
		return nil, err
	}

	return facts, nil
}

// QuarterLabel approximates the filer's fiscal quarter from the filing
// date. Reports land roughly one quarter after the period they cover,
// so a January-March filing is labeled as the previous year's Q4.
func QuarterLabel(filed time.Time) string {
	switch filed.Month() {
	case time.April, time.May, time.June:
		return fmt.Sprintf("%dQ1", filed.Year())
	case time.July, time.August, time.September:
		return fmt.Sprintf("%dQ2", filed.Year())
	case time.October, time.November, time.December:
		return fmt.Sprintf("%dQ3", filed.Year())
	default:
		return fmt.Sprintf("%dQ4", filed.Year()-1)
	}
}

// BuildReportKey derives the per-ticker report key. Annual filings get
// a marker suffix so a 10-K never collides with a 10-Q filed in the
// same quarter.
func BuildReportKey(ticker, form string, filed time.Time) string {
	key := fmt.Sprintf("%s_%s", ticker, QuarterLabel(filed))
	if form == "10-K" {
		key += "&Annual"
	}

	return key
}

// HasReport reports whether a report key is already stored for the
// ticker.
func HasReport(db *gorm.DB, ticker, report string) (bool, error) {
	var factReport FactReport
	err := db.Where("ticker = ? AND report = ?", ticker, report).First(&factReport).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// TryInsertReport inserts a report unless its key already exists.
// Returns true only when a new row was written; a conflicting key is
// left untouched.
func TryInsertReport(db *gorm.DB, ticker, report string, facts FactSet) (bool, error) {
	payload, err := json.Marshal(facts)
	if err != nil {
		return false, err
	}

	factReport := FactReport{
		Ticker: ticker,
		Report: report,
		Facts:  payload,
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&factReport)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// GetReports returns all stored reports for a ticker, newest first.
func GetReports(db *gorm.DB, ticker string) ([]FactReport, error) {
	var reports []FactReport
	err := db.Where("ticker = ?", ticker).Order("report DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// GetReport returns one stored report, or nil when it does not exist.
func GetReport(db *gorm.DB, ticker, report string) (*FactReport, error) {
	var factReport FactReport
	err := db.Where("ticker = ? AND report = ?", ticker, report).First(&factReport).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &factReport, nil
}
