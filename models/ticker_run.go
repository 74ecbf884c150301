package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TickerRun marks a ticker's ingestion as complete. The row is written
// only after the ticker's full filing list has been drained, so a crash
// mid-ticker leaves the ticker eligible for reprocessing; already
// inserted reports are simply skipped on the next pass. Record-set
// existence alone is never used as a completion signal.
type TickerRun struct {
	gorm.Model

	Ticker string `gorm:"uniqueIndex;not null"`
	// RunID identifies the run that completed the ticker, for
	// provenance when debugging partial runs.
	RunID       string `gorm:"not null"`
	CompletedAt time.Time
}

// IsTickerCompleted reports whether the ticker was fully ingested by a
// previous run.
func IsTickerCompleted(db *gorm.DB, ticker string) (bool, error) {
	var run TickerRun
	err := db.Where("ticker = ?", ticker).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// MarkTickerCompleted records that a run drained the ticker's filing
// list. Re-marking an already completed ticker is a no-op.
func MarkTickerCompleted(db *gorm.DB, ticker, runID string) error {
	run := TickerRun{
		Ticker:      ticker,
		RunID:       runID,
		CompletedAt: time.Now(),
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&run).Error
}
