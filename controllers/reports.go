package controllers

import (
	"net/http"
	"strings"

	"filingfacts/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportsController struct {
	DB *gorm.DB
}

type reportSummary struct {
	Ticker string `json:"ticker"`
	Report string `json:"report"`
	Facts  int    `json:"facts"`
}

type reportDetail struct {
	Ticker string         `json:"ticker"`
	Report string         `json:"report"`
	Facts  models.FactSet `json:"facts"`
}

// GetReports lists the stored reports for a ticker.
func (rc ReportsController) GetReports(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	reports, err := models.GetReports(rc.DB, ticker)
	if err != nil {
		RespondInternalErr(c)
		return
	}
	if len(reports) == 0 {
		RespondNotFoundErr(c, ErrUnknownTicker)
		return
	}

	summaries := make([]reportSummary, 0, len(reports))
	for i := range reports {
		facts, err := reports[i].FactSet()
		if err != nil {
			RespondInternalErr(c)
			return
		}
		summaries = append(summaries, reportSummary{
			Ticker: reports[i].Ticker,
			Report: reports[i].Report,
			Facts:  len(facts),
		})
	}

	RespondOK(c, summaries)
}

// GetReport returns one report's facts, as JSON or as readable text
// when format=text is requested.
func (rc ReportsController) GetReport(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))
	report := c.Param("report")

	factReport, err := models.GetReport(rc.DB, ticker, report)
	if err != nil {
		RespondInternalErr(c)
		return
	}
	if factReport == nil {
		RespondNotFoundErr(c, ErrUnknownReport)
		return
	}

	facts, err := factReport.FactSet()
	if err != nil {
		RespondInternalErr(c)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, facts.Text(factReport.Report))
		return
	}

	RespondOK(c, reportDetail{
		Ticker: factReport.Ticker,
		Report: factReport.Report,
		Facts:  facts,
	})
}
