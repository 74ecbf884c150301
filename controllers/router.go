package controllers

import (
	"github.com/gin-gonic/gin"
)

type Router struct {
	HealthController  *HealthController
	ReportsController *ReportsController
}

func (r Router) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", r.HealthController.Status)

	router.GET("/tickers/:ticker/reports", r.ReportsController.GetReports)
	router.GET("/tickers/:ticker/reports/:report", r.ReportsController.GetReport)
}
