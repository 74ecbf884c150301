package main

import (
	"os"

	"filingfacts/controllers"
	"filingfacts/core"
	"filingfacts/internal"
	"filingfacts/models"

	"github.com/gin-gonic/gin"
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

	router := controllers.Router{
		HealthController:  &controllers.HealthController{DB: db},
		ReportsController: &controllers.ReportsController{DB: db},
	}

	engine := gin.Default()
	router.RegisterRoutes(engine)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := engine.Run(":" + port); err != nil {
		logger.Fatalw("server stopped", "err", err)
	}
}
