package internal

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger returns a new sugared logger: human-readable output in
// development, JSON in production.
func NewLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	switch os.Getenv("ENVIRONMENT") {
	case "development":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
