package config

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// InitLogger builds the process-wide zap logger. Development mode gives
// console output when GIN_MODE is not release.
func InitLogger() *zap.Logger {
	var logger *zap.Logger
	var err error

	if os.Getenv("GIN_MODE") == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	return logger
}
