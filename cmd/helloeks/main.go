package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"helloeks/internal/app"
	"helloeks/internal/config"
)

func main() {
	logger := log.New()
	logger.SetOutput(os.Stderr)

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.WithError(err).Fatal("Failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.ConfigureLogger(logger)

	if err := app.New(cfg, logger).Run(context.Background()); err != nil {
		logger.WithError(err).Fatal("HTTP server failed")
	}
}
