package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront/app"
	"storefront/config"
	"storefront/db"
	"storefront/logging"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	var envErr error
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envErr = godotenv.Overload(".env")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.IsProduction() {
		if envErr != nil {
			logger.Warn(".env file not loaded, using system environment variables", zap.Error(envErr))
		} else {
			logger.Info("loaded environment variables from .env")
		}
	}

	mux := http.NewServeMux()
	catalogService, err := app.Initialize(context.Background(), cfg, mux, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer catalogService.Close()
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	logger.Info("server starting",
		zap.String("addr", addr),
		zap.String("products_source", cfg.ProductsSource))

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
