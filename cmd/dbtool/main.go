package main

import (
	"context"
	"fmt"
	"os"
	"route-weather-service/internal/adapters/cache"
	"route-weather-service/internal/config"
	"route-weather-service/internal/platform/db"
	"route-weather-service/internal/platform/logger"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool creates the place-name cache schema in DATABASE_URL.
func main() {
	_ = godotenv.Load()

	log, err := logger.NewNamed(config.Get("APP_ENV", "development"), "route-weather-dbtool")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer sqlDB.Close()

	log.Info("initializing place cache schema")
	if err := cache.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal("schema initialization failed", zap.Error(err))
	}
	log.Info("schema ready")
}
