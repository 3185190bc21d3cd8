package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/teatrade/auction-ingest/internal/cleaning"
	"github.com/teatrade/auction-ingest/internal/config"
	"github.com/teatrade/auction-ingest/internal/database"
	"github.com/teatrade/auction-ingest/internal/ingestion"
	"github.com/teatrade/auction-ingest/internal/metadata"
	"github.com/teatrade/auction-ingest/internal/parser"
)

func setup(ctx context.Context, logger *zap.Logger) (string, *ingestion.Service, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return "", nil, nil, err
	}

	dataDir := cfg.DataDir
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	mapping, err := config.LoadMapping(cfg.MappingFile)
	if err != nil {
		return "", nil, nil, err
	}

	dbpool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return "", nil, nil, err
	}

	dbManager := database.NewPostgresDBManager(dbpool, logger)

	// A broken store means nothing can run; abort before touching files.
	if err := dbManager.InitSchema(ctx); err != nil {
		dbpool.Close()
		return "", nil, nil, err
	}

	noise := mapping.NoiseSet()
	dates := cleaning.NewDateParser(noise, logger)
	resolver := metadata.NewResolver(dates, noise, logger)
	fileProcessor := ingestion.NewFileProcessor(logger)
	detector := parser.DetectorParams{
		MaxScanRows: cfg.HeaderScanRows,
		MinMatches:  cfg.MinHeaderHits,
	}

	service := ingestion.NewService(
		dbManager,
		fileProcessor,
		resolver,
		mapping,
		detector,
		cfg.SourceLocation,
		logger,
	)

	return dataDir, service, func() { dbpool.Close() }, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	baseLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer baseLogger.Sync()

	logger := baseLogger.With(zap.String("run_id", uuid.NewString()))

	ctx := context.Background()
	startTime := time.Now()

	dataDir, service, cleanup, err := setup(ctx, logger)
	if err != nil {
		logger.Fatal("Setup failed", zap.Error(err))
	}
	defer cleanup()

	if err := service.Execute(ctx, dataDir); err != nil {
		logger.Fatal("Ingestion run failed", zap.Error(err))
	}

	logger.Info("Ingestion run complete", zap.Duration("elapsed", time.Since(startTime)))
}
