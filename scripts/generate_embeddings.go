package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	database "github.com/FACorreiaa/go-poi-tourism-engine/app/db"
	appLogger "github.com/FACorreiaa/go-poi-tourism-engine/app/logger"
	"github.com/FACorreiaa/go-poi-tourism-engine/config"
	generativeAI "github.com/FACorreiaa/go-poi-tourism-engine/internal/api/generative_ai"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/poi"
)

var batchSize = flag.Int("batch", 20, "number of POIs fetched per batch")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := appLogger.New(os.Stdout, cfg.Mode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready")
		os.Exit(1)
	}

	aiClient, err := generativeAI.NewAIClient(ctx, generativeAI.Options{
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Timeout:        cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		logger.Error("Failed to create embedding client", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Generating embeddings for POIs...")
	stats, err := poi.BackfillEmbeddings(ctx, poi.NewRepository(pool, logger), aiClient, *batchSize, logger)
	if err != nil {
		logger.Error("Failed to generate POI embeddings",
			slog.Any("error", err),
			slog.Int("processed", stats.Processed),
			slog.Int("failed", stats.Failed))
		os.Exit(1)
	}
	logger.Info("Embedding generation completed!", slog.Int("processed", stats.Processed))
}
