package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-poi-tourism-engine/app/db"
	"github.com/FACorreiaa/go-poi-tourism-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-tourism-engine/config"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/events"
	generativeAI "github.com/FACorreiaa/go-poi-tourism-engine/internal/api/generative_ai"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/narrative"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/poi"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/recommend"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/search"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	RecommendHandler *recommend.HandlerImpl
}

// NewContainer connects to the catalog and wires the recommendation stack.
// metrics.InitAppMetrics must have been called.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, fmt.Errorf("database not ready")
	}

	appMetrics := metrics.Get()

	aiClient, err := generativeAI.NewAIClient(ctx, generativeAI.Options{
		Model:           cfg.LLM.Model,
		EmbeddingModel:  cfg.LLM.EmbeddingModel,
		Temperature:     cfg.LLM.Temperature,
		Timeout:         cfg.LLM.Timeout,
		BreakerFailures: cfg.Search.BreakerFailures,
		BreakerTimeout:  cfg.Search.BreakerTimeout,
	}, logger)
	if err != nil {
		pool.Close()
		logger.Error("Failed to initialize completion client", slog.Any("error", err))
		return nil, err
	}

	poiRepo := poi.NewRepository(pool, logger)
	eventRepo := events.NewRepository(pool, logger)

	searchService := search.NewService(aiClient, poiRepo, search.Config{
		CacheTTL:        cfg.Search.CacheTTL,
		CacheCleanup:    cfg.Search.CacheCleanup,
		BreakerFailures: cfg.Search.BreakerFailures,
		BreakerTimeout:  cfg.Search.BreakerTimeout,
	}, appMetrics, logger)

	recCfg := recommend.ConfigFromApp(cfg)
	generator := narrative.NewGenerator(aiClient, recCfg.Destination, appMetrics, logger, narrative.WithLocation(recCfg.Location))
	pools := recommend.NewPoolBuilder(searchService, poiRepo, eventRepo, recCfg, appMetrics, logger)
	recommendService := recommend.NewServiceImpl(pools, generator, recCfg, appMetrics, logger)
	recommendHandler := recommend.NewHandler(recommendService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		RecommendHandler: recommendHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
