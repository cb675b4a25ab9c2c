package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-tourism-engine/app/resilience"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

var _ Client = (*ServiceImpl)(nil)

// Options narrows a semantic search.
type Options struct {
	Limit      int
	Categories []string
}

type Result struct {
	Results []types.POI
}

// Client is the semantic nearest-neighbour lookup over the POI catalog.
// It may return fewer than Options.Limit results.
type Client interface {
	Search(ctx context.Context, query string, opts Options) (*Result, error)
}

type Embedder interface {
	GenerateQueryEmbedding(ctx context.Context, query string) ([]float32, error)
}

type SimilarityFinder interface {
	FindSimilarPOIs(ctx context.Context, queryEmbedding []float32, categories []string, limit int) ([]types.POI, error)
}

type Config struct {
	CacheTTL        time.Duration
	CacheCleanup    time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

type ServiceImpl struct {
	logger   *slog.Logger
	embedder Embedder
	finder   SimilarityFinder
	cache    *cache.Cache
	breaker  *gobreaker.CircuitBreaker[[]types.POI]
	metrics  *metrics.AppMetrics
}

func NewService(embedder Embedder, finder SimilarityFinder, cfg Config, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.CacheCleanup <= 0 {
		cfg.CacheCleanup = 2 * cfg.CacheTTL
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	return &ServiceImpl{
		logger:   logger,
		embedder: embedder,
		finder:   finder,
		cache:    cache.New(cfg.CacheTTL, cfg.CacheCleanup),
		breaker:  resilience.NewBreaker[[]types.POI]("semantic-search", cfg.BreakerFailures, cfg.BreakerTimeout, logger),
		metrics:  m,
	}
}

func (s *ServiceImpl) Search(ctx context.Context, query string, opts Options) (*Result, error) {
	ctx, span := otel.Tracer("SearchService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("query", query),
		attribute.Int("limit", opts.Limit),
		attribute.StringSlice("categories", opts.Categories),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Search"), slog.String("query", query))

	query = strings.TrimSpace(query)
	if query == "" || opts.Limit <= 0 {
		span.SetStatus(codes.Ok, "Nothing to search")
		return &Result{}, nil
	}

	key := cacheKey(query, opts)
	if cached, found := s.cache.Get(key); found {
		if pois, ok := cached.([]types.POI); ok {
			l.DebugContext(ctx, "Search served from cache", slog.Int("count", len(pois)))
			s.metrics.SearchCacheHit(ctx)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			span.SetStatus(codes.Ok, "Cache hit")
			return &Result{Results: pois}, nil
		}
	}

	pois, err := s.breaker.Execute(func() ([]types.POI, error) {
		embedding, err := s.embedder.GenerateQueryEmbedding(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		return s.finder.FindSimilarPOIs(ctx, embedding, opts.Categories, opts.Limit)
	})
	if err != nil {
		l.WarnContext(ctx, "Semantic search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search failed")
		return nil, fmt.Errorf("semantic search %q: %w", query, err)
	}

	s.cache.Set(key, pois, cache.DefaultExpiration)
	l.DebugContext(ctx, "Search completed", slog.Int("count", len(pois)))
	span.SetAttributes(attribute.Int("results.count", len(pois)))
	span.SetStatus(codes.Ok, "Search completed")
	return &Result{Results: pois}, nil
}

func cacheKey(query string, opts Options) string {
	return fmt.Sprintf("%s|%d|%s", strings.ToLower(query), opts.Limit, strings.Join(opts.Categories, ","))
}
