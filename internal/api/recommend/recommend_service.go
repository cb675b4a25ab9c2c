package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/FACorreiaa/go-poi-tourism-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service composes itineraries and tips of the day.
type Service interface {
	Itinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
	Tip(ctx context.Context, req types.TipRequest) (*types.TipResponse, error)
}

// Narrator writes the natural-language parts of a result.
type Narrator interface {
	ItineraryIntro(ctx context.Context, lang, duration string, items []types.ItineraryItem) string
	TipDescription(ctx context.Context, lang string, c types.Candidate) string
}

type ServiceImpl struct {
	pools    *PoolBuilder
	narrator Narrator
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.AppMetrics
	newRand  RandSource
	now      func() time.Time
}

// Option customises a ServiceImpl.
type Option func(*ServiceImpl)

// WithRandSource replaces the per-request time-seeded generator.
func WithRandSource(src RandSource) Option {
	return func(s *ServiceImpl) { s.newRand = src }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceImpl) { s.now = now }
}

func NewServiceImpl(pools *PoolBuilder, narrator Narrator, cfg Config, m *metrics.AppMetrics, logger *slog.Logger, opts ...Option) *ServiceImpl {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	s := &ServiceImpl{
		pools:    pools,
		narrator: narrator,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		newRand:  timeSeededRand,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) today() time.Time {
	return s.now().In(s.cfg.Location)
}
