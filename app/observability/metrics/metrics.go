package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItinerariesGeneratedTotal metric.Int64Counter
	TipsServedTotal           metric.Int64Counter
	TipsExhaustedTotal        metric.Int64Counter
	CollaboratorFailuresTotal metric.Int64Counter
	NarrativeDurationSeconds  metric.Float64Histogram
	NarrativeFallbacksTotal   metric.Int64Counter
	SearchCacheHitsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TourismEngine")
		var err error
		m := &AppMetrics{}

		m.ItinerariesGeneratedTotal, err = meter.Int64Counter(
			"itineraries_generated_total",
			metric.WithDescription("Total number of itineraries composed"),
			metric.WithUnit("{itinerary}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itineraries_generated_total: %v", err)
		}

		m.TipsServedTotal, err = meter.Int64Counter(
			"tips_served_total",
			metric.WithDescription("Total number of tips served, by item type"),
			metric.WithUnit("{tip}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tips_served_total: %v", err)
		}

		m.TipsExhaustedTotal, err = meter.Int64Counter(
			"tips_exhausted_total",
			metric.WithDescription("Total number of tip requests with no remaining candidates"),
			metric.WithUnit("{tip}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tips_exhausted_total: %v", err)
		}

		m.CollaboratorFailuresTotal, err = meter.Int64Counter(
			"collaborator_failures_total",
			metric.WithDescription("Failures of search, completion and catalog calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create collaborator_failures_total: %v", err)
		}

		m.NarrativeDurationSeconds, err = meter.Float64Histogram(
			"narrative_duration_seconds",
			metric.WithDescription("Duration of narrative generation in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create narrative_duration_seconds: %v", err)
		}

		m.NarrativeFallbacksTotal, err = meter.Int64Counter(
			"narrative_fallbacks_total",
			metric.WithDescription("Narratives served from the localized template"),
			metric.WithUnit("{narrative}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create narrative_fallbacks_total: %v", err)
		}

		m.SearchCacheHitsTotal, err = meter.Int64Counter(
			"search_cache_hits_total",
			metric.WithDescription("Semantic search results served from cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_cache_hits_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// The helpers below tolerate a nil receiver so services can run without instruments in tests.

func (m *AppMetrics) ItineraryGenerated(ctx context.Context, duration string) {
	if m == nil {
		return
	}
	m.ItinerariesGeneratedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("duration", duration)))
}

func (m *AppMetrics) TipServed(ctx context.Context, itemType string) {
	if m == nil {
		return
	}
	m.TipsServedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("item_type", itemType)))
}

func (m *AppMetrics) TipExhausted(ctx context.Context) {
	if m == nil {
		return
	}
	m.TipsExhaustedTotal.Add(ctx, 1)
}

func (m *AppMetrics) CollaboratorFailed(ctx context.Context, collaborator string) {
	if m == nil {
		return
	}
	m.CollaboratorFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("collaborator", collaborator)))
}

func (m *AppMetrics) NarrativeObserved(ctx context.Context, kind string, seconds float64, fallback bool) {
	if m == nil {
		return
	}
	m.NarrativeDurationSeconds.Record(ctx, seconds, metric.WithAttributes(attribute.String("kind", kind)))
	if fallback {
		m.NarrativeFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

func (m *AppMetrics) SearchCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.SearchCacheHitsTotal.Add(ctx, 1)
}
