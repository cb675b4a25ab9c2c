package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-poi-tourism-engine/internal/api/generative_ai"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

// Completer is the chat completion collaborator.
type Completer interface {
	GenerateChatCompletion(ctx context.Context, messages []generativeAI.Message) (string, error)
}

// Generator writes itinerary introductions and tip descriptions. When the
// completer fails or returns nothing usable, a localized template naming the
// same items is returned instead.
type Generator struct {
	completer   Completer
	destination string
	location    *time.Location
	logger      *slog.Logger
	metrics     *metrics.AppMetrics
}

type Option func(*Generator)

// WithLocation sets the timezone event dates are shown in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		if loc != nil {
			g.location = loc
		}
	}
}

func NewGenerator(completer Completer, destination string, m *metrics.AppMetrics, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		completer:   completer,
		destination: destination,
		location:    time.UTC,
		logger:      logger,
		metrics:     m,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ItineraryIntro returns the cleaned introduction for a composed itinerary.
func (g *Generator) ItineraryIntro(ctx context.Context, lang, duration string, items []types.ItineraryItem) string {
	ctx, span := otel.Tracer("NarrativeGenerator").Start(ctx, "ItineraryIntro", trace.WithAttributes(
		attribute.String("language", lang),
		attribute.String("duration", duration),
		attribute.Int("items.count", len(items)),
	))
	defer span.End()

	l := localeFor(lang)
	names := ItineraryNames(items)
	if len(names) == 0 {
		span.SetStatus(codes.Ok, "Empty itinerary")
		return fmt.Sprintf(l.emptyItinerary, g.destination)
	}

	fallback := fmt.Sprintf(l.itineraryFallback, DurationLabel(lang, duration), g.destination, joinNames(lang, names))
	return g.complete(ctx, span, "itinerary", lang, BuildItineraryPrompt(lang, g.destination, duration, items), fallback)
}

// TipDescription returns the cleaned description of a single tip.
func (g *Generator) TipDescription(ctx context.Context, lang string, c types.Candidate) string {
	ctx, span := otel.Tracer("NarrativeGenerator").Start(ctx, "TipDescription", trace.WithAttributes(
		attribute.String("language", lang),
		attribute.String("candidate", c.Key()),
	))
	defer span.End()

	fallback := fmt.Sprintf(localeFor(lang).tipFallback, c.Name(), g.destination)
	if desc := firstSentence(candidateDescription(lang, c)); desc != "" {
		fallback += " " + desc
	}
	return g.complete(ctx, span, "tip", lang, BuildTipPrompt(lang, g.destination, g.location, c), fallback)
}

func (g *Generator) complete(ctx context.Context, span trace.Span, kind, lang string, messages []generativeAI.Message, fallback string) string {
	l := g.logger.With(slog.String("method", "complete"), slog.String("kind", kind), slog.String("language", lang))
	start := time.Now()

	text, err := g.completer.GenerateChatCompletion(ctx, messages)
	if err == nil {
		text = truncateWords(Clean(text, lang), WordCap(lang))
	}
	usedFallback := err != nil || text == ""
	g.metrics.NarrativeObserved(ctx, kind, time.Since(start).Seconds(), usedFallback)

	if err != nil {
		l.WarnContext(ctx, "Completion failed, using template narrative", slog.Any("error", err))
		g.metrics.CollaboratorFailed(ctx, "completion")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Completion failed")
		return fallback
	}
	if text == "" {
		l.WarnContext(ctx, "Completion was empty after cleaning, using template narrative")
		span.SetStatus(codes.Ok, "Empty completion")
		return fallback
	}

	span.SetAttributes(attribute.Int("narrative.length", len(text)))
	span.SetStatus(codes.Ok, "Narrative generated")
	return text
}

func firstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i+1]
	}
	return text
}
