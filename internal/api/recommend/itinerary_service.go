package recommend

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

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/narrative"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/validate"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

const dateLayout = "2006-01-02"

// Itinerary composes a day plan for the requested date and duration.
// Collaborator failures shrink the plan; they never fail the request.
func (s *ServiceImpl) Itinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "Itinerary", trace.WithAttributes(
		attribute.String("duration", req.Duration),
		attribute.String("language", req.Language),
		attribute.StringSlice("interests", req.Interests),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Itinerary"))

	if err := validate.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	date := s.today()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, s.cfg.Location)
		if err != nil {
			span.SetStatus(codes.Error, "Invalid date")
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", types.ErrInvalidInput)
		}
		date = parsed
	}

	duration := NormalizeDuration(req.Duration)
	lang := narrative.NormalizeLanguage(req.Language)
	includeMeals := req.IncludeMeals == nil || *req.IncludeMeals
	interests := cleanInterests(req.Interests)
	excluded := ParseExclusions(req.ExcludeIDs)

	pools := s.pools.BuildItineraryPools(ctx, interests, includeMeals, excluded)
	events := s.pools.DayEvents(ctx, date, excluded)

	items := Assign(s.newRand(), AssignInput{
		Slots:        SlotsFor(duration),
		Buckets:      Classify(pools.Candidates),
		All:          pools.Candidates,
		Restaurants:  pools.Restaurants,
		Events:       events,
		IncludeMeals: includeMeals,
		Tolerance:    s.cfg.EventSlotTolerance,
		Location:     s.cfg.Location,
	})

	eventsIncluded := 0
	for _, it := range items {
		if it.Type == types.ItemEvent {
			eventsIncluded++
		}
	}

	resp := &types.ItineraryResponse{
		Date:           date.Format(dateLayout),
		Duration:       duration,
		Description:    s.narrator.ItineraryIntro(ctx, lang, duration, items),
		Itinerary:      items,
		TotalStops:     len(items),
		EventsIncluded: eventsIncluded,
		HasEvents:      eventsIncluded > 0,
	}

	s.metrics.ItineraryGenerated(ctx, duration)
	l.InfoContext(ctx, "Itinerary composed",
		slog.String("date", resp.Date),
		slog.String("duration", duration),
		slog.Int("stops", resp.TotalStops),
		slog.Int("events", eventsIncluded),
		slog.Int("candidates", len(pools.Candidates)),
	)
	span.SetAttributes(
		attribute.Int("itinerary.stops", resp.TotalStops),
		attribute.Int("itinerary.events", eventsIncluded),
	)
	span.SetStatus(codes.Ok, "Itinerary composed")
	return resp, nil
}

// cleanInterests trims and drops blank or repeated interests, keeping order.
func cleanInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))
	for _, in := range interests {
		in = strings.TrimSpace(in)
		key := strings.ToLower(in)
		if in == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, in)
	}
	return out
}
