package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/narrative"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/validate"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

// Tip picks one POI or upcoming event for today's rotating interest. Running
// out of candidates is reported through Exhausted, not as an error.
func (s *ServiceImpl) Tip(ctx context.Context, req types.TipRequest) (*types.TipResponse, error) {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "Tip", trace.WithAttributes(
		attribute.String("language", req.Language),
		attribute.StringSlice("interests", req.Interests),
		attribute.Int("exclude.count", len(req.ExcludeIDs)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Tip"))

	if err := validate.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	lang := narrative.NormalizeLanguage(req.Language)
	today := s.today()
	interest := TodaysInterest(today, EffectiveInterests(req.Interests, s.cfg.AllowedCategories))
	excluded := ParseExclusions(req.ExcludeIDs)
	span.SetAttributes(attribute.String("interest", interest))

	pois := s.pools.TipPOIs(ctx, interest, excluded)
	events := s.pools.UpcomingEvents(ctx, today, excluded)

	resp := &types.TipResponse{
		Date:  today.Format(dateLayout),
		TipID: uuid.NewString(),
	}

	chosen, ok := SelectTip(s.newRand(), pois, events, s.cfg.POIWeight)
	if !ok {
		resp.Title = narrative.NoMoreTipsTitle(lang)
		resp.TipDescription = narrative.NoMoreTips(lang)
		resp.Category = interest
		resp.Exhausted = true

		s.metrics.TipExhausted(ctx)
		l.InfoContext(ctx, "No tip candidates left", slog.String("interest", interest))
		span.SetStatus(codes.Ok, "Tips exhausted")
		return resp, nil
	}

	resp.Title = narrative.TipTitle(lang)
	resp.ItemType = string(chosen.Type)
	resp.Item = &chosen
	switch chosen.Type {
	case types.CandidatePOI:
		resp.POI = chosen.POI
		resp.Category = chosen.POI.Category
	case types.CandidateEvent:
		resp.Event = chosen.Event
		resp.Category = fmt.Sprintf("%s %s", narrative.EventLabel(lang), narrative.EventDate(chosen.Event, s.cfg.Location))
	}
	resp.TipDescription = s.narrator.TipDescription(ctx, lang, chosen)

	s.metrics.TipServed(ctx, resp.ItemType)
	l.InfoContext(ctx, "Tip selected",
		slog.String("interest", interest),
		slog.String("candidate", chosen.Key()),
		slog.Int("pois", len(pois)),
		slog.Int("events", len(events)),
	)
	span.SetAttributes(attribute.String("tip.candidate", chosen.Key()))
	span.SetStatus(codes.Ok, "Tip selected")
	return resp, nil
}
