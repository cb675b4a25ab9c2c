package recommend

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ItineraryHandler(w http.ResponseWriter, r *http.Request)
	TipHandler(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:  logger,
		service: service,
	}
}

func (h *HandlerImpl) ItineraryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendHandler").Start(r.Context(), "ItineraryHandler", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/recommendations/itinerary"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "ItineraryHandler"))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Bad request")
		api.WriteError(w, r, l, err)
		return
	}

	resp, err := h.service.Itinerary(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary failed")
		api.WriteError(w, r, l, err)
		return
	}

	span.SetAttributes(attribute.Int("itinerary.stops", resp.TotalStops))
	span.SetStatus(codes.Ok, "Itinerary returned")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func (h *HandlerImpl) TipHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendHandler").Start(r.Context(), "TipHandler", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/recommendations/tip"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "TipHandler"))

	var req types.TipRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Bad request")
		api.WriteError(w, r, l, err)
		return
	}

	resp, err := h.service.Tip(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Tip failed")
		api.WriteError(w, r, l, err)
		return
	}

	span.SetAttributes(attribute.Bool("tip.exhausted", resp.Exhausted))
	span.SetStatus(codes.Ok, "Tip returned")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
