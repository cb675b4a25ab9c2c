package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-poi-tourism-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/events"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/poi"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/search"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

const maxConcurrentSearches = 4

// Exclusions is the set of candidate keys a caller has already shown.
type Exclusions map[string]struct{}

// ParseExclusions normalises caller ids. "poi-42" and "event-7" are kept as
// is; a bare number is taken as a POI id.
func ParseExclusions(ids []string) Exclusions {
	ex := make(Exclusions, len(ids))
	for _, raw := range ids {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" {
			continue
		}
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			id = fmt.Sprintf("poi-%d", n)
		}
		ex[id] = struct{}{}
	}
	return ex
}

func (e Exclusions) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// PoolBuilder gathers candidates from the search service and the catalog.
type PoolBuilder struct {
	search  search.Client
	pois    poi.Repository
	events  events.Repository
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewPoolBuilder(searchClient search.Client, poiRepo poi.Repository, eventRepo events.Repository, cfg Config, m *metrics.AppMetrics, logger *slog.Logger) *PoolBuilder {
	return &PoolBuilder{
		search:  searchClient,
		pois:    poiRepo,
		events:  eventRepo,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// ItineraryPools is the result of the itinerary-side searches.
type ItineraryPools struct {
	Candidates  []*types.POI
	Restaurants []*types.POI
}

type searchQuery struct {
	query string
	limit int
}

// BuildItineraryPools runs one search per interest, the general search and,
// when meals are wanted, the restaurant search. Searches run concurrently but
// results are merged in query order so first-occurrence-wins deduplication is
// stable. A failed search contributes nothing.
func (b *PoolBuilder) BuildItineraryPools(ctx context.Context, interests []string, withMeals bool, excluded Exclusions) ItineraryPools {
	ctx, span := otel.Tracer("PoolBuilder").Start(ctx, "BuildItineraryPools", trace.WithAttributes(
		attribute.StringSlice("interests", interests),
		attribute.Bool("meals", withMeals),
	))
	defer span.End()

	queries := make([]searchQuery, 0, len(interests)+2)
	for _, interest := range interests {
		queries = append(queries, searchQuery{
			query: fmt.Sprintf("%s attractions %s", interest, b.cfg.Destination),
			limit: b.cfg.InterestSearchCap,
		})
	}
	queries = append(queries, searchQuery{
		query: fmt.Sprintf("best things to do in %s", b.cfg.Destination),
		limit: b.cfg.GeneralSearchCap,
	})
	restaurantIdx := -1
	if withMeals {
		restaurantIdx = len(queries)
		queries = append(queries, searchQuery{
			query: fmt.Sprintf("best rated restaurants in %s", b.cfg.Destination),
			limit: b.cfg.RestaurantCap,
		})
	}

	results := b.runSearches(ctx, queries)

	general := results
	var restaurantResults []types.POI
	if restaurantIdx >= 0 {
		general = results[:restaurantIdx]
		restaurantResults = results[restaurantIdx]
	}

	pools := ItineraryPools{Candidates: MergeCandidates(general, excluded)}
	if withMeals {
		pools.Restaurants = RestaurantPool(pools.Candidates, restaurantResults, excluded)
	}

	span.SetAttributes(
		attribute.Int("candidates.count", len(pools.Candidates)),
		attribute.Int("restaurants.count", len(pools.Restaurants)),
	)
	span.SetStatus(codes.Ok, "Pools built")
	return pools
}

func (b *PoolBuilder) runSearches(ctx context.Context, queries []searchQuery) [][]types.POI {
	results := make([][]types.POI, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches)
	for i, q := range queries {
		g.Go(func() error {
			res, err := b.search.Search(gctx, q.query, search.Options{Limit: q.limit})
			if err != nil {
				b.logger.WarnContext(ctx, "Search failed, continuing without its results",
					slog.String("query", q.query), slog.Any("error", err))
				b.metrics.CollaboratorFailed(ctx, "search")
				return nil
			}
			if res != nil {
				results[i] = res.Results
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// MergeCandidates concatenates result sets in order and keeps the first
// occurrence of each identity. POIs without identity, permanently closed or
// excluded are dropped. Each kept POI carries its derived tag set.
func MergeCandidates(resultSets [][]types.POI, excluded Exclusions) []*types.POI {
	seen := make(map[string]struct{})
	var merged []*types.POI
	for _, set := range resultSets {
		for _, p := range set {
			if !p.HasIdentity() {
				continue
			}
			key := p.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if excluded.Has(key) || poi.IsPermanentlyClosed(p.OpeningHours) {
				continue
			}
			tagged := poi.WithTags(p)
			merged = append(merged, &tagged)
		}
	}
	return merged
}

// RestaurantPool unions the food/restaurant-tagged general candidates with the
// dedicated restaurant search, deduplicated and filtered like the general pool.
func RestaurantPool(general []*types.POI, restaurantResults []types.POI, excluded Exclusions) []*types.POI {
	seen := make(map[string]struct{})
	var pool []*types.POI
	add := func(p *types.POI) {
		if _, dup := seen[p.Key()]; dup || !poi.IsRestaurant(p) {
			return
		}
		seen[p.Key()] = struct{}{}
		pool = append(pool, p)
	}
	for _, p := range general {
		add(p)
	}
	for _, p := range MergeCandidates([][]types.POI{restaurantResults}, excluded) {
		add(p)
	}
	return pool
}

// DayEvents returns the in-range, non-excluded events starting on day, in
// chronological order. Catalog failure yields no events.
func (b *PoolBuilder) DayEvents(ctx context.Context, day time.Time, excluded Exclusions) []*types.Event {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, b.cfg.Location)
	return b.eventsBetween(ctx, from, from.AddDate(0, 0, 1), excluded)
}

// UpcomingEvents returns events starting from now until the end of the tip
// window. Events that already started are not offered.
func (b *PoolBuilder) UpcomingEvents(ctx context.Context, now time.Time, excluded Exclusions) []*types.Event {
	from := now.In(b.cfg.Location)
	return b.eventsBetween(ctx, from, from.AddDate(0, 0, b.cfg.TipEventWindowDays), excluded)
}

func (b *PoolBuilder) eventsBetween(ctx context.Context, from, to time.Time, excluded Exclusions) []*types.Event {
	if b.events == nil {
		return nil
	}
	found, err := b.events.FindEvents(ctx, types.EventFilter{
		From:         from,
		To:           to,
		ReferenceLat: b.cfg.ReferenceLat,
		ReferenceLon: b.cfg.ReferenceLon,
		Limit:        b.cfg.EventLimit,
	})
	if err != nil {
		b.logger.WarnContext(ctx, "Event lookup failed, continuing without events", slog.Any("error", err))
		b.metrics.CollaboratorFailed(ctx, "events")
		return nil
	}
	return FilterEvents(found, b.cfg.MaxDistanceKm, excluded)
}

// FilterEvents drops events without identity, out of range or excluded, and
// orders the rest chronologically.
func FilterEvents(found []types.Event, maxKm float64, excluded Exclusions) []*types.Event {
	seen := make(map[string]struct{})
	var out []*types.Event
	for i := range found {
		e := found[i]
		if !e.HasIdentity() || !e.InRange(maxKm) || excluded.Has(e.Key()) {
			continue
		}
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}

// TipPOIs returns the eligible POIs for a tip in interest. The catalog query
// is tried first; on failure the search service stands in. Rating, category,
// distance and closure are applied in process on both paths since the catalog
// cannot evaluate opening hours.
func (b *PoolBuilder) TipPOIs(ctx context.Context, interest string, excluded Exclusions) []*types.POI {
	ctx, span := otel.Tracer("PoolBuilder").Start(ctx, "TipPOIs", trace.WithAttributes(
		attribute.String("interest", interest),
	))
	defer span.End()

	filter := types.POIFilter{
		Categories:   []string{interest},
		MinRating:    b.cfg.MinRating,
		ReferenceLat: b.cfg.ReferenceLat,
		ReferenceLon: b.cfg.ReferenceLon,
		MaxDistance:  b.cfg.MaxDistanceKm,
		Limit:        b.cfg.TipCatalogLimit,
	}

	found, err := b.pois.FindTipCandidates(ctx, filter)
	if err != nil {
		b.logger.WarnContext(ctx, "Catalog tip query failed, falling back to search",
			slog.String("interest", interest), slog.Any("error", err))
		b.metrics.CollaboratorFailed(ctx, "catalog")
		span.RecordError(err)

		res, serr := b.search.Search(ctx, fmt.Sprintf("%s %s", interest, b.cfg.Destination), search.Options{
			Limit:      b.cfg.TipCatalogLimit,
			Categories: filter.Categories,
		})
		if serr != nil {
			b.logger.WarnContext(ctx, "Tip search fallback failed", slog.Any("error", serr))
			b.metrics.CollaboratorFailed(ctx, "search")
			span.SetStatus(codes.Error, "No tip POI source available")
			return nil
		}
		found = nil
		if res != nil {
			found = res.Results
		}
	}

	pool := MergeCandidates([][]types.POI{poi.ApplyTipFilters(found, filter)}, excluded)
	span.SetAttributes(attribute.Int("pool.count", len(pool)))
	span.SetStatus(codes.Ok, "Tip POIs built")
	return pool
}
