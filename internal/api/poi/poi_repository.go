package poi

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// DB is the subset of pgxpool.Pool the catalog repositories use.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	// FindTipCandidates returns active POIs in the allowed categories that pass
	// the rating and radius constraints, best rated first.
	FindTipCandidates(ctx context.Context, filter types.POIFilter) ([]types.POI, error)

	// FindSimilarPOIs is the vector nearest-neighbour lookup behind semantic search.
	FindSimilarPOIs(ctx context.Context, queryEmbedding []float32, categories []string, limit int) ([]types.POI, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool DB
}

func NewRepository(pgpool DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

const poiColumns = `
            id,
            name,
            category,
            subcategory,
            poi_type,
            COALESCE(latitude, 0) AS latitude,
            COALESCE(longitude, 0) AS longitude,
            rating,
            COALESCE(review_count, 0) AS review_count,
            opening_hours::text,
            description,
            enriched_detail_description,
            enriched_detail_description_nl,
            enriched_detail_description_de,
            enriched_detail_description_es,
            enriched_detail_description_sv,
            enriched_detail_description_pl,
            thumbnail_url`

func (r *RepositoryImpl) FindTipCandidates(ctx context.Context, filter types.POIFilter) ([]types.POI, error) {
	ctx, span := otel.Tracer("POIRepository").Start(ctx, "FindTipCandidates", trace.WithAttributes(
		attribute.StringSlice("categories", filter.Categories),
		attribute.Float64("min_rating", filter.MinRating),
		attribute.Float64("max_distance_km", filter.MaxDistance),
		attribute.Int("limit", filter.Limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindTipCandidates"))

	query := `
        SELECT` + poiColumns + `
        FROM pois
        WHERE is_active = TRUE
          AND category = ANY($1)
          AND (rating >= $2 OR rating IS NULL)
          AND latitude IS NOT NULL
          AND longitude IS NOT NULL
          AND (6371 * acos(LEAST(1.0,
                cos(radians($3)) * cos(radians(latitude)) * cos(radians(longitude) - radians($4))
                + sin(radians($3)) * sin(radians(latitude))
              ))) <= $5
        ORDER BY rating DESC NULLS LAST, review_count DESC NULLS LAST
        LIMIT $6
    `
	args := []any{
		filter.Categories,   // $1
		filter.MinRating,    // $2
		filter.ReferenceLat, // $3
		filter.ReferenceLon, // $4
		filter.MaxDistance,  // $5
		filter.Limit,        // $6
	}

	l.DebugContext(ctx, "Executing tip candidate query", slog.Any("args", args))

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query tip candidates", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to query tip candidates: %w", err)
	}
	defer rows.Close()

	pois, err := collectPOIs(rows)
	if err != nil {
		l.ErrorContext(ctx, "Failed to read tip candidates", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row scan failed")
		return nil, err
	}

	l.InfoContext(ctx, "Tip candidates found", slog.Int("count", len(pois)))
	span.SetAttributes(attribute.Int("results.count", len(pois)))
	span.SetStatus(codes.Ok, "Tip candidates found")
	return pois, nil
}

func (r *RepositoryImpl) FindSimilarPOIs(ctx context.Context, queryEmbedding []float32, categories []string, limit int) ([]types.POI, error) {
	ctx, span := otel.Tracer("POIRepository").Start(ctx, "FindSimilarPOIs", trace.WithAttributes(
		attribute.Int("embedding.dimension", len(queryEmbedding)),
		attribute.StringSlice("categories", categories),
		attribute.Int("limit", limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindSimilarPOIs"))

	query := `
        SELECT` + poiColumns + `
        FROM pois
        WHERE is_active = TRUE
          AND embedding IS NOT NULL`
	args := []any{vectorLiteral(queryEmbedding), limit}
	if len(categories) > 0 {
		query += `
          AND category = ANY($3)`
		args = append(args, categories)
	}
	query += `
        ORDER BY embedding <=> $1::vector
        LIMIT $2
    `

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query similar POIs", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to search similar POIs: %w", err)
	}
	defer rows.Close()

	pois, err := collectPOIs(rows)
	if err != nil {
		l.ErrorContext(ctx, "Failed to read similar POIs", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row scan failed")
		return nil, err
	}

	l.DebugContext(ctx, "Similar POIs found", slog.Int("count", len(pois)))
	span.SetAttributes(attribute.Int("results.count", len(pois)))
	span.SetStatus(codes.Ok, "Similar POIs found")
	return pois, nil
}

func collectPOIs(rows pgx.Rows) ([]types.POI, error) {
	var pois []types.POI
	for rows.Next() {
		var (
			p                                  types.POI
			subcategory, poiType, openingHours sql.NullString
			description, enriched              sql.NullString
			enrichedNL, enrichedDE, enrichedES sql.NullString
			enrichedSV, enrichedPL, thumbnail  sql.NullString
			rating                             sql.NullFloat64
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&subcategory,
			&poiType,
			&p.Latitude,
			&p.Longitude,
			&rating,
			&p.ReviewCount,
			&openingHours,
			&description,
			&enriched,
			&enrichedNL,
			&enrichedDE,
			&enrichedES,
			&enrichedSV,
			&enrichedPL,
			&thumbnail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan POI row: %w", err)
		}

		p.Subcategory = subcategory.String
		p.POIType = poiType.String
		if rating.Valid {
			v := rating.Float64
			p.Rating = &v
		}
		if openingHours.Valid {
			p.OpeningHours = openingHours.String
		}
		p.Description = description.String
		p.EnrichedDescription = enriched.String
		p.EnrichedDescriptionNL = enrichedNL.String
		p.EnrichedDescriptionDE = enrichedDE.String
		p.EnrichedDescriptionES = enrichedES.String
		p.EnrichedDescriptionSV = enrichedSV.String
		p.EnrichedDescriptionPL = enrichedPL.String
		p.ThumbnailURL = thumbnail.String

		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating POI rows: %w", err)
	}
	return pois, nil
}

// vectorLiteral renders an embedding in pgvector's text format.
func vectorLiteral(embedding []float32) string {
	strs := make([]string, len(embedding))
	for i, v := range embedding {
		strs[i] = fmt.Sprintf("%f", v)
	}
	return "[" + strings.Join(strs, ",") + "]"
}
