package events

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// DB is the subset of pgxpool.Pool used here.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository interface {
	// FindEvents returns active agenda entries starting in [From, To), in
	// chronological order, with their distance to the reference point.
	FindEvents(ctx context.Context, filter types.EventFilter) ([]types.Event, error)
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

func (r *RepositoryImpl) FindEvents(ctx context.Context, filter types.EventFilter) ([]types.Event, error) {
	ctx, span := otel.Tracer("EventsRepository").Start(ctx, "FindEvents", trace.WithAttributes(
		attribute.String("from", filter.From.Format("2006-01-02")),
		attribute.String("to", filter.To.Format("2006-01-02")),
		attribute.Int("limit", filter.Limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindEvents"))

	query := `
        SELECT
            id,
            title,
            short_description,
            location_name,
            event_date,
            first_occurrence,
            CASE
                WHEN latitude IS NULL OR longitude IS NULL THEN NULL
                ELSE 6371 * acos(LEAST(1.0,
                    cos(radians($3)) * cos(radians(latitude)) * cos(radians(longitude) - radians($4))
                    + sin(radians($3)) * sin(radians(latitude))
                ))
            END AS distance_km
        FROM agenda
        WHERE is_active = TRUE
          AND event_date >= $1
          AND event_date < $2
        ORDER BY event_date ASC, id ASC
        LIMIT $5
    `

	rows, err := r.pgpool.Query(ctx, query, filter.From, filter.To, filter.ReferenceLat, filter.ReferenceLon, filter.Limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query events", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to query agenda: %w", err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		var (
			e                          types.Event
			shortDescription, location sql.NullString
			firstOccurrence            sql.NullTime
			distance                   sql.NullFloat64
		)
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&shortDescription,
			&location,
			&e.StartsAt,
			&firstOccurrence,
			&distance,
		); err != nil {
			l.ErrorContext(ctx, "Failed to scan event row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		e.ShortDescription = shortDescription.String
		e.LocationName = location.String
		if firstOccurrence.Valid {
			t := firstOccurrence.Time
			e.FirstOccurrence = &t
		}
		if distance.Valid {
			d := distance.Float64
			e.DistanceKm = &d
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating event rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	l.DebugContext(ctx, "Events found", slog.Int("count", len(events)))
	span.SetAttributes(attribute.Int("results.count", len(events)))
	span.SetStatus(codes.Ok, "Events found")
	return events, nil
}
