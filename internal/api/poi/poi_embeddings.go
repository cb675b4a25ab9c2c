package poi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

var _ EmbeddingStore = (*RepositoryImpl)(nil)

// EmbeddingStore reads POIs that still lack a vector and stores new ones.
type EmbeddingStore interface {
	// FindPOIsWithoutEmbedding pages through active POIs without an embedding,
	// ordered by id and starting after afterID.
	FindPOIsWithoutEmbedding(ctx context.Context, afterID int64, limit int) ([]types.POI, error)
	UpdatePOIEmbedding(ctx context.Context, id int64, embedding []float32) error
}

// DocumentEmbedder turns catalog text into a retrieval vector.
type DocumentEmbedder interface {
	GenerateDocumentEmbedding(ctx context.Context, document string) ([]float32, error)
}

// BackfillStats summarises one embedding backfill run.
type BackfillStats struct {
	Processed int
	Failed    int
}

func (r *RepositoryImpl) FindPOIsWithoutEmbedding(ctx context.Context, afterID int64, limit int) ([]types.POI, error) {
	ctx, span := otel.Tracer("POIRepository").Start(ctx, "FindPOIsWithoutEmbedding", trace.WithAttributes(
		attribute.Int64("after_id", afterID),
		attribute.Int("limit", limit),
	))
	defer span.End()

	query := `
        SELECT` + poiColumns + `
        FROM pois
        WHERE is_active = TRUE
          AND embedding IS NULL
          AND id > $1
        ORDER BY id
        LIMIT $2
    `

	rows, err := r.pgpool.Query(ctx, query, afterID, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query POIs without embedding", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to find POIs without embedding: %w", err)
	}
	defer rows.Close()

	pois, err := collectPOIs(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row scan failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("results.count", len(pois)))
	span.SetStatus(codes.Ok, "POIs without embedding found")
	return pois, nil
}

func (r *RepositoryImpl) UpdatePOIEmbedding(ctx context.Context, id int64, embedding []float32) error {
	ctx, span := otel.Tracer("POIRepository").Start(ctx, "UpdatePOIEmbedding", trace.WithAttributes(
		attribute.Int64("poi.id", id),
		attribute.Int("embedding.dimension", len(embedding)),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE pois SET embedding = $1::vector, embedding_generated_at = NOW() WHERE id = $2`,
		vectorLiteral(embedding), id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update failed")
		return fmt.Errorf("failed to update embedding for POI %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("POI %d not found", id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "POI not found")
		return err
	}

	span.SetStatus(codes.Ok, "Embedding stored")
	return nil
}

// EmbeddingDocument is the text a POI is embedded from: name, category and
// the richest English description available.
func EmbeddingDocument(p types.POI) string {
	parts := []string{p.Name, p.Category}
	if p.Subcategory != "" {
		parts = append(parts, p.Subcategory)
	}
	if p.POIType != "" {
		parts = append(parts, p.POIType)
	}
	switch {
	case strings.TrimSpace(p.EnrichedDescription) != "":
		parts = append(parts, p.EnrichedDescription)
	case strings.TrimSpace(p.Description) != "":
		parts = append(parts, p.Description)
	}
	return strings.Join(parts, ". ")
}

// BackfillEmbeddings embeds every active POI that has no vector yet, in
// batches of batchSize. A POI that fails is logged and skipped; the run keeps
// going and reports it in the stats.
func BackfillEmbeddings(ctx context.Context, store EmbeddingStore, embedder DocumentEmbedder, batchSize int, logger *slog.Logger) (BackfillStats, error) {
	if batchSize <= 0 {
		batchSize = 20
	}

	var (
		stats  BackfillStats
		cursor int64
	)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		batch, err := store.FindPOIsWithoutEmbedding(ctx, cursor, batchSize)
		if err != nil {
			return stats, err
		}
		if len(batch) == 0 {
			break
		}

		logger.InfoContext(ctx, "Processing batch of POIs", slog.Int("batch_size", len(batch)), slog.Int64("after_id", cursor))

		for _, p := range batch {
			cursor = p.ID

			embedding, err := embedder.GenerateDocumentEmbedding(ctx, EmbeddingDocument(p))
			if err == nil {
				err = store.UpdatePOIEmbedding(ctx, p.ID, embedding)
			}
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return stats, err
				}
				logger.ErrorContext(ctx, "Failed to embed POI",
					slog.Any("error", err),
					slog.Int64("poi_id", p.ID),
					slog.String("poi_name", p.Name))
				stats.Failed++
				continue
			}
			stats.Processed++
		}

		if len(batch) < batchSize {
			break
		}
	}

	logger.InfoContext(ctx, "POI embedding backfill completed",
		slog.Int("total_processed", stats.Processed),
		slog.Int("total_errors", stats.Failed))

	if stats.Failed > 0 {
		return stats, fmt.Errorf("embedding backfill completed with %d errors out of %d POIs", stats.Failed, stats.Processed+stats.Failed)
	}
	return stats, nil
}
