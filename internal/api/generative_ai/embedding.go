package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const (
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// GenerateQueryEmbedding embeds a free-text search query with the configured
// embedding model.
func (ai *AIClient) GenerateQueryEmbedding(ctx context.Context, query string) ([]float32, error) {
	return ai.embed(ctx, "GenerateQueryEmbedding", query, taskRetrievalQuery)
}

// GenerateDocumentEmbedding embeds catalog text so it can be matched against
// query embeddings.
func (ai *AIClient) GenerateDocumentEmbedding(ctx context.Context, document string) ([]float32, error) {
	return ai.embed(ctx, "GenerateDocumentEmbedding", document, taskRetrievalDocument)
}

func (ai *AIClient) embed(ctx context.Context, spanName, text, taskType string) ([]float32, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, spanName, trace.WithAttributes(
		attribute.Int("text.length", len(text)),
		attribute.String("model", ai.opts.EmbeddingModel),
		attribute.String("task_type", taskType),
	))
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		err := errors.New("cannot embed empty text")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty text")
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, ai.opts.Timeout)
	defer cancel()

	result, err := ai.client.Models.EmbedContent(callCtx, ai.opts.EmbeddingModel, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Embedding failed")
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if len(result.Embeddings) == 0 || result.Embeddings[0] == nil || len(result.Embeddings[0].Values) == 0 {
		err = errors.New("embedding response contained no values")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty embedding")
		return nil, err
	}

	values := result.Embeddings[0].Values
	span.SetAttributes(attribute.Int("embedding.dimension", len(values)))
	span.SetStatus(codes.Ok, "Embedding generated")
	return values, nil
}
