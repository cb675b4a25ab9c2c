package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-poi-tourism-engine/app/resilience"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat-style completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options configures the Gemini client.
type Options struct {
	Model           string
	EmbeddingModel  string
	Temperature     float32
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = "gemini-2.0-flash"
	}
	if o.EmbeddingModel == "" {
		o.EmbeddingModel = "text-embedding-004"
	}
	if o.Timeout <= 0 {
		o.Timeout = 20 * time.Second
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = 5
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = 30 * time.Second
	}
	return o
}

// AIClient talks to Gemini. Calls go through a circuit breaker so a failing
// backend is skipped quickly and callers can fall back.
type AIClient struct {
	client  *genai.Client
	opts    Options
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker[string]
}

func NewAIClient(ctx context.Context, opts Options, logger *slog.Logger) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		err := errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	opts = opts.withDefaults()
	span.SetStatus(codes.Ok, "AI client created successfully")
	return &AIClient{
		client:  client,
		opts:    opts,
		logger:  logger,
		breaker: resilience.NewBreaker[string]("gemini-completion", opts.BreakerFailures, opts.BreakerTimeout, logger),
	}, nil
}

// GenerateChatCompletion sends messages to the model and returns the reply
// text. System messages become the system instruction; assistant turns are
// sent with the model role.
func (ai *AIClient) GenerateChatCompletion(ctx context.Context, messages []Message) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateChatCompletion", trace.WithAttributes(
		attribute.Int("messages.count", len(messages)),
		attribute.String("model", ai.opts.Model),
	))
	defer span.End()

	system, contents := buildContents(messages)
	if len(contents) == 0 {
		err := fmt.Errorf("%w: completion needs at least one user message", types.ErrInvalidInput)
		span.RecordError(err)
		span.SetStatus(codes.Error, "No user content")
		return "", err
	}

	temperature := ai.opts.Temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       &temperature,
	}

	text, err := ai.breaker.Execute(func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, ai.opts.Timeout)
		defer cancel()

		result, err := ai.client.Models.GenerateContent(callCtx, ai.opts.Model, contents, config)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(result.Text())
		if text == "" {
			return "", errors.New("model returned an empty completion")
		}
		return text, nil
	})
	if err != nil {
		ai.logger.WarnContext(ctx, "Chat completion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Completion failed")
		return "", fmt.Errorf("%w: chat completion: %w", types.ErrServiceUnavailable, err)
	}

	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Completion generated")
	return text, nil
}

// buildContents splits chat messages into Gemini's system instruction and
// conversation contents. Blank messages are dropped.
func buildContents(messages []Message) (*genai.Content, []*genai.Content) {
	var systemParts []string
	var contents []*genai.Content
	for _, m := range messages {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, text)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(text, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
		}
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}
	return system, contents
}
