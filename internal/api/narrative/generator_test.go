package narrative

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/FACorreiaa/go-poi-tourism-engine/internal/api/generative_ai"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) GenerateChatCompletion(ctx context.Context, messages []generativeAI.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func ratingPtr(v float64) *float64 { return &v }

func poiItem(id int64, name string, typ types.ItemType) types.ItineraryItem {
	return types.ItineraryItem{Time: "09:00", Type: typ, Candidate: types.POICandidate(&types.POI{ID: id, Name: name})}
}

func newTestGenerator(c Completer) *Generator {
	return NewGenerator(c, "Calpe", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuildItineraryPrompt(t *testing.T) {
	items := []types.ItineraryItem{
		poiItem(1, "Peñón de Ifach", types.ItemActivity),
		poiItem(2, "Bodega Calpe", types.ItemLunch),
		poiItem(1, "Peñón de Ifach", types.ItemActivity),
		poiItem(3, "Mercado", types.ItemActivity),
		poiItem(4, "Salinas", types.ItemActivity),
	}

	msgs := BuildItineraryPrompt("en", "Calpe", "morning", items)
	require.Len(t, msgs, 2)
	assert.Equal(t, generativeAI.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "local guide")
	assert.Equal(t, generativeAI.RoleUser, msgs[1].Role)

	user := msgs[1].Content
	assert.Contains(t, user, `"Peñón de Ifach", "Bodega Calpe" and "Mercado"`)
	assert.NotContains(t, user, "Salinas")
	assert.Contains(t, user, "morning in Calpe")
	assert.Contains(t, user, "At most 60 words")
}

func TestBuildItineraryPromptUnknownLanguage(t *testing.T) {
	msgs := BuildItineraryPrompt("xx", "Calpe", "nonsense", []types.ItineraryItem{poiItem(1, "Peñón de Ifach", types.ItemActivity)})
	assert.Contains(t, msgs[0].Content, "lokale gids")
	assert.Contains(t, msgs[1].Content, "een dag in Calpe")
	assert.Contains(t, msgs[1].Content, "Maximaal 60 woorden")
}

func TestBuildTipPrompt(t *testing.T) {
	p := &types.POI{ID: 7, Name: "Playa Arenal-Bol", Category: "Beaches & Nature", Rating: ratingPtr(4.64)}
	msgs := BuildTipPrompt("de", "Calpe", time.UTC, types.POICandidate(p))
	user := msgs[1].Content
	assert.Contains(t, user, `"Playa Arenal-Bol"`)
	assert.Contains(t, user, "(Beaches & Nature; Bewertung 4.6/5)")
	assert.Contains(t, user, "Höchstens 55 Wörter")

	first := time.Date(2025, 8, 1, 20, 0, 0, 0, time.UTC)
	e := &types.Event{ID: 9, Title: "Moros y Cristianos", StartsAt: first.AddDate(0, 0, 3), FirstOccurrence: &first, LocationName: "Plaza Mayor"}
	msgs = BuildTipPrompt("es", "Calpe", time.UTC, types.EventCandidate(e))
	assert.Contains(t, msgs[1].Content, "(Evento; 01-08-2025; Plaza Mayor)")

	unrated := &types.POI{ID: 8, Name: "Mirador"}
	msgs = BuildTipPrompt("en", "Calpe", time.UTC, types.POICandidate(unrated))
	assert.NotContains(t, msgs[1].Content, "rating")
}

func TestTipPromptEventDateUsesLocation(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	e := &types.Event{ID: 3, Title: "Nochevieja", StartsAt: time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC)}

	assert.Equal(t, "01-01-2025", EventDate(e, cet))
	assert.Equal(t, "31-12-2024", EventDate(e, nil))

	c := new(MockCompleter)
	c.On("GenerateChatCompletion", mock.Anything, mock.MatchedBy(func(msgs []generativeAI.Message) bool {
		return strings.Contains(msgs[1].Content, "(Event; 01-01-2025)")
	})).Return("Celebrate the new year.", nil)

	g := NewGenerator(c, "Calpe", nil, slog.New(slog.NewTextHandler(io.Discard, nil)), WithLocation(cet))
	assert.Equal(t, "Celebrate the new year.", g.TipDescription(context.Background(), "en", types.EventCandidate(e)))
	c.AssertExpectations(t)
}

func TestItineraryIntro(t *testing.T) {
	ctx := context.Background()
	items := []types.ItineraryItem{poiItem(1, "Peñón de Ifach", types.ItemActivity)}

	t.Run("cleans completion", func(t *testing.T) {
		c := new(MockCompleter)
		c.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("**Ontdek**Calpe met de Peñón de Ifach!", nil)

		out := newTestGenerator(c).ItineraryIntro(ctx, "nl", "morning", items)
		assert.Equal(t, "Ontdek Calpe met de Peñón de Ifach!", out)
		c.AssertExpectations(t)
	})

	t.Run("falls back on failure", func(t *testing.T) {
		c := new(MockCompleter)
		c.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("", errors.New("unavailable"))

		out := newTestGenerator(c).ItineraryIntro(ctx, "en", "evening", items)
		assert.Equal(t, "Your evening in Calpe is full of great moments, including Peñón de Ifach. Enjoy!", out)
	})

	t.Run("falls back on markup-only completion", func(t *testing.T) {
		c := new(MockCompleter)
		c.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("** **", nil)

		out := newTestGenerator(c).ItineraryIntro(ctx, "en", "evening", items)
		assert.Contains(t, out, "Peñón de Ifach")
	})

	t.Run("empty itinerary skips completion", func(t *testing.T) {
		c := new(MockCompleter)
		out := newTestGenerator(c).ItineraryIntro(ctx, "sv", "morning", nil)
		assert.Contains(t, out, "Inget passande hittades i Calpe")
		c.AssertNotCalled(t, "GenerateChatCompletion", mock.Anything, mock.Anything)
	})

	t.Run("enforces word cap", func(t *testing.T) {
		c := new(MockCompleter)
		c.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return(strings.Repeat("zon ", 200), nil)

		out := newTestGenerator(c).ItineraryIntro(ctx, "nl", "morning", items)
		assert.LessOrEqual(t, len(strings.Fields(out)), WordCap("nl"))
	})
}

func TestTipDescription(t *testing.T) {
	ctx := context.Background()
	p := &types.POI{ID: 42, Name: "Playa La Fossa", Category: "Beaches & Nature"}

	c := new(MockCompleter)
	c.On("GenerateChatCompletion", mock.Anything, mock.MatchedBy(func(msgs []generativeAI.Message) bool {
		return len(msgs) == 2 && strings.Contains(msgs[1].Content, "Playa La Fossa")
	})).Return("Relax at La Fossa.", nil).Once()
	c.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("", errors.New("down"))

	g := newTestGenerator(c)
	assert.Equal(t, "Relax at La Fossa.", g.TipDescription(ctx, "en", types.POICandidate(p)))
	assert.Equal(t, "Dzisiejsza wskazówka: Playa La Fossa w Calpe. Naprawdę warto!", g.TipDescription(ctx, "pl", types.POICandidate(p)))
}

func TestTipPromptUsesTranslatedDescription(t *testing.T) {
	p := &types.POI{
		ID:                    5,
		Name:                  "Baños de la Reina",
		EnrichedDescription:   "Roman fish ponds by the sea.",
		EnrichedDescriptionNL: "Romeinse **visvijvers** aan zee. Ideaal bij zonsondergang.",
	}

	nl := BuildTipPrompt("nl", "Calpe", time.UTC, types.POICandidate(p))[1].Content
	assert.Contains(t, nl, "Romeinse visvijvers aan zee.")

	fr := BuildTipPrompt("fr", "Calpe", time.UTC, types.POICandidate(p))[1].Content
	assert.Contains(t, fr, "Romeinse visvijvers", "unsupported languages use the default locale")

	c := new(MockCompleter)
	c.On("GenerateChatCompletion", mock.Anything, mock.Anything).Return("", errors.New("down"))
	out := newTestGenerator(c).TipDescription(context.Background(), "en", types.POICandidate(p))
	assert.Equal(t, "Today's tip: Baños de la Reina in Calpe. Well worth a visit! Roman fish ponds by the sea.", out)
}
