package recommend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/search"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string, opts search.Options) (*search.Result, error) {
	args := m.Called(ctx, query, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.Result), args.Error(1)
}

type MockPOIRepository struct {
	mock.Mock
}

func (m *MockPOIRepository) FindTipCandidates(ctx context.Context, filter types.POIFilter) ([]types.POI, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.POI), args.Error(1)
}

func (m *MockPOIRepository) FindSimilarPOIs(ctx context.Context, queryEmbedding []float32, categories []string, limit int) ([]types.POI, error) {
	args := m.Called(ctx, queryEmbedding, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.POI), args.Error(1)
}

type MockEventsRepository struct {
	mock.Mock
}

func (m *MockEventsRepository) FindEvents(ctx context.Context, filter types.EventFilter) ([]types.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Event), args.Error(1)
}

type MockNarrator struct {
	mock.Mock
}

func (m *MockNarrator) ItineraryIntro(ctx context.Context, lang, duration string, items []types.ItineraryItem) string {
	args := m.Called(ctx, lang, duration, items)
	return args.String(0)
}

func (m *MockNarrator) TipDescription(ctx context.Context, lang string, c types.Candidate) string {
	args := m.Called(ctx, lang, c)
	return args.String(0)
}

// fixedRand returns a constant draw. IntN(n) is n-1, which makes a
// Fisher–Yates shuffle the identity and picks the last element of a pool.
type fixedRand struct {
	u float64
}

func (f fixedRand) IntN(n int) int   { return n - 1 }
func (f fixedRand) Float64() float64 { return f.u }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rating(v float64) *float64 { return &v }

func testPOI(id int64, name, category, subcategory string) types.POI {
	return types.POI{ID: id, Name: name, Category: category, Subcategory: subcategory, Rating: rating(4.5)}
}

func testEvent(id int64, title string, at time.Time) types.Event {
	return types.Event{ID: id, Title: title, StartsAt: at}
}

func poiPtrs(pois ...types.POI) []*types.POI {
	out := make([]*types.POI, len(pois))
	for i := range pois {
		p := pois[i]
		out[i] = &p
	}
	return out
}

func closedAllWeek() map[string]any {
	return map[string]any{
		"monday": "closed", "tuesday": "closed", "wednesday": "closed", "thursday": "closed",
		"friday": "closed", "saturday": "closed", "sunday": "closed",
	}
}

func keysOf(items []types.ItineraryItem) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Candidate.Key()
	}
	return keys
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func bulkPOIs(prefix string, from, n int, category, subcategory string) []types.POI {
	out := make([]types.POI, 0, n)
	for i := 0; i < n; i++ {
		id := int64(from + i)
		out = append(out, testPOI(id, fmt.Sprintf("%s %d", prefix, id), category, subcategory))
	}
	return out
}
