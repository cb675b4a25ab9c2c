package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/search"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

func benchmarkInput() AssignInput {
	var raw []types.POI
	raw = append(raw, bulkPOIs("Museum", 1, 40, "Culture & History", "museum")...)
	raw = append(raw, bulkPOIs("Beach", 41, 40, "Beaches & Nature", "beach")...)
	raw = append(raw, bulkPOIs("Bar", 81, 40, "Food & Drinks", "cocktail")...)
	all := MergeCandidates([][]types.POI{raw}, nil)

	day := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	var found []types.Event
	for i := 0; i < 20; i++ {
		found = append(found, testEvent(int64(i+1), "Concert", day.Add(time.Duration(8+i/2)*time.Hour)))
	}

	return AssignInput{
		Slots:        SlotsFor(DurationFullDay),
		Buckets:      Classify(all),
		All:          all,
		Restaurants:  RestaurantPool(all, bulkPOIs("Restaurant", 200, 30, "Restaurants", ""), nil),
		Events:       FilterEvents(found, 0, nil),
		IncludeMeals: true,
		Tolerance:    2 * time.Hour,
		Location:     time.UTC,
	}
}

// BenchmarkAssign measures slot filling over realistic pool sizes.
func BenchmarkAssign(b *testing.B) {
	in := benchmarkInput()
	rng := NewRand(42)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Assign(rng, in)
	}
}

// BenchmarkMergeCandidates measures dedup and tagging of search results.
func BenchmarkMergeCandidates(b *testing.B) {
	sets := [][]types.POI{
		bulkPOIs("Museum", 1, 50, "Culture & History", "museum"),
		bulkPOIs("Museum", 25, 50, "Culture & History", "museum"),
		bulkPOIs("Beach", 100, 50, "Beaches & Nature", "beach"),
	}
	excluded := ParseExclusions([]string{"poi-3", "poi-110"})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		MergeCandidates(sets, excluded)
	}
}

// BenchmarkConcurrentItineraries exercises the full service with mocked collaborators.
func BenchmarkConcurrentItineraries(b *testing.B) {
	searchClient := new(MockSearchClient)
	eventRepo := new(MockEventsRepository)
	narrator := new(MockNarrator)

	searchClient.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(&search.Result{Results: bulkPOIs("Spot", 1, 30, "Active", "viewpoint")}, nil)
	eventRepo.On("FindEvents", mock.Anything, mock.Anything).Return([]types.Event{}, nil)
	narrator.On("ItineraryIntro", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("intro")

	cfg := testConfig()
	svc := NewServiceImpl(NewPoolBuilder(searchClient, new(MockPOIRepository), eventRepo, cfg, nil, discardLogger()),
		narrator, cfg, nil, discardLogger())
	req := types.ItineraryRequest{Date: "2025-07-14", Interests: []string{"Active"}, Duration: DurationFullDay}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := svc.Itinerary(ctx, req); err != nil {
				b.Error(err)
			}
		}
	})
}
