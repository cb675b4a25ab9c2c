package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/search"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

func setupPoolBuilder() (*PoolBuilder, *MockSearchClient, *MockPOIRepository, *MockEventsRepository) {
	searchClient := new(MockSearchClient)
	poiRepo := new(MockPOIRepository)
	eventRepo := new(MockEventsRepository)
	return NewPoolBuilder(searchClient, poiRepo, eventRepo, testConfig(), nil, discardLogger()), searchClient, poiRepo, eventRepo
}

func keysOfPOIs(pois []*types.POI) []string {
	keys := make([]string, len(pois))
	for i, p := range pois {
		keys[i] = p.Key()
	}
	return keys
}

func TestParseExclusions(t *testing.T) {
	ex := ParseExclusions([]string{"poi-42", " EVENT-7 ", "13", "", "garbage"})
	assert.True(t, ex.Has("poi-42"))
	assert.True(t, ex.Has("event-7"))
	assert.True(t, ex.Has("poi-13"))
	assert.True(t, ex.Has("garbage"))
	assert.False(t, ex.Has("event-42"))
	assert.Len(t, ex, 4)
}

func TestMergeCandidates(t *testing.T) {
	closed := testPOI(3, "Closed", "Shopping", "")
	closed.OpeningHours = closedAllWeek()
	first := testPOI(1, "First", "Shopping", "")
	dup := testPOI(1, "Duplicate", "Shopping", "")

	merged := MergeCandidates([][]types.POI{
		{first, {Name: "No id"}, closed},
		{dup, testPOI(2, "Second", "Active", ""), testPOI(42, "Excluded", "Active", "")},
	}, ParseExclusions([]string{"poi-42"}))

	assert.Equal(t, []string{"poi-1", "poi-2"}, keysOfPOIs(merged))
	assert.Equal(t, "First", merged[0].Name, "first occurrence wins")
	assert.NotNil(t, merged[0].Tags)
}

func TestRestaurantPool(t *testing.T) {
	general := MergeCandidates([][]types.POI{{
		testPOI(1, "Bistro", "Food & Drinks", "restaurant"),
		testPOI(2, "Museum", "Culture & History", "museum"),
	}}, nil)
	dedicated := []types.POI{
		testPOI(1, "Bistro", "Food & Drinks", "restaurant"),
		testPOI(3, "Grill", "Restaurants", ""),
		testPOI(4, "Excluded grill", "Restaurants", ""),
	}

	pool := RestaurantPool(general, dedicated, ParseExclusions([]string{"4"}))
	assert.Equal(t, []string{"poi-1", "poi-3"}, keysOfPOIs(pool))
}

func TestFilterEvents(t *testing.T) {
	day := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	far, near := 25.0, 2.0
	late := testEvent(1, "Late", day.Add(22*time.Hour))
	early := testEvent(2, "Early", day.Add(8*time.Hour))
	early.DistanceKm = &near
	remote := testEvent(3, "Remote", day.Add(12*time.Hour))
	remote.DistanceKm = &far
	excluded := testEvent(4, "Excluded", day.Add(9*time.Hour))

	out := FilterEvents([]types.Event{late, early, remote, excluded, {Title: "no id"}}, 10, ParseExclusions([]string{"event-4"}))
	require.Len(t, out, 2)
	assert.Equal(t, "event-2", out[0].Key())
	assert.Equal(t, "event-1", out[1].Key())
}

func TestBuildItineraryPools(t *testing.T) {
	ctx := context.Background()
	b, searchClient, _, _ := setupPoolBuilder()

	searchClient.On("Search", mock.Anything, "Food & Drinks attractions Calpe", search.Options{Limit: 10}).
		Return(&search.Result{Results: []types.POI{
			testPOI(1, "Tapas bar", "Food & Drinks", "bar"),
			testPOI(2, "Wine cellar", "Food & Drinks", "wine"),
		}}, nil)
	searchClient.On("Search", mock.Anything, "Beaches & Nature attractions Calpe", search.Options{Limit: 10}).
		Return(nil, errors.New("search down"))
	searchClient.On("Search", mock.Anything, "best things to do in Calpe", search.Options{Limit: 15}).
		Return(&search.Result{Results: []types.POI{
			testPOI(2, "Wine cellar again", "Food & Drinks", "wine"),
			testPOI(3, "Peñón de Ifach", "Beaches & Nature", "nature"),
		}}, nil)
	searchClient.On("Search", mock.Anything, "best rated restaurants in Calpe", search.Options{Limit: 12}).
		Return(&search.Result{Results: []types.POI{
			testPOI(4, "Marisqueria", "Food & Drinks", "restaurant"),
			testPOI(9, "Excluded", "Food & Drinks", "restaurant"),
		}}, nil)

	pools := b.BuildItineraryPools(ctx, []string{"Food & Drinks", "Beaches & Nature"}, true, ParseExclusions([]string{"poi-9"}))

	assert.Equal(t, []string{"poi-1", "poi-2", "poi-3"}, keysOfPOIs(pools.Candidates))
	assert.Equal(t, "Wine cellar", pools.Candidates[1].Name)
	assert.Equal(t, []string{"poi-1", "poi-2", "poi-4"}, keysOfPOIs(pools.Restaurants))
	searchClient.AssertExpectations(t)
}

func TestBuildItineraryPoolsWithoutMeals(t *testing.T) {
	b, searchClient, _, _ := setupPoolBuilder()
	searchClient.On("Search", mock.Anything, "best things to do in Calpe", mock.Anything).
		Return(&search.Result{Results: []types.POI{testPOI(1, "Mirador", "Active", "viewpoint")}}, nil)

	pools := b.BuildItineraryPools(context.Background(), nil, false, nil)
	assert.Len(t, pools.Candidates, 1)
	assert.Nil(t, pools.Restaurants)
	searchClient.AssertNumberOfCalls(t, "Search", 1)
}

func TestTipPOIsFromCatalog(t *testing.T) {
	b, searchClient, poiRepo, _ := setupPoolBuilder()

	poiRepo.On("FindTipCandidates", mock.Anything, mock.MatchedBy(func(f types.POIFilter) bool {
		return len(f.Categories) == 1 && f.Categories[0] == "Beaches & Nature" && f.MinRating == 4.0 && f.Limit == 50
	})).Return([]types.POI{
		testPOI(42, "Playa La Fossa", "Beaches & Nature", "beach"),
		testPOI(43, "Playa Arenal-Bol", "Beaches & Nature", "beach"),
	}, nil)

	pool := b.TipPOIs(context.Background(), "Beaches & Nature", ParseExclusions([]string{"poi-42"}))
	assert.Equal(t, []string{"poi-43"}, keysOfPOIs(pool))
	searchClient.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestTipPOIsFallsBackToSearch(t *testing.T) {
	b, searchClient, poiRepo, _ := setupPoolBuilder()
	poiRepo.On("FindTipCandidates", mock.Anything, mock.Anything).Return(nil, errors.New("catalog down"))

	lowRated := testPOI(2, "Meh", "Beaches & Nature", "beach")
	lowRated.Rating = rating(3.1)
	farAway := testPOI(3, "Far", "Beaches & Nature", "beach")
	farAway.Latitude, farAway.Longitude = 40.4168, -3.7038
	unrated := testPOI(4, "Cove", "Beaches & Nature", "beach")
	unrated.Rating = nil

	searchClient.On("Search", mock.Anything, "Beaches & Nature Calpe", search.Options{Limit: 50, Categories: []string{"Beaches & Nature"}}).
		Return(&search.Result{Results: []types.POI{
			testPOI(42, "Excluded", "Beaches & Nature", "beach"),
			lowRated,
			farAway,
			unrated,
			testPOI(5, "Shop", "Shopping", ""),
		}}, nil)

	pool := b.TipPOIs(context.Background(), "Beaches & Nature", ParseExclusions([]string{"poi-42"}))
	assert.Equal(t, []string{"poi-4"}, keysOfPOIs(pool))
}

func TestTipPOIsBothSourcesDown(t *testing.T) {
	b, searchClient, poiRepo, _ := setupPoolBuilder()
	poiRepo.On("FindTipCandidates", mock.Anything, mock.Anything).Return(nil, errors.New("catalog down"))
	searchClient.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("search down"))

	assert.Empty(t, b.TipPOIs(context.Background(), "Shopping", nil))
}

func TestDayEvents(t *testing.T) {
	b, _, _, eventRepo := setupPoolBuilder()
	day := time.Date(2025, 7, 14, 15, 0, 0, 0, time.UTC)

	eventRepo.On("FindEvents", mock.Anything, mock.MatchedBy(func(f types.EventFilter) bool {
		return f.From.Equal(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)) &&
			f.Limit == 100
	})).Return([]types.Event{testEvent(1, "Concert", day)}, nil)

	events := b.DayEvents(context.Background(), day, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "event-1", events[0].Key())
}

func TestUpcomingEventsStartAtNow(t *testing.T) {
	b, _, _, eventRepo := setupPoolBuilder()
	now := time.Date(2025, 7, 14, 16, 45, 0, 0, time.UTC)

	eventRepo.On("FindEvents", mock.Anything, mock.MatchedBy(func(f types.EventFilter) bool {
		return f.From.Equal(now) && f.To.Equal(time.Date(2025, 7, 21, 16, 45, 0, 0, time.UTC))
	})).Return([]types.Event{testEvent(2, "Sunset concert", now.Add(3*time.Hour))}, nil)

	events := b.UpcomingEvents(context.Background(), now, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "event-2", events[0].Key())
	eventRepo.AssertExpectations(t)
}

func TestUpcomingEventsDegradesOnFailure(t *testing.T) {
	b, _, _, eventRepo := setupPoolBuilder()
	eventRepo.On("FindEvents", mock.Anything, mock.MatchedBy(func(f types.EventFilter) bool {
		return f.To.Sub(f.From) == 7*24*time.Hour
	})).Return(nil, errors.New("agenda down"))

	assert.Empty(t, b.UpcomingEvents(context.Background(), time.Now(), nil))
	eventRepo.AssertExpectations(t)
}
