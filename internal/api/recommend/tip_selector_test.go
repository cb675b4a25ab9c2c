package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

func TestEffectiveInterests(t *testing.T) {
	allowed := DefaultAllowedCategories

	assert.Equal(t, allowed, EffectiveInterests(nil, allowed))
	assert.Equal(t, allowed, EffectiveInterests([]string{"Casinos", " "}, allowed))
	assert.Equal(t,
		[]string{"Beaches & Nature", "Shopping"},
		EffectiveInterests([]string{"shopping", "BEACHES & NATURE", "Casinos"}, allowed),
	)

	got := EffectiveInterests(nil, allowed)
	got[0] = "mutated"
	assert.Equal(t, "Beaches & Nature", allowed[0])
}

func TestTodaysInterestRotatesByDayOfYear(t *testing.T) {
	interests := DefaultAllowedCategories
	jan1 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, interests[1], TodaysInterest(jan1, interests))
	assert.Equal(t, interests[2], TodaysInterest(jan1.AddDate(0, 0, 1), interests))
	assert.Equal(t, TodaysInterest(jan1, interests), TodaysInterest(jan1.Add(10*time.Hour), interests))
	assert.Equal(t, "Shopping", TodaysInterest(jan1, []string{"Shopping"}))
	assert.Empty(t, TodaysInterest(jan1, nil))
}

func TestSelectTipBranches(t *testing.T) {
	pois := poiPtrs(testPOI(1, "A", "Shopping", ""), testPOI(2, "B", "Shopping", ""))
	e := testEvent(7, "Fiesta", time.Date(2025, 8, 1, 20, 0, 0, 0, time.UTC))
	events := []*types.Event{&e}

	c, ok := SelectTip(fixedRand{u: 0.1}, pois, events, 0.6)
	require.True(t, ok)
	assert.Equal(t, "poi-2", c.Key())

	c, ok = SelectTip(fixedRand{u: 0.7}, pois, events, 0.6)
	require.True(t, ok)
	assert.Equal(t, "event-7", c.Key())

	c, ok = SelectTip(fixedRand{u: 0.7}, pois, nil, 0.6)
	require.True(t, ok)
	assert.Equal(t, types.CandidatePOI, c.Type, "empty event pool falls back to POIs")

	c, ok = SelectTip(fixedRand{u: 0.1}, nil, events, 0.6)
	require.True(t, ok)
	assert.Equal(t, types.CandidateEvent, c.Type, "empty POI pool falls back to events")

	_, ok = SelectTip(fixedRand{u: 0.1}, nil, nil, 0.6)
	assert.False(t, ok)
}

func TestSelectTipWeight(t *testing.T) {
	pois := poiPtrs(testPOI(1, "A", "Shopping", ""))
	e := testEvent(7, "Fiesta", time.Now())
	events := []*types.Event{&e}

	rng := NewRand(2025)
	const draws = 10000
	poiCount := 0
	for i := 0; i < draws; i++ {
		c, ok := SelectTip(rng, pois, events, 0.6)
		require.True(t, ok)
		if c.Type == types.CandidatePOI {
			poiCount++
		}
	}
	assert.InDelta(t, 0.6, float64(poiCount)/draws, 0.03)
}
