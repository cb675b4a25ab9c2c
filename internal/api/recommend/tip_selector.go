package recommend

import (
	"strings"
	"time"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

// EffectiveInterests intersects the requested interests with the allow-list,
// case-insensitively, keeping allow-list spelling and order. No usable
// interest means the whole allow-list.
func EffectiveInterests(requested, allowed []string) []string {
	want := make(map[string]struct{}, len(requested))
	for _, r := range requested {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			want[r] = struct{}{}
		}
	}
	var out []string
	for _, a := range allowed {
		if _, ok := want[strings.ToLower(a)]; ok {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), allowed...)
	}
	return out
}

// TodaysInterest rotates through interests by day of year, so every caller
// with the same list gets the same interest on the same date.
func TodaysInterest(date time.Time, interests []string) string {
	if len(interests) == 0 {
		return ""
	}
	return interests[date.YearDay()%len(interests)]
}

// SelectTip makes the weighted draw between the POI and event pools. With
// probability poiWeight a POI is drawn when any exist; otherwise an event,
// falling back to the other pool when one side is empty. It reports false
// when both pools are empty.
func SelectTip(rng Rand, pois []*types.POI, events []*types.Event, poiWeight float64) (types.Candidate, bool) {
	u := rng.Float64()
	switch {
	case u < poiWeight && len(pois) > 0:
		return types.POICandidate(pois[rng.IntN(len(pois))]), true
	case len(events) > 0:
		return types.EventCandidate(events[rng.IntN(len(events))]), true
	case len(pois) > 0:
		return types.POICandidate(pois[rng.IntN(len(pois))]), true
	}
	return types.Candidate{}, false
}
