package poi

import (
	"math"
	"strings"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

// DistanceKm calculates the great-circle distance between two coordinates
// using the Haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// ApplyTipFilters re-applies the catalog's tip constraints in process. It is
// used when POIs come from semantic search instead of the catalog query.
// POIs without coordinates are kept; the search index is already scoped to the destination.
func ApplyTipFilters(pois []types.POI, filter types.POIFilter) []types.POI {
	var filtered []types.POI
	for _, p := range pois {
		if !p.HasIdentity() {
			continue
		}
		if p.Rating != nil && *p.Rating < filter.MinRating {
			continue
		}
		if len(filter.Categories) > 0 && !categoryAllowed(p.Category, filter.Categories) {
			continue
		}
		if filter.MaxDistance > 0 && (p.Latitude != 0 || p.Longitude != 0) {
			if DistanceKm(filter.ReferenceLat, filter.ReferenceLon, p.Latitude, p.Longitude) > filter.MaxDistance {
				continue
			}
		}
		if IsPermanentlyClosed(p.OpeningHours) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func categoryAllowed(category string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(category), a) {
			return true
		}
	}
	return false
}
