package poi

import "github.com/FACorreiaa/go-poi-tourism-engine/internal/types"

// restaurantKeywords tag a POI as eligible for lunch and dinner slots.
var restaurantKeywords = []string{"food", "restaurant"}

// WithTags returns a copy of p carrying its derived tag set.
func WithTags(p types.POI) types.POI {
	p.Tags = types.NewTagSet(p.Category, p.Subcategory, p.POIType)
	return p
}

// TagsOf returns p's tag set, deriving it when the pool builder has not.
func TagsOf(p *types.POI) types.TagSet {
	if p.Tags != nil {
		return p.Tags
	}
	return types.NewTagSet(p.Category, p.Subcategory, p.POIType)
}

// IsRestaurant reports whether the POI's category or subcategory marks it as a place to eat.
func IsRestaurant(p *types.POI) bool {
	return TagsOf(p).ContainsAny(restaurantKeywords...)
}
