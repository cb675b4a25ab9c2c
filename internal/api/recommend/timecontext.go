package recommend

import (
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/poi"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

type contextRule struct {
	keywords   []string
	categories []string
}

var contextRules = map[types.TimeContext]contextRule{
	types.ContextMorning: {
		keywords:   []string{"bakery", "cafe", "coffee", "breakfast", "beach", "hiking", "market", "park", "nature", "viewpoint", "trail"},
		categories: []string{"beach", "nature", "active"},
	},
	types.ContextAfternoon: {
		keywords:   []string{"museum", "gallery", "shopping", "monument", "castle", "church", "historic", "tour", "culture", "zoo", "aquarium"},
		categories: []string{"culture", "shopping", "recreation"},
	},
	types.ContextEvening: {
		keywords:   []string{"restaurant", "bar", "nightlife", "pub", "club", "theatre", "cinema", "tapas", "wine", "cocktail", "food"},
		categories: []string{"food", "nightlife"},
	},
}

// Buckets holds the time-context affinity sets. A POI may appear in several.
type Buckets map[types.TimeContext][]*types.POI

// InContext reports whether p has affinity with tc.
func InContext(p *types.POI, tc types.TimeContext) bool {
	rule, ok := contextRules[tc]
	if !ok {
		return false
	}
	tags := poi.TagsOf(p)
	return tags.ContainsAny(rule.keywords...) || tags.HasAny(rule.categories...)
}

// Classify partitions pois into the three time-context buckets, keeping input order.
func Classify(pois []*types.POI) Buckets {
	b := make(Buckets, len(contextRules))
	for _, p := range pois {
		for tc := range contextRules {
			if InContext(p, tc) {
				b[tc] = append(b[tc], p)
			}
		}
	}
	return b
}
