package recommend

import (
	"time"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

// AssignInput is everything the slot assigner works from. Pools are not
// mutated; the assigner shuffles its own copies.
type AssignInput struct {
	Slots       []types.TimeSlot
	Buckets     Buckets
	All         []*types.POI
	Restaurants []*types.POI
	// Events must be in chronological order.
	Events       []*types.Event
	IncludeMeals bool
	Tolerance    time.Duration
	Location     *time.Location
}

var bucketOrder = []types.TimeContext{types.ContextMorning, types.ContextAfternoon, types.ContextEvening}

// Assign fills the slots in template order. No candidate key appears twice
// and slots that cannot be filled are left out.
func Assign(rng Rand, in AssignInput) []types.ItineraryItem {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	tolerance := int(in.Tolerance / time.Hour)

	restaurants := shuffled(rng, in.Restaurants)
	buckets := make(map[types.TimeContext][]*types.POI, len(bucketOrder))
	for _, tc := range bucketOrder {
		buckets[tc] = shuffled(rng, in.Buckets[tc])
	}
	all := shuffled(rng, in.All)

	used := make(map[string]struct{})
	isFree := func(key string) bool {
		_, taken := used[key]
		return key != "" && !taken
	}
	takePOI := func(pool []*types.POI) *types.POI {
		for _, p := range pool {
			if isFree(p.Key()) {
				used[p.Key()] = struct{}{}
				return p
			}
		}
		return nil
	}

	items := make([]types.ItineraryItem, 0, len(in.Slots))
	cursor := 0
	for _, slot := range in.Slots {
		switch slot.SlotType {
		case types.SlotLunch, types.SlotDinner:
			if !in.IncludeMeals {
				continue
			}
			if p := takePOI(restaurants); p != nil {
				items = append(items, types.ItineraryItem{Time: slot.Time, Type: mealItemType(slot.SlotType), Candidate: types.POICandidate(p)})
			}

		case types.SlotActivity:
			var e *types.Event
			e, cursor = nextEvent(in.Events, cursor, slotMinutes(slot.Time)/60, tolerance, loc, isFree)
			if e != nil {
				used[e.Key()] = struct{}{}
				items = append(items, types.ItineraryItem{Time: slot.Time, Type: types.ItemEvent, Candidate: types.EventCandidate(e)})
				continue
			}
			p := takePOI(buckets[slot.TimeContext])
			if p == nil {
				p = takePOI(all)
			}
			if p != nil {
				items = append(items, types.ItineraryItem{Time: slot.Time, Type: types.ItemActivity, Candidate: types.POICandidate(p)})
			}
		}
	}
	return items
}

// nextEvent advances the event cursor for one activity slot. Start hour and
// slot hour are compared; events more than tolerance hours before the slot
// are passed over for good, an event more than tolerance hours after it stays
// at the cursor for a later slot. The cursor never moves backwards.
func nextEvent(events []*types.Event, cursor, slotHour, tolerance int, loc *time.Location, isFree func(string) bool) (*types.Event, int) {
	for cursor < len(events) {
		e := events[cursor]
		if !isFree(e.Key()) {
			cursor++
			continue
		}
		start := e.StartsAt.In(loc)
		diff := start.Hour() - slotHour
		switch {
		case diff < -tolerance:
			cursor++
		case diff > tolerance:
			return nil, cursor
		default:
			return e, cursor + 1
		}
	}
	return nil, cursor
}

func mealItemType(st types.SlotType) types.ItemType {
	if st == types.SlotDinner {
		return types.ItemDinner
	}
	return types.ItemLunch
}

func shuffled[T any](rng Rand, s []T) []T {
	out := append([]T(nil), s...)
	shuffle(rng, out)
	return out
}
