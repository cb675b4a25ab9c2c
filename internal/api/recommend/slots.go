package recommend

import (
	"strings"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

const (
	DurationMorning   = "morning"
	DurationAfternoon = "afternoon"
	DurationEvening   = "evening"
	DurationFullDay   = "full-day"
)

func activity(at string, tc types.TimeContext) types.TimeSlot {
	return types.TimeSlot{Time: at, SlotType: types.SlotActivity, TimeContext: tc}
}

func meal(at string, st types.SlotType) types.TimeSlot {
	return types.TimeSlot{Time: at, SlotType: st}
}

var slotTemplates = map[string][]types.TimeSlot{
	DurationMorning: {
		activity("09:00", types.ContextMorning),
		activity("10:30", types.ContextMorning),
		meal("12:30", types.SlotLunch),
	},
	DurationAfternoon: {
		meal("13:00", types.SlotLunch),
		activity("14:30", types.ContextAfternoon),
		activity("16:30", types.ContextAfternoon),
	},
	DurationEvening: {
		activity("18:00", types.ContextEvening),
		meal("19:30", types.SlotDinner),
		activity("21:00", types.ContextEvening),
	},
	DurationFullDay: {
		activity("09:30", types.ContextMorning),
		activity("11:30", types.ContextMorning),
		meal("13:00", types.SlotLunch),
		activity("14:30", types.ContextAfternoon),
		activity("16:30", types.ContextAfternoon),
		meal("19:00", types.SlotDinner),
		activity("21:00", types.ContextEvening),
	},
}

// NormalizeDuration maps unrecognised durations to full-day.
func NormalizeDuration(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if _, ok := slotTemplates[d]; ok {
		return d
	}
	return DurationFullDay
}

// SlotsFor returns a copy of the ordered slot template for a duration.
func SlotsFor(duration string) []types.TimeSlot {
	return append([]types.TimeSlot(nil), slotTemplates[NormalizeDuration(duration)]...)
}

// slotMinutes parses "HH:MM" into minutes after midnight.
func slotMinutes(hhmm string) int {
	var h, m int
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0
	}
	for _, c := range hhmm[:2] {
		h = h*10 + int(c-'0')
	}
	for _, c := range hhmm[3:] {
		m = m*10 + int(c-'0')
	}
	return h*60 + m
}
