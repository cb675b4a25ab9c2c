package types

// SlotType is the kind of placeholder in a day template.
type SlotType string

const (
	SlotActivity SlotType = "activity"
	SlotLunch    SlotType = "lunch"
	SlotDinner   SlotType = "dinner"
)

// TimeContext is the time-of-day affinity of an activity slot.
type TimeContext string

const (
	ContextMorning   TimeContext = "morning"
	ContextAfternoon TimeContext = "afternoon"
	ContextEvening   TimeContext = "evening"
)

// ItemType is the kind of an emitted itinerary item.
type ItemType string

const (
	ItemActivity ItemType = "activity"
	ItemLunch    ItemType = "lunch"
	ItemDinner   ItemType = "dinner"
	ItemEvent    ItemType = "event"
)

// TimeSlot is one fixed placeholder of a day template.
type TimeSlot struct {
	Time        string      `json:"time"` // HH:MM
	SlotType    SlotType    `json:"slotType"`
	TimeContext TimeContext `json:"timeContext,omitempty"`
}

// ItineraryItem is a filled slot.
type ItineraryItem struct {
	Time      string    `json:"time"`
	Type      ItemType  `json:"type"`
	Candidate Candidate `json:"item"`
}

// ItineraryRequest is the inbound itinerary request.
type ItineraryRequest struct {
	Date         string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Interests    []string `json:"interests" validate:"max=10,dive,required,max=100"`
	Duration     string   `json:"duration" validate:"max=32"`
	Language     string   `json:"language" validate:"max=8"`
	IncludeMeals *bool    `json:"includeMeals,omitempty"`
	ExcludeIDs   []string `json:"excludeIds" validate:"max=500,dive,max=64"`
}

// ItineraryResponse is the produced itinerary shape.
type ItineraryResponse struct {
	Date           string          `json:"date"`
	Duration       string          `json:"duration"`
	Description    string          `json:"description"`
	Itinerary      []ItineraryItem `json:"itinerary"`
	TotalStops     int             `json:"totalStops"`
	EventsIncluded int             `json:"eventsIncluded"`
	HasEvents      bool            `json:"hasEvents"`
}

// TipRequest is the inbound tip-of-the-day request.
type TipRequest struct {
	Language   string   `json:"language" validate:"max=8"`
	Interests  []string `json:"interests" validate:"max=20,dive,required,max=100"`
	ExcludeIDs []string `json:"excludeIds" validate:"max=500,dive,max=64"`
}

// TipResponse is the produced tip shape. Item is nil when Exhausted is set.
type TipResponse struct {
	Title          string     `json:"title"`
	ItemType       string     `json:"itemType,omitempty"`
	POI            *POI       `json:"poi"`
	Event          *Event     `json:"event"`
	Item           *Candidate `json:"item"`
	TipDescription string     `json:"tipDescription"`
	Category       string     `json:"category"`
	Date           string     `json:"date"`
	TipID          string     `json:"tipId"`
	Exhausted      bool       `json:"exhausted,omitempty"`
}
