package types

import (
	"fmt"
	"time"
)

// Event is a calendar (agenda) entry read from the catalog.
type Event struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description,omitempty"`
	LocationName     string     `json:"location_name,omitempty"`
	StartsAt         time.Time  `json:"starts_at"`
	FirstOccurrence  *time.Time `json:"first_occurrence,omitempty"`
	// DistanceKm is measured from the destination reference point; nil means unknown and counts as in range.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func (e *Event) Key() string {
	return fmt.Sprintf("event-%d", e.ID)
}

func (e *Event) HasIdentity() bool {
	return e != nil && e.ID > 0
}

// DisplayDate prefers the first occurrence when the event repeats.
func (e *Event) DisplayDate() time.Time {
	if e.FirstOccurrence != nil && !e.FirstOccurrence.IsZero() {
		return *e.FirstOccurrence
	}
	return e.StartsAt
}

// InRange reports whether the event lies within maxKm of the reference point.
func (e *Event) InRange(maxKm float64) bool {
	return e.DistanceKm == nil || *e.DistanceKm <= maxKm
}

// EventFilter selects events in a date window.
type EventFilter struct {
	From         time.Time // inclusive
	To           time.Time // exclusive
	ReferenceLat float64
	ReferenceLon float64
	Limit        int
}
