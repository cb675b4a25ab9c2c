package recommend

import (
	"time"

	"github.com/FACorreiaa/go-poi-tourism-engine/config"
)

// DefaultAllowedCategories are the tourist-facing catalog categories tips and
// interests are drawn from.
var DefaultAllowedCategories = []string{
	"Beaches & Nature",
	"Culture & History",
	"Food & Drinks",
	"Active",
	"Recreation",
	"Shopping",
}

// Config holds the composition parameters.
type Config struct {
	Destination       string
	ReferenceLat      float64
	ReferenceLon      float64
	MaxDistanceKm     float64
	MinRating         float64
	AllowedCategories []string
	// POIWeight is the probability of drawing a tip from the POI pool.
	POIWeight          float64
	InterestSearchCap  int
	GeneralSearchCap   int
	RestaurantCap      int
	TipCatalogLimit    int
	TipEventWindowDays int
	EventLimit         int
	EventSlotTolerance time.Duration
	Location           *time.Location
}

func DefaultConfig() Config {
	return Config{
		Destination:        "Calpe",
		ReferenceLat:       38.6447,
		ReferenceLon:       0.0445,
		MaxDistanceKm:      10,
		MinRating:          4.0,
		AllowedCategories:  DefaultAllowedCategories,
		POIWeight:          0.6,
		InterestSearchCap:  10,
		GeneralSearchCap:   15,
		RestaurantCap:      12,
		TipCatalogLimit:    50,
		TipEventWindowDays: 7,
		EventLimit:         100,
		EventSlotTolerance: 2 * time.Hour,
		Location:           time.UTC,
	}
}

// ConfigFromApp overlays the recommend section of the application config on
// the defaults. Zero values keep the default.
func ConfigFromApp(cfg *config.Config) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	r := cfg.Recommend
	if r.Destination != "" {
		c.Destination = r.Destination
	}
	if r.ReferenceLat != 0 || r.ReferenceLon != 0 {
		c.ReferenceLat, c.ReferenceLon = r.ReferenceLat, r.ReferenceLon
	}
	if r.MaxDistanceKm > 0 {
		c.MaxDistanceKm = r.MaxDistanceKm
	}
	if r.MinRating > 0 {
		c.MinRating = r.MinRating
	}
	if len(r.AllowedCategories) > 0 {
		c.AllowedCategories = r.AllowedCategories
	}
	if r.POIWeight > 0 && r.POIWeight <= 1 {
		c.POIWeight = r.POIWeight
	}
	if r.InterestSearchCap > 0 {
		c.InterestSearchCap = r.InterestSearchCap
	}
	if r.GeneralSearchCap > 0 {
		c.GeneralSearchCap = r.GeneralSearchCap
	}
	if r.RestaurantCap > 0 {
		c.RestaurantCap = r.RestaurantCap
	}
	if r.TipCatalogLimit > 0 {
		c.TipCatalogLimit = r.TipCatalogLimit
	}
	if r.TipEventWindowDays > 0 {
		c.TipEventWindowDays = r.TipEventWindowDays
	}
	if r.EventLimit > 0 {
		c.EventLimit = r.EventLimit
	}
	if r.EventSlotTolerance > 0 {
		c.EventSlotTolerance = time.Duration(r.EventSlotTolerance) * time.Hour
	}
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			c.Location = loc
		}
	}
	return c
}
