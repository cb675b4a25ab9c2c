package types

import "fmt"

// POI is a catalog place as read from the POI catalog or returned by the semantic search service.
type POI struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	POIType     string   `json:"poi_type,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"review_count"`

	// OpeningHours keeps whatever shape the source delivered: a JSON string,
	// a per-day map or an array of day objects.
	OpeningHours any `json:"opening_hours,omitempty"`

	Description           string `json:"description,omitempty"`
	EnrichedDescription   string `json:"enriched_detail_description,omitempty"`
	EnrichedDescriptionNL string `json:"enriched_detail_description_nl,omitempty"`
	EnrichedDescriptionDE string `json:"enriched_detail_description_de,omitempty"`
	EnrichedDescriptionES string `json:"enriched_detail_description_es,omitempty"`
	EnrichedDescriptionSV string `json:"enriched_detail_description_sv,omitempty"`
	EnrichedDescriptionPL string `json:"enriched_detail_description_pl,omitempty"`
	ThumbnailURL          string `json:"thumbnail_url,omitempty"`

	// Tags is derived once during pool construction and never serialized.
	Tags TagSet `json:"-"`
}

// Key is the identity used for uniqueness and exclusion checks.
func (p *POI) Key() string {
	return fmt.Sprintf("poi-%d", p.ID)
}

// HasIdentity reports whether the POI carries a usable id.
func (p *POI) HasIdentity() bool {
	return p != nil && p.ID > 0
}

// POIFilter is the catalog query used by the tip path.
type POIFilter struct {
	Categories   []string
	MinRating    float64
	ReferenceLat float64
	ReferenceLon float64
	MaxDistance  float64 // km
	Limit        int
}
