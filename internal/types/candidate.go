package types

// CandidateType discriminates the Candidate union.
type CandidateType string

const (
	CandidatePOI   CandidateType = "poi"
	CandidateEvent CandidateType = "event"
)

// Candidate is a POI or an Event under consideration for an itinerary slot or a tip.
type Candidate struct {
	Type  CandidateType `json:"type"`
	POI   *POI          `json:"poi,omitempty"`
	Event *Event        `json:"event,omitempty"`
}

func POICandidate(p *POI) Candidate {
	return Candidate{Type: CandidatePOI, POI: p}
}

func EventCandidate(e *Event) Candidate {
	return Candidate{Type: CandidateEvent, Event: e}
}

// Key returns the identity shared by exclusion lists and uniqueness checks.
// An empty key means the candidate has no identity.
func (c Candidate) Key() string {
	switch c.Type {
	case CandidatePOI:
		if c.POI.HasIdentity() {
			return c.POI.Key()
		}
	case CandidateEvent:
		if c.Event.HasIdentity() {
			return c.Event.Key()
		}
	}
	return ""
}

// Name is the display name used in prompts.
func (c Candidate) Name() string {
	switch c.Type {
	case CandidatePOI:
		if c.POI != nil {
			return c.POI.Name
		}
	case CandidateEvent:
		if c.Event != nil {
			return c.Event.Title
		}
	}
	return ""
}
