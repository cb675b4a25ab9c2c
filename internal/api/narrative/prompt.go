package narrative

import (
	"fmt"
	"strings"
	"time"

	generativeAI "github.com/FACorreiaa/go-poi-tourism-engine/internal/api/generative_ai"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/api/poi"
	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

const (
	maxPromptNames      = 3
	maxDescriptionWords = 40
)

// ItineraryNames returns up to three distinct names of the selected items, in
// itinerary order.
func ItineraryNames(items []types.ItineraryItem) []string {
	seen := make(map[string]struct{}, maxPromptNames)
	names := make([]string, 0, maxPromptNames)
	for _, it := range items {
		name := strings.TrimSpace(it.Candidate.Name())
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
		if len(names) == maxPromptNames {
			break
		}
	}
	return names
}

// BuildItineraryPrompt returns the system and user messages for an itinerary
// introduction. Only names of items actually placed in the itinerary appear.
func BuildItineraryPrompt(lang, destination, duration string, items []types.ItineraryItem) []generativeAI.Message {
	l := localeFor(lang)
	names := ItineraryNames(items)
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	user := fmt.Sprintf(l.itineraryPrompt,
		DurationLabel(lang, duration),
		destination,
		joinNames(lang, quoted),
		l.wordCap,
	)
	return []generativeAI.Message{
		{Role: generativeAI.RoleSystem, Content: l.persona},
		{Role: generativeAI.RoleUser, Content: user},
	}
}

// BuildTipPrompt returns the system and user messages describing a single tip.
// Event dates are shown in loc.
func BuildTipPrompt(lang, destination string, loc *time.Location, c types.Candidate) []generativeAI.Message {
	l := localeFor(lang)
	user := fmt.Sprintf(l.tipPrompt,
		fmt.Sprintf("%q", c.Name()),
		destination,
		tipDetail(lang, loc, c),
		l.wordCap,
	)
	if desc := candidateDescription(lang, c); desc != "" {
		user += "\n\n" + desc
	}
	return []generativeAI.Message{
		{Role: generativeAI.RoleSystem, Content: l.persona},
		{Role: generativeAI.RoleUser, Content: user},
	}
}

// candidateDescription is the grounding text for a tip: the POI's best
// translated description or the event's short description, cleaned and cut
// to a few sentences.
func candidateDescription(lang string, c types.Candidate) string {
	var desc string
	switch c.Type {
	case types.CandidatePOI:
		desc = poi.TranslatedDescription(c.POI, NormalizeLanguage(lang))
	case types.CandidateEvent:
		if c.Event != nil {
			desc = c.Event.ShortDescription
		}
	}
	return truncateWords(Sanitize(desc), maxDescriptionWords)
}

// tipDetail is the parenthesised facts line: category and rating for a POI,
// date and location for an event.
func tipDetail(lang string, loc *time.Location, c types.Candidate) string {
	l := localeFor(lang)
	var parts []string
	switch c.Type {
	case types.CandidatePOI:
		if c.POI == nil {
			return ""
		}
		if c.POI.Category != "" {
			parts = append(parts, c.POI.Category)
		}
		if c.POI.Rating != nil {
			parts = append(parts, fmt.Sprintf("%s %.1f/5", l.ratingLabel, *c.POI.Rating))
		}
	case types.CandidateEvent:
		if c.Event == nil {
			return ""
		}
		parts = append(parts, l.eventLabel, EventDate(c.Event, loc))
		if c.Event.LocationName != "" {
			parts = append(parts, c.Event.LocationName)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, "; ") + ")"
}

// EventDate is the dd-mm-yyyy date an event is shown with, taken in loc
// (UTC when nil).
func EventDate(e *types.Event, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return e.DisplayDate().In(loc).Format("02-01-2006")
}
