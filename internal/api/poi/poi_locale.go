package poi

import (
	"strings"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

// TranslatedDescription returns the best available long description for lang:
// the language-specific enriched field, then the English enriched field, then
// the raw description. Unsupported languages resolve like "en".
func TranslatedDescription(p *types.POI, lang string) string {
	if p == nil {
		return ""
	}
	var localized string
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "nl":
		localized = p.EnrichedDescriptionNL
	case "de":
		localized = p.EnrichedDescriptionDE
	case "es":
		localized = p.EnrichedDescriptionES
	case "sv":
		localized = p.EnrichedDescriptionSV
	case "pl":
		localized = p.EnrichedDescriptionPL
	}
	for _, candidate := range []string{localized, p.EnrichedDescription, p.Description} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}
