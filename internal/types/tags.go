package types

import "strings"

// TagSet is the lower-cased token set derived from a POI's category,
// subcategory and type fields.
type TagSet map[string]struct{}

// NewTagSet builds a tag set from free-form classification fields. Each field
// is kept whole and also split on separators so "Food & Drinks" yields
// "food & drinks", "food" and "drinks".
func NewTagSet(fields ...string) TagSet {
	tags := make(TagSet)
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		tags[f] = struct{}{}
		for _, tok := range strings.FieldsFunc(f, isTagSeparator) {
			tags[tok] = struct{}{}
		}
	}
	return tags
}

func isTagSeparator(r rune) bool {
	switch r {
	case ' ', '&', ',', '/', '-', '_', ';', '|', '(', ')':
		return true
	}
	return false
}

// Has reports exact membership.
func (t TagSet) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// HasAny reports exact membership of any of tags.
func (t TagSet) HasAny(tags ...string) bool {
	for _, tag := range tags {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any tag contains one of the keywords as a
// substring, so "bakery" matches a "bakery & cafe" subcategory and "cafe"
// matches "cafetaria".
func (t TagSet) ContainsAny(keywords ...string) bool {
	for tag := range t {
		for _, kw := range keywords {
			if strings.Contains(tag, kw) {
				return true
			}
		}
	}
	return false
}
