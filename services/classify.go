package services

import "strings"

// typeRule maps a lowercase substring to a canonical cabinet type. Rules are
// checked in order, most specific first, so "sliding wardrobe" claims its
// rows before the generic "wardrobe" rule does.
type typeRule struct {
	match     string
	canonical string
}

var typeRules = []typeRule{
	{"sliding wardrobe", "Sliding Wardrobes"},
	{"wardrobe", "Hinged Wardrobes"},
	{"open shelf", "Open Shelf & Panels"},
	{"panel", "Open Shelf & Panels"},
	{"mid tall", "Tall Cabinets"},
	{"suspended", "Suspended Cabinets"},
	{"skirt", "Skirting"},
	{"loft", "Lofts"},
	{"pooja", "Pooja Units"},
	{"filler", "Fillers"},
	{"base", "Base Cabinets"},
	{"wall", "Wall Cabinets"},
	{"tall", "Tall Cabinets"},
}

// ClassifyItemDescription maps a free-text line-item description to its
// canonical cabinet type. ok is false when no rule matches; such rows cannot
// be grouped by type and the caller drops them.
func ClassifyItemDescription(text string) (canonical string, ok bool) {
	lower := strings.ToLower(text)
	for _, r := range typeRules {
		if strings.Contains(lower, r.match) {
			return r.canonical, true
		}
	}
	return "", false
}

// CanonicalTypeName normalizes a cabinet-type heading from a materials block
// or stats table. Unrecognized headings are kept verbatim (minus a trailing
// colon) rather than dropped: an unusual category is still a category.
func CanonicalTypeName(heading string) string {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(heading), ":"))
	if canonical, ok := ClassifyItemDescription(trimmed); ok {
		return canonical
	}
	return trimmed
}
