package kg

import "strings"

// entityColors maps a normalized entity type to its display color.
var entityColors = map[string]string{
	"COURT":        "#bbabf2",
	"PETITIONER":   "#f570ea",
	"RESPONDENT":   "#cdee81",
	"JUDGE":        "#fdd8a5",
	"LAWYER":       "#f9d380",
	"WITNESS":      "violet",
	"STATUTE":      "#faea99",
	"PROVISION":    "yellow",
	"CASE_NUMBER":  "#fbb1cf",
	"PRECEDENT":    "#fad6d6",
	"DATE":         "#b1ecf7",
	"OTHER_PERSON": "#b0f6a2",
	"ORG":          "#a57db5",
	"GPE":          "#7fdbd4",
}

// NeutralColor is the fallback for unknown or absent entity types.
const NeutralColor = "#6b7280"

// NormalizeEntityType uppercases a type tag and replaces spaces and hyphens
// with underscores so "court", "Court" and "COURT" resolve identically.
func NormalizeEntityType(entityType string) string {
	t := strings.TrimSpace(entityType)
	t = strings.Join(strings.Fields(t), "_")
	t = strings.ReplaceAll(t, "-", "_")
	return strings.ToUpper(t)
}

// ColorFor resolves the display color for an entity type, falling back to
// NeutralColor for unknown types.
func ColorFor(entityType string) string {
	if c, ok := entityColors[NormalizeEntityType(entityType)]; ok {
		return c
	}
	return NeutralColor
}

// EntityTypes returns the known entity type tags in no particular order.
func EntityTypes() []string {
	types := make([]string, 0, len(entityColors))
	for t := range entityColors {
		types = append(types, t)
	}
	return types
}
