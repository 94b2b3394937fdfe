package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryLabels is the fixed label set offered to the model. Stored values
// are unconstrained; canonicalization only smooths casing drift in responses.
var categoryLabels = []string{"Beads", "Stools", "Bowls", "Fans", "Totebags", "Home Decor"}

var titleCaser = cases.Title(language.English)

// Categories returns the allowed category label set.
func Categories() []string {
	out := make([]string, len(categoryLabels))
	copy(out, categoryLabels)
	return out
}

// CanonicalCategory maps a model-supplied label onto the fixed set,
// tolerating case drift ("home decor" -> "Home Decor"). Unknown labels are
// returned trimmed with ok=false; the store accepts them anyway.
func CanonicalCategory(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	titled := titleCaser.String(trimmed)
	for _, label := range categoryLabels {
		if strings.EqualFold(label, titled) {
			return label, true
		}
	}
	return trimmed, false
}
