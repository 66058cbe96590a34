package constraints

import (
	"fmt"
	"strings"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// CheckAllergyViolations returns one blocking finding per allergen shared
// between the recipe and the profile. This is the sole exclusionary safety
// signal in the pipeline; it is never relaxed or bypassed.
func CheckAllergyViolations(rec recipe.Recipe, prof profile.Profile) []Finding {
	recipeAllergens := normalizeList(rec.Allergens)
	userAllergies := normalizeLookup(prof.Allergies)
	if len(recipeAllergens) == 0 || len(userAllergies) == 0 {
		return nil
	}

	var findings []Finding
	for _, allergen := range recipeAllergens {
		if !userAllergies[allergen] {
			continue
		}
		findings = append(findings, Finding{
			Type:     "allergy",
			Severity: SeverityBlock,
			Code:     "allergy:" + allergen,
			Message:  fmt.Sprintf("contains %s, which is in your allergy list", allergen),
		})
	}
	return findings
}

// normalizeList lowercases, trims, drops empties and dedupes, keeping order.
func normalizeList(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// normalizeLookup lowercases, trims and drops empties into a membership set.
func normalizeLookup(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}
