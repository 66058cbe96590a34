package planner

import (
	"nutriplan/internal/constraints"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// Candidate pairs a corpus recipe with the warning findings evaluated for a
// specific profile. Warnings travel in this side-table so corpus objects stay
// immutable and safely shareable across concurrent generation calls.
type Candidate struct {
	Recipe   recipe.Recipe
	Warnings []constraints.Finding
}

// FilterRecipes removes recipes the profile must never see (allergy overlap,
// dietary incompatibility) and annotates the survivors with health and
// medication warnings. Output preserves input order.
//
// An allergy block is final: no warning, scoring weight or fallback ever
// reintroduces a blocked recipe.
func FilterRecipes(recipes []recipe.Recipe, prof profile.Profile) []Candidate {
	var out []Candidate
	for _, rec := range recipes {
		if len(constraints.CheckAllergyViolations(rec, prof)) > 0 {
			continue
		}
		if !dietCompatible(prof.DietaryPreference, rec.DietaryTypes) {
			continue
		}

		warnings := constraints.HealthFindings(rec, prof)
		warnings = append(warnings, constraints.MedicationFindings(rec, prof)...)

		out = append(out, Candidate{Recipe: rec, Warnings: warnings})
	}
	return out
}

// dietCompatible applies the one-directional preference table: a stricter
// preference accepts only recipes declaring an equally strict or stricter
// dietary type.
func dietCompatible(pref string, dietary []string) bool {
	has := func(tag string) bool {
		for _, d := range dietary {
			if d == tag {
				return true
			}
		}
		return false
	}

	switch pref {
	case profile.PrefVegan:
		return has(recipe.DietVegan)
	case profile.PrefVegetarian:
		return has(recipe.DietVegetarian) || has(recipe.DietVegan)
	case profile.PrefEggetarian:
		return has(recipe.DietVegetarian) || has(recipe.DietVegan) || has(recipe.DietEggetarian)
	case profile.PrefPescatarian:
		return !has(recipe.DietNonVeg) || has(recipe.DietPescatarian)
	default:
		// non-veg (and an unset preference) accepts everything
		return true
	}
}
