package constraints

import (
	"testing"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

func TestCheckAllergyViolations(t *testing.T) {
	rec := recipe.Recipe{
		ID:        "r1",
		Name:      "Cheese Omelette",
		Allergens: []string{"Dairy", " eggs ", ""},
	}

	t.Run("Overlap", func(t *testing.T) {
		prof := profile.Profile{Allergies: []string{"dairy", "peanuts"}}
		findings := CheckAllergyViolations(rec, prof)
		if len(findings) != 1 {
			t.Fatalf("Expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Severity != SeverityBlock {
			t.Errorf("Expected severity block, got %s", f.Severity)
		}
		if f.Code != "allergy:dairy" {
			t.Errorf("Expected code 'allergy:dairy', got '%s'", f.Code)
		}
	})

	t.Run("MultipleOverlaps", func(t *testing.T) {
		prof := profile.Profile{Allergies: []string{"EGGS", "dairy"}}
		findings := CheckAllergyViolations(rec, prof)
		if len(findings) != 2 {
			t.Fatalf("Expected 2 findings, got %d", len(findings))
		}
	})

	t.Run("NoOverlap", func(t *testing.T) {
		prof := profile.Profile{Allergies: []string{"peanuts"}}
		if findings := CheckAllergyViolations(rec, prof); len(findings) != 0 {
			t.Errorf("Expected no findings, got %v", findings)
		}
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		if findings := CheckAllergyViolations(rec, profile.Profile{}); len(findings) != 0 {
			t.Errorf("Expected no findings for empty allergy list, got %v", findings)
		}
		if findings := CheckAllergyViolations(recipe.Recipe{}, profile.Profile{Allergies: []string{"dairy"}}); len(findings) != 0 {
			t.Errorf("Expected no findings for allergen-free recipe, got %v", findings)
		}
	})

	t.Run("WhitespaceAndCaseInsensitive", func(t *testing.T) {
		prof := profile.Profile{Allergies: []string{"  DAIRY  "}}
		findings := CheckAllergyViolations(rec, prof)
		if len(findings) != 1 {
			t.Fatalf("Expected 1 finding for whitespace/case variant, got %d", len(findings))
		}
	})
}
