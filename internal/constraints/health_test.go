package constraints

import (
	"testing"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

func hasCode(findings []Finding, code string) bool {
	for _, f := range findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestHealthFindingsPregnancy(t *testing.T) {
	rec := recipe.Recipe{
		Name:        "Salmon Sushi Bowl",
		Ingredients: []string{"150 g sushi-grade salmon", "1.5 cups sushi rice"},
		Tags:        []string{"sushi", "raw"},
	}

	prof := profile.Profile{IsPregnant: true}
	findings := HealthFindings(rec, prof)
	if !hasCode(findings, "health:pregnancy:sushi") {
		t.Errorf("Expected sushi pregnancy warning, got %v", findings)
	}

	// Not pregnant, no conditions: nothing fires.
	if f := HealthFindings(rec, profile.Profile{}); len(f) != 0 {
		t.Errorf("Expected no findings without conditions, got %v", f)
	}

	// Breastfeeding triggers the same keyword battery.
	if f := HealthFindings(rec, profile.Profile{IsBreastfeeding: true}); !hasCode(f, "health:pregnancy:sushi") {
		t.Errorf("Expected sushi warning for breastfeeding, got %v", f)
	}

	// One warning per matched keyword.
	multi := recipe.Recipe{
		Name:        "Tuna Tartare",
		Ingredients: []string{"1 raw egg", "100 g tuna"},
	}
	f := HealthFindings(multi, prof)
	if !hasCode(f, "health:pregnancy:tuna") || !hasCode(f, "health:pregnancy:raw-egg") {
		t.Errorf("Expected tuna and raw-egg warnings, got %v", f)
	}
}

func TestHealthFindingsConditions(t *testing.T) {
	t.Run("PCOSKeyword", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Kheer", Ingredients: []string{"2 tsp sugar", "1 cup milk"}}
		prof := profile.Profile{HealthConditions: []string{"pcos"}}
		if f := HealthFindings(rec, prof); !hasCode(f, "health:pcos:sugar") {
			t.Errorf("Expected PCOS sugar warning, got %v", f)
		}
	})

	t.Run("PCOSDessertTag", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Fruit Custard", Ingredients: []string{"1 apple"}, Tags: []string{"dessert"}}
		prof := profile.Profile{HealthConditions: []string{"PCOS"}}
		if f := HealthFindings(rec, prof); !hasCode(f, "health:pcos:sugar") {
			t.Errorf("Expected PCOS warning from dessert tag, got %v", f)
		}
	})

	t.Run("Diabetes", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Fried Rice", Ingredients: []string{"2 cups white rice"}}
		prof := profile.Profile{HealthConditions: []string{"diabetes_type2"}}
		if f := HealthFindings(rec, prof); !hasCode(f, "health:diabetes:refined-carbs") {
			t.Errorf("Expected diabetes warning, got %v", f)
		}
	})

	t.Run("Hypertension", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Stir Fry", Ingredients: []string{"2 tbsp soy sauce"}}
		prof := profile.Profile{HealthConditions: []string{"hypertension"}}
		if f := HealthFindings(rec, prof); !hasCode(f, "health:hypertension:sodium") {
			t.Errorf("Expected hypertension warning, got %v", f)
		}
	})

	t.Run("AnemiaAbsence", func(t *testing.T) {
		prof := profile.Profile{HealthConditions: []string{"anemia"}}

		noIron := recipe.Recipe{Name: "Plain Toast", Ingredients: []string{"2 slices white bread", "1 tbsp butter"}}
		if f := HealthFindings(noIron, prof); !hasCode(f, "health:anemia:low-iron") {
			t.Errorf("Expected anemia warning for iron-free recipe, got %v", f)
		}

		withIron := recipe.Recipe{Name: "Palak Paneer", Ingredients: []string{"3 cups spinach", "150 g paneer"}}
		if f := HealthFindings(withIron, prof); hasCode(f, "health:anemia:low-iron") {
			t.Errorf("Expected no anemia warning when spinach present, got %v", f)
		}
	})

	t.Run("Additive", func(t *testing.T) {
		rec := recipe.Recipe{
			Name:        "Sweet Soy Noodles",
			Ingredients: []string{"2 tbsp sugar", "2 tbsp soy sauce", "200 g noodles"},
		}
		prof := profile.Profile{HealthConditions: []string{"pcos", "hypertension", "diabetes_type1"}}
		f := HealthFindings(rec, prof)
		if len(f) != 3 {
			t.Errorf("Expected 3 independent warnings, got %d: %v", len(f), f)
		}
	})

	t.Run("NeverBlocks", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Sugar Bomb", Ingredients: []string{"1 cup sugar", "1 cup salt"}}
		prof := profile.Profile{HealthConditions: []string{"pcos", "hypertension"}}
		for _, f := range HealthFindings(rec, prof) {
			if f.Severity != SeverityWarn {
				t.Errorf("Health finding %s must be warn severity, got %s", f.Code, f.Severity)
			}
		}
	})
}
