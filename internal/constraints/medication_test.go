package constraints

import (
	"testing"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

func TestMedicationFindings(t *testing.T) {
	t.Run("StatinGrapefruit", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Citrus Salad", Ingredients: []string{"1 grapefruit", "1 orange"}}
		prof := profile.Profile{Medications: "Atorvastatin 20mg daily"}
		f := MedicationFindings(rec, prof)
		if len(f) != 1 {
			t.Fatalf("Expected 1 finding, got %d", len(f))
		}
		if f[0].Code != "medication:statin:grapefruit:grapefruit" {
			t.Errorf("Unexpected code %s", f[0].Code)
		}
		if f[0].Severity != SeverityWarn {
			t.Errorf("Medication findings must warn, got %s", f[0].Severity)
		}
	})

	t.Run("WarfarinGreens", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Green Smoothie", Ingredients: []string{"2 cups spinach", "1 cup kale"}}
		prof := profile.Profile{Medications: "warfarin"}
		f := MedicationFindings(rec, prof)
		if len(f) != 2 {
			t.Fatalf("Expected a finding per interacting food, got %d: %v", len(f), f)
		}
	})

	t.Run("CoumadinAlias", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Saag", Ingredients: []string{"3 cups spinach"}}
		prof := profile.Profile{Medications: "Coumadin 5mg"}
		if f := MedicationFindings(rec, prof); len(f) != 1 {
			t.Errorf("Expected coumadin to match the warfarin rule, got %v", f)
		}
	})

	t.Run("LevothyroxineSoy", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Tofu Scramble", Ingredients: []string{"200 g firm tofu"}}
		prof := profile.Profile{Medications: "levothyroxine 50mcg"}
		if f := MedicationFindings(rec, prof); len(f) != 1 {
			t.Errorf("Expected levothyroxine/tofu warning, got %v", f)
		}
	})

	t.Run("DrugWithoutFood", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Plain Rice", Ingredients: []string{"1 cup rice"}}
		prof := profile.Profile{Medications: "warfarin"}
		if f := MedicationFindings(rec, prof); len(f) != 0 {
			t.Errorf("Expected no findings without interacting food, got %v", f)
		}
	})

	t.Run("EmptyMedications", func(t *testing.T) {
		rec := recipe.Recipe{Name: "Saag", Ingredients: []string{"3 cups spinach"}}
		if f := MedicationFindings(rec, profile.Profile{}); len(f) != 0 {
			t.Errorf("Expected no findings for empty medications, got %v", f)
		}
		if f := MedicationFindings(rec, profile.Profile{Medications: "   "}); len(f) != 0 {
			t.Errorf("Expected no findings for blank medications, got %v", f)
		}
	})
}
