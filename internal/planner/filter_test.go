package planner

import (
	"testing"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

func TestFilterRecipes(t *testing.T) {
	recipes := []recipe.Recipe{
		{ID: "r1", Name: "Peanut Noodles", MealType: recipe.Dinner, DietaryTypes: []string{recipe.DietVegan}, Allergens: []string{"peanuts"}, Calories: 500},
		{ID: "r2", Name: "Grilled Chicken", MealType: recipe.Dinner, DietaryTypes: []string{recipe.DietNonVeg}, Calories: 450},
		{ID: "r3", Name: "Palak Paneer", MealType: recipe.Dinner, DietaryTypes: []string{recipe.DietVegetarian}, Allergens: []string{"dairy"}, Calories: 400},
	}

	t.Run("allergy overlap removes recipe entirely", func(t *testing.T) {
		prof := profile.Profile{UserID: "u1", Allergies: []string{"Peanuts"}}
		out := FilterRecipes(recipes, prof)
		for _, c := range out {
			if c.Recipe.ID == "r1" {
				t.Errorf("recipe with allergen overlap survived the filter")
			}
		}
		if len(out) != 2 {
			t.Errorf("expected 2 candidates, got %d", len(out))
		}
	})

	t.Run("vegetarian preference drops non-veg", func(t *testing.T) {
		prof := profile.Profile{UserID: "u1", DietaryPreference: profile.PrefVegetarian}
		out := FilterRecipes(recipes, prof)
		if len(out) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(out))
		}
		for _, c := range out {
			if c.Recipe.ID == "r2" {
				t.Errorf("non-veg recipe passed a vegetarian filter")
			}
		}
	})

	t.Run("survivors carry warnings without being removed", func(t *testing.T) {
		prof := profile.Profile{
			UserID:      "u1",
			Medications: "warfarin",
		}
		spinach := []recipe.Recipe{
			{ID: "r4", Name: "Spinach Salad", MealType: recipe.Lunch, DietaryTypes: []string{recipe.DietVegan}, Ingredients: []string{"2 cups spinach"}, Calories: 200},
		}
		out := FilterRecipes(spinach, prof)
		if len(out) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(out))
		}
		if len(out[0].Warnings) == 0 {
			t.Errorf("expected a medication warning on the spinach candidate")
		}
	})

	t.Run("output preserves input order", func(t *testing.T) {
		out := FilterRecipes(recipes, profile.Profile{UserID: "u1"})
		if len(out) != 3 {
			t.Fatalf("expected 3 candidates, got %d", len(out))
		}
		for i, want := range []string{"r1", "r2", "r3"} {
			if out[i].Recipe.ID != want {
				t.Errorf("position %d: got %s, want %s", i, out[i].Recipe.ID, want)
			}
		}
	})
}

func TestDietCompatible(t *testing.T) {
	tests := []struct {
		name    string
		pref    string
		dietary []string
		want    bool
	}{
		{"vegan accepts vegan", profile.PrefVegan, []string{recipe.DietVegan}, true},
		{"vegan rejects vegetarian", profile.PrefVegan, []string{recipe.DietVegetarian}, false},
		{"vegetarian accepts vegan", profile.PrefVegetarian, []string{recipe.DietVegan}, true},
		{"vegetarian rejects eggetarian", profile.PrefVegetarian, []string{recipe.DietEggetarian}, false},
		{"eggetarian accepts vegetarian", profile.PrefEggetarian, []string{recipe.DietVegetarian}, true},
		{"eggetarian rejects non-veg", profile.PrefEggetarian, []string{recipe.DietNonVeg}, false},
		{"pescatarian accepts fish non-veg", profile.PrefPescatarian, []string{recipe.DietNonVeg, recipe.DietPescatarian}, true},
		{"pescatarian rejects plain non-veg", profile.PrefPescatarian, []string{recipe.DietNonVeg}, false},
		{"pescatarian accepts vegetarian", profile.PrefPescatarian, []string{recipe.DietVegetarian}, true},
		{"non-veg accepts everything", profile.PrefNonVeg, []string{recipe.DietNonVeg}, true},
		{"empty preference accepts everything", "", []string{recipe.DietNonVeg}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dietCompatible(tc.pref, tc.dietary); got != tc.want {
				t.Errorf("dietCompatible(%q, %v) = %v, want %v", tc.pref, tc.dietary, got, tc.want)
			}
		})
	}
}
