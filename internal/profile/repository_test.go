package profile

import (
	"context"
	"path/filepath"
	"testing"

	"nutriplan/internal/database"
)

func TestRepositoryUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}
	defer db.Close()
	repo := NewRepository(db.SQL)

	missing, err := repo.Get(ctx, "nobody")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for missing profile")
	}

	p := Profile{
		UserID:            "user-1",
		Allergies:         []string{"dairy"},
		DietaryPreference: PrefVegetarian,
		Servings:          2,
		NutritionTargets:  NutritionTargets{TargetCalories: 2000, Macros: Macros{Protein: 100}},
	}
	if err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	loaded, err := repo.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected profile, got nil")
	}
	if loaded.DietaryPreference != PrefVegetarian {
		t.Errorf("Expected vegetarian, got %s", loaded.DietaryPreference)
	}
	if loaded.NutritionTargets.TargetCalories != 2000 {
		t.Errorf("Expected target calories 2000, got %v", loaded.NutritionTargets.TargetCalories)
	}

	p.Servings = 4
	if err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert (update) failed: %v", err)
	}
	loaded, _ = repo.Get(ctx, "user-1")
	if loaded.Servings != 4 {
		t.Errorf("Expected servings 4 after upsert, got %d", loaded.Servings)
	}
}

func TestEffectiveServings(t *testing.T) {
	if (Profile{Servings: 0}).EffectiveServings() != 1 {
		t.Error("Expected servings to default to 1")
	}
	if (Profile{Servings: 3}).EffectiveServings() != 3 {
		t.Error("Expected servings 3 to pass through")
	}
}
