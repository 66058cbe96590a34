package importer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"nutriplan/internal/database"
	"nutriplan/internal/recipe"
)

// --- Mocks ---

type MockTextGenerator struct {
	Response    string
	ShouldError bool
	Called      bool
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.Called = true
	if m.ShouldError {
		return "", fmt.Errorf("mock ai error")
	}
	return m.Response, nil
}

func newTestRecipeRepo(t *testing.T) *recipe.Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return recipe.NewRepository(db.SQL)
}

// --- Tests ---

func TestImportURL_JSONLD(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">
	{
	  "@context": "https://schema.org",
	  "@type": "Recipe",
	  "name": "Masala Omelette",
	  "recipeIngredient": ["2 eggs", "1 onion", "1 tsp oil"],
	  "recipeInstructions": [
	    {"@type": "HowToStep", "text": "Whisk the eggs."},
	    {"@type": "HowToStep", "text": "Fry with onions."}
	  ],
	  "recipeYield": "2 servings",
	  "prepTime": "PT10M",
	  "nutrition": {
	    "calories": "240 calories",
	    "proteinContent": "14 g",
	    "carbohydrateContent": "6 g",
	    "fatContent": "18 g"
	  }
	}
	</script>
	</head><body><h1>Masala Omelette</h1></body></html>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer ts.Close()

	repo := newTestRecipeRepo(t)
	mockAI := &MockTextGenerator{}
	im := NewImporter(repo, mockAI)

	rec, err := im.ImportURL(context.Background(), ts.URL, recipe.Breakfast)
	if err != nil {
		t.Fatalf("ImportURL failed: %v", err)
	}

	if rec.Name != "Masala Omelette" {
		t.Errorf("Expected name 'Masala Omelette', got '%s'", rec.Name)
	}
	if rec.MealType != recipe.Breakfast {
		t.Errorf("Expected breakfast meal type, got %s", rec.MealType)
	}
	if rec.Calories != 240 || rec.Protein != 14 || rec.Carbs != 6 || rec.Fat != 18 {
		t.Errorf("Macros not parsed from nutrition block: %+v", rec)
	}
	if len(rec.Ingredients) != 3 || len(rec.Instructions) != 2 {
		t.Errorf("Expected 3 ingredients and 2 steps, got %d and %d", len(rec.Ingredients), len(rec.Instructions))
	}
	if rec.BaseServings != 2 {
		t.Errorf("Expected 2 base servings, got %d", rec.BaseServings)
	}
	if !strings.HasPrefix(rec.ID, "imp-") {
		t.Errorf("Expected generated imp- id, got '%s'", rec.ID)
	}
	if mockAI.Called {
		t.Error("LLM fallback should not run when JSON-LD is present")
	}

	// Saved to the repository under the generated id.
	saved, err := repo.Get(context.Background(), rec.ID)
	if err != nil || saved == nil {
		t.Fatalf("Imported recipe not persisted: %v", err)
	}
}

func TestImportURL_LLMFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Plain page, no structured data</h1><script>noise()</script></body></html>`))
	}))
	defer ts.Close()

	aiResponse := "```json\n" + `{"title": "Veggie Stir Fry", "ingredients": ["1 cup broccoli", "1 tbsp oil"], "steps": ["Chop", "Fry"], "prep_time": "15 mins", "servings": "4 people", "calories": 310, "protein": 9, "carbs": 35, "fat": 12}` + "\n```"
	mockAI := &MockTextGenerator{Response: aiResponse}
	im := NewImporter(newTestRecipeRepo(t), mockAI)

	rec, err := im.ImportURL(context.Background(), ts.URL, recipe.Dinner)
	if err != nil {
		t.Fatalf("ImportURL failed: %v", err)
	}

	if !mockAI.Called {
		t.Fatal("Expected the LLM fallback to run")
	}
	if rec.Name != "Veggie Stir Fry" {
		t.Errorf("Expected title 'Veggie Stir Fry', got '%s'", rec.Name)
	}
	if rec.Calories != 310 {
		t.Errorf("Expected 310 calories, got %v", rec.Calories)
	}
	if rec.BaseServings != 4 {
		t.Errorf("Expected 4 base servings, got %d", rec.BaseServings)
	}
}

func TestImportURL_NoFallbackConfigured(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>Nothing structured here</body></html>`))
	}))
	defer ts.Close()

	im := NewImporter(newTestRecipeRepo(t), nil)
	if _, err := im.ImportURL(context.Background(), ts.URL, recipe.Lunch); err == nil {
		t.Fatal("Expected an error when no structured data and no model are available")
	}
}

func TestImportURL_FetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	im := NewImporter(newTestRecipeRepo(t), &MockTextGenerator{})
	if _, err := im.ImportURL(context.Background(), ts.URL, recipe.Lunch); err == nil {
		t.Fatal("Expected an error for a 404 page")
	}
}

func TestExtractJSONLD_GraphShape(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@context": "https://schema.org", "@graph": [
	  {"@type": "WebSite", "name": "Food Blog"},
	  {"@type": "Recipe", "name": "Lemon Rice", "recipeIngredient": ["1 cup rice", "1 lemon"], "recipeInstructions": "Cook and mix."}
	]}
	</script></head><body></body></html>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer ts.Close()

	im := NewImporter(newTestRecipeRepo(t), nil)
	rec, err := im.ImportURL(context.Background(), ts.URL, recipe.Lunch)
	if err != nil {
		t.Fatalf("ImportURL failed: %v", err)
	}
	if rec.Name != "Lemon Rice" {
		t.Errorf("Expected 'Lemon Rice' from the @graph node, got '%s'", rec.Name)
	}
	if len(rec.Instructions) != 1 {
		t.Errorf("Expected the plain-string instruction to be kept, got %v", rec.Instructions)
	}
}
