package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nutriplan/internal/llm"
	"nutriplan/internal/recipe"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Importer fetches recipe pages and turns them into corpus entries.
// Structured schema.org data is preferred; pages without it fall back to LLM
// extraction when a text generator is configured.
type Importer struct {
	recipes    *recipe.Repository
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// ExtractedRecipe is the strict JSON contract the LLM fallback must return.
type ExtractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prep_time"`
	Servings    string   `json:"servings"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
}

// NewImporter creates a new Importer. textGen may be nil, which disables the
// LLM fallback.
func NewImporter(recipes *recipe.Repository, textGen llm.TextGenerator) *Importer {
	return &Importer{
		recipes:    recipes,
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ImportURL fetches the page, extracts a recipe, stores it under the given
// meal type and returns the saved entry.
func (im *Importer) ImportURL(ctx context.Context, url string, mealType recipe.MealType) (*recipe.Recipe, error) {
	doc, err := im.fetchDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	extracted := extractJSONLD(doc)
	if extracted == nil {
		if im.textGen == nil {
			return nil, fmt.Errorf("no structured recipe data found and no extraction model configured")
		}
		extracted, err = im.extractWithLLM(ctx, doc)
		if err != nil {
			return nil, err
		}
	}

	if extracted.Title == "" || len(extracted.Ingredients) == 0 {
		return nil, fmt.Errorf("extracted recipe is missing a title or ingredients")
	}

	rec := buildRecipe(*extracted, mealType, url)
	if err := im.recipes.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}
	return &rec, nil
}

func (im *Importer) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// extractWithLLM strips page noise and asks the model for the strict JSON
// contract above.
func (im *Importer) extractWithLLM(ctx context.Context, doc *goquery.Document) (*ExtractedRecipe, error) {
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	content := doc.Find("body").Text()

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["item 1", "item 2", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "prep_time": "e.g. 30 mins",
  "servings": "e.g. 4 people",
  "calories": 320,
  "protein": 14,
  "carbs": 40,
  "fat": 9
}
Macro values are per serving; use 0 when the page does not state them.

Page Content:
%s
`, content)

	response, err := im.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted ExtractedRecipe
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, response)
	}
	return &extracted, nil
}

func buildRecipe(e ExtractedRecipe, mealType recipe.MealType, sourceURL string) recipe.Recipe {
	servings := 1
	if n := firstNumber(e.Servings); n > 0 {
		servings = int(n)
	}

	return recipe.Recipe{
		ID:           "imp-" + uuid.NewString(),
		Name:         e.Title,
		MealType:     mealType,
		Calories:     e.Calories,
		Protein:      e.Protein,
		Carbs:        e.Carbs,
		Fat:          e.Fat,
		PrepTime:     e.PrepTime,
		Tags:         []string{"imported"},
		Ingredients:  e.Ingredients,
		Instructions: e.Steps,
		BaseServings: servings,
		Image:        sourceURL,
	}
}

// stripCodeFence removes a surrounding markdown code fence some models wrap
// JSON answers in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// firstNumber pulls the leading numeric value out of strings like
// "240 calories" or "4 people". Returns 0 when none is present.
func firstNumber(s string) float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
