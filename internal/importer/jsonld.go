package importer

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
)

// jsonldRecipe mirrors the schema.org/Recipe fields the importer consumes.
// Several fields are `any` because publishers emit them as strings, arrays
// or nested objects interchangeably.
type jsonldRecipe struct {
	Type               any            `json:"@type"`
	Graph              []jsonldRecipe `json:"@graph"`
	Name               string         `json:"name"`
	RecipeIngredient   []string       `json:"recipeIngredient"`
	RecipeInstructions any            `json:"recipeInstructions"`
	PrepTime           string         `json:"prepTime"`
	CookTime           string         `json:"cookTime"`
	RecipeYield        any            `json:"recipeYield"`
	Nutrition          struct {
		Calories            string `json:"calories"`
		ProteinContent      string `json:"proteinContent"`
		CarbohydrateContent string `json:"carbohydrateContent"`
		FatContent          string `json:"fatContent"`
	} `json:"nutrition"`
}

// extractJSONLD scans the page's ld+json blocks for a schema.org Recipe and
// converts the first one found. Returns nil when the page carries none.
func extractJSONLD(doc *goquery.Document) *ExtractedRecipe {
	var found *jsonldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		found = findRecipeNode([]byte(s.Text()))
		return found == nil
	})
	if found == nil {
		return nil
	}

	return &ExtractedRecipe{
		Title:       found.Name,
		Ingredients: found.RecipeIngredient,
		Steps:       instructionTexts(found.RecipeInstructions),
		PrepTime:    found.PrepTime,
		Servings:    yieldString(found.RecipeYield),
		Calories:    firstNumber(found.Nutrition.Calories),
		Protein:     firstNumber(found.Nutrition.ProteinContent),
		Carbs:       firstNumber(found.Nutrition.CarbohydrateContent),
		Fat:         firstNumber(found.Nutrition.FatContent),
	}
}

// findRecipeNode handles the three shapes publishers use: a single object,
// a top-level array, or an object with an @graph list.
func findRecipeNode(raw []byte) *jsonldRecipe {
	var single jsonldRecipe
	if err := json.Unmarshal(raw, &single); err == nil {
		if node := recipeFrom(single); node != nil {
			return node
		}
	}

	var list []jsonldRecipe
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, node := range list {
			if found := recipeFrom(node); found != nil {
				return found
			}
		}
	}
	return nil
}

func recipeFrom(node jsonldRecipe) *jsonldRecipe {
	if isRecipeType(node.Type) {
		return &node
	}
	for _, child := range node.Graph {
		if isRecipeType(child.Type) {
			return &child
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// instructionTexts flattens recipeInstructions, which may be a plain string,
// a list of strings, or a list of HowToStep objects with a text field.
func instructionTexts(v any) []string {
	switch steps := v.(type) {
	case string:
		if steps == "" {
			return nil
		}
		return []string{steps}
	case []any:
		var out []string
		for _, step := range steps {
			switch s := step.(type) {
			case string:
				out = append(out, s)
			case map[string]any:
				if text, ok := s["text"].(string); ok {
					out = append(out, text)
				}
			}
		}
		return out
	}
	return nil
}

func yieldString(v any) string {
	switch y := v.(type) {
	case string:
		return y
	case float64:
		return jsonNumberString(y)
	case []any:
		if len(y) > 0 {
			if s, ok := y[0].(string); ok {
				return s
			}
			if f, ok := y[0].(float64); ok {
				return jsonNumberString(f)
			}
		}
	}
	return ""
}

func jsonNumberString(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
