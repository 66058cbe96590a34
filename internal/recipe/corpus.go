package recipe

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var seedFS embed.FS

// Corpus holds the four read-only meal-type collections the planner draws from.
type Corpus struct {
	Breakfast []Recipe
	Lunch     []Recipe
	Snack     []Recipe
	Dinner    []Recipe
}

// LoadSeedCorpus loads the embedded seed collections.
func LoadSeedCorpus() (*Corpus, error) {
	c := &Corpus{}
	for _, mt := range MealTypes {
		recipes, err := loadSeedFile(mt)
		if err != nil {
			return nil, err
		}
		c.setCollection(mt, recipes)
	}
	return c, nil
}

func loadSeedFile(mt MealType) ([]Recipe, error) {
	data, err := seedFS.ReadFile(fmt.Sprintf("data/%s.json", mt))
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file for %s: %w", mt, err)
	}

	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse seed file for %s: %w", mt, err)
	}

	for i := range recipes {
		recipes[i].MealType = mt
	}
	return recipes, nil
}

// ByMealType returns the collection for the given meal type.
func (c *Corpus) ByMealType(mt MealType) []Recipe {
	switch mt {
	case Breakfast:
		return c.Breakfast
	case Lunch:
		return c.Lunch
	case Snack:
		return c.Snack
	case Dinner:
		return c.Dinner
	}
	return nil
}

func (c *Corpus) setCollection(mt MealType, recipes []Recipe) {
	switch mt {
	case Breakfast:
		c.Breakfast = recipes
	case Lunch:
		c.Lunch = recipes
	case Snack:
		c.Snack = recipes
	case Dinner:
		c.Dinner = recipes
	}
}

// Merge returns a new corpus containing this corpus plus the given recipes,
// appended to their declared meal-type collections. Recipes with an unknown
// meal type or an id already present are skipped. The receiver is not
// modified.
func (c *Corpus) Merge(extra []Recipe) *Corpus {
	merged := &Corpus{}
	seen := make(map[string]bool)
	for _, mt := range MealTypes {
		base := c.ByMealType(mt)
		collection := make([]Recipe, len(base))
		copy(collection, base)
		merged.setCollection(mt, collection)
		for _, rec := range base {
			seen[rec.ID] = true
		}
	}
	for _, rec := range extra {
		if seen[rec.ID] {
			continue
		}
		switch rec.MealType {
		case Breakfast, Lunch, Snack, Dinner:
			merged.setCollection(rec.MealType, append(merged.ByMealType(rec.MealType), rec))
			seen[rec.ID] = true
		}
	}
	return merged
}

// Find looks a recipe up by id across all four collections.
func (c *Corpus) Find(id string) *Recipe {
	for _, mt := range MealTypes {
		for i := range c.ByMealType(mt) {
			if c.ByMealType(mt)[i].ID == id {
				rec := c.ByMealType(mt)[i]
				return &rec
			}
		}
	}
	return nil
}
