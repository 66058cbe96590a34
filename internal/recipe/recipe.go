package recipe

// MealType identifies which of the four daily meal slots a recipe belongs to.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Snack     MealType = "snack"
	Dinner    MealType = "dinner"
)

// MealTypes lists the four slots in the order they appear in a day plan.
var MealTypes = []MealType{Breakfast, Lunch, Snack, Dinner}

// Dietary type tags a recipe may declare. A recipe can satisfy several.
const (
	DietVegan       = "vegan"
	DietVegetarian  = "vegetarian"
	DietEggetarian  = "eggetarian"
	DietPescatarian = "pescatarian"
	DietNonVeg      = "non-veg"
)

// Recipe is a single corpus entry. Macros are per base serving.
// Corpus recipes are read-only at runtime; the planner never mutates them.
type Recipe struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MealType      MealType `json:"meal_type"`
	Cuisine       string   `json:"cuisine,omitempty"`
	DietaryTypes  []string `json:"dietary_types"`
	Calories      float64  `json:"calories"`
	Protein       float64  `json:"protein"`
	Carbs         float64  `json:"carbs"`
	Fat           float64  `json:"fat"`
	PrepTime      string   `json:"prep_time,omitempty"`
	CookTime      string   `json:"cook_time,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	CostTier      string   `json:"cost_tier,omitempty"`
	BatchFriendly bool     `json:"batch_friendly,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Allergens     []string `json:"allergens,omitempty"`
	Ingredients   []string `json:"ingredients"`
	Instructions  []string `json:"instructions,omitempty"`
	BaseServings  int      `json:"base_servings,omitempty"`
	Image         string   `json:"image,omitempty"`
}
