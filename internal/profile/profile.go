package profile

// Dietary preference values. A profile declares exactly one.
const (
	PrefVegan       = "vegan"
	PrefVegetarian  = "vegetarian"
	PrefEggetarian  = "eggetarian"
	PrefPescatarian = "pescatarian"
	PrefNonVeg      = "non-veg"
)

// Macros holds daily macro targets in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs,omitempty"`
	Fat     float64 `json:"fat,omitempty"`
}

// NutritionTargets holds daily targets computed upstream; the planner
// consumes them as given.
type NutritionTargets struct {
	TargetCalories float64 `json:"target_calories"`
	Macros         Macros  `json:"macros"`
}

// Profile is the user profile the planner generates against.
type Profile struct {
	UserID            string           `json:"user_id"`
	Gender            string           `json:"gender,omitempty"`
	Age               int              `json:"age,omitempty"`
	HeightCM          float64          `json:"height_cm,omitempty"`
	WeightKG          float64          `json:"weight_kg,omitempty"`
	HealthConditions  []string         `json:"health_conditions,omitempty"`
	Allergies         []string         `json:"allergies,omitempty"`
	Medications       string           `json:"medications,omitempty"`
	IsPregnant        bool             `json:"is_pregnant,omitempty"`
	IsBreastfeeding   bool             `json:"is_breastfeeding,omitempty"`
	DietaryPreference string           `json:"dietary_preference"`
	Servings          int              `json:"servings"`
	NutritionTargets  NutritionTargets `json:"nutrition_targets"`
}

// EffectiveServings returns the serving multiplier, never below 1.
func (p Profile) EffectiveServings() int {
	if p.Servings < 1 {
		return 1
	}
	return p.Servings
}
