package shopping

// ParsedIngredient is the structured form of one free-text ingredient line.
type ParsedIngredient struct {
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Name     string  `json:"name"`
	Original string  `json:"original"`
}

// Item is one aggregated shopping-list entry. Count is the number of meal
// occurrences that contributed to it; Meals are their "<Weekday> <slot>"
// labels in contribution order.
type Item struct {
	Name        string   `json:"name"`
	Unit        string   `json:"unit"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category"`
	Count       int      `json:"count"`
	Meals       []string `json:"meals"`
	Display     string   `json:"display"`
	HasQuantity bool     `json:"has_quantity,omitempty"`
}

// ShoppingList groups the aggregated items by category. Categories hold
// items in first-appearance order.
type ShoppingList struct {
	ByCategory map[string][]Item `json:"by_category"`
	TotalItems int               `json:"total_items"`
}

// CostEstimate is the rough cost breakdown for a shopping list. ByItem holds
// unscaled per-item costs; Total, ByCategory and PerPerson include the
// serving multiplier.
type CostEstimate struct {
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	ByItem     map[string]float64 `json:"by_item"`
	Tier       string             `json:"tier"`
	Servings   int                `json:"servings"`
	PerPerson  float64            `json:"per_person,omitempty"`
}
