package shopping

import (
	"strconv"
	"strings"

	"nutriplan/internal/planner"
)

// categoryOrder fixes the order categories are matched in; the first category
// with a keyword contained in the ingredient name wins.
var categoryOrder = []string{"vegetables", "fruits", "proteins", "dairy", "grains", "spices", "oils"}

// CategoryOthers is the catch-all for ingredients no keyword list matches.
const CategoryOthers = "others"

var categoryKeywords = map[string][]string{
	"vegetables": {"onion", "tomato", "potato", "spinach", "carrot", "bell pepper", "capsicum", "cucumber", "broccoli", "cauliflower", "peas", "beans", "garlic", "ginger", "lettuce", "kale", "cabbage", "mushroom", "zucchini", "okra", "beetroot"},
	"fruits":     {"apple", "banana", "orange", "mango", "berry", "berries", "lemon", "lime", "grape", "avocado", "pineapple", "papaya", "pomegranate"},
	"proteins":   {"chicken", "fish", "salmon", "tuna", "shrimp", "prawn", "egg", "paneer", "tofu", "tempeh", "lentil", "dal", "chana", "chickpea", "rajma", "turkey", "soy chunks"},
	"dairy":      {"milk", "yogurt", "curd", "cheese", "butter", "cream", "ghee"},
	"grains":     {"rice", "wheat", "oats", "bread", "flour", "quinoa", "pasta", "noodle", "tortilla", "roti", "poha", "barley", "millet", "semolina"},
	"spices":     {"salt", "pepper", "cumin", "turmeric", "coriander", "chili", "chilli", "masala", "cinnamon", "cardamom", "clove", "mustard seed", "paprika", "oregano", "basil", "curry leaves"},
	"oils":       {"oil", "vinegar"},
}

// GenerateShoppingList parses and aggregates every ingredient across all
// days and slots of the plan. Entries merge on normalized name plus unit:
// amounts sum, counts increment, and each contributing meal adds a
// "<Weekday> <slot>" label. Pure function of the plan.
func GenerateShoppingList(plan *planner.WeekPlan) ShoppingList {
	index := make(map[string]int)
	var items []Item

	for _, day := range plan.Days {
		for _, s := range planner.MealSlots {
			meal := day.Slot(s)
			if meal == nil {
				continue
			}
			label := day.Weekday + " " + string(s)

			for _, line := range meal.Ingredients {
				parsed := ParseIngredient(line)
				key := parsed.Name + "|" + parsed.Unit

				if i, ok := index[key]; ok {
					items[i].Amount += parsed.Amount
					items[i].Count++
					items[i].Meals = append(items[i].Meals, label)
					items[i].HasQuantity = items[i].HasQuantity || containsDigit(parsed.Original)
					continue
				}

				index[key] = len(items)
				items = append(items, Item{
					Name:        parsed.Name,
					Unit:        parsed.Unit,
					Amount:      parsed.Amount,
					Category:    categorize(parsed.Name),
					Count:       1,
					Meals:       []string{label},
					HasQuantity: containsDigit(parsed.Original),
				})
			}
		}
	}
	list := ShoppingList{ByCategory: make(map[string][]Item), TotalItems: len(items)}
	for i := range items {
		items[i].Display = displayString(items[i])
		list.ByCategory[items[i].Category] = append(list.ByCategory[items[i].Category], items[i])
	}
	return list
}

func categorize(name string) string {
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(name, kw) {
				return cat
			}
		}
	}
	return CategoryOthers
}

func displayString(it Item) string {
	amount := strconv.FormatFloat(it.Amount, 'f', -1, 64)
	unit := it.Unit
	if unit == "pcs" {
		unit = ""
	}
	return strings.Join(strings.Fields(amount+" "+unit+" "+it.Name), " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
