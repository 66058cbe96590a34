package shopping

import "strings"

// Budget tiers accepted by EstimateCost. Unknown tiers fall back to medium.
const (
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

// categoryBasePrice is the per-unit base price by category, in plan currency.
var categoryBasePrice = map[string]float64{
	"vegetables":   2.0,
	"fruits":       3.0,
	"proteins":     5.0,
	"dairy":        3.5,
	"grains":       2.5,
	"spices":       1.5,
	"oils":         4.0,
	CategoryOthers: 2.5,
}

var tierMultiplier = map[string]float64{
	TierLow:    0.8,
	TierMedium: 1.0,
	TierHigh:   1.5,
}

// Premium ingredients cost half again the category base; pantry staples a
// fifth less.
var premiumKeywords = []string{"salmon", "shrimp", "prawn", "paneer", "avocado", "quinoa", "almond", "cashew", "walnut", "olive", "saffron", "blueberr", "cheese"}

var commonKeywords = []string{"onion", "potato", "rice", "salt", "flour", "banana", "oats", "lentil", "dal", "wheat"}

// EstimateCost prices a shopping list for the given budget tier and serving
// count. Per-item cost is category base price times premium/common and tier
// multipliers, times 1.2 when the source line carried an explicit quantity,
// times occurrence count. Category and grand totals then scale sub-linearly
// with servings: 1 + (servings-1)*0.7. ByItem stays unscaled.
func EstimateCost(list ShoppingList, tier string, servings int) CostEstimate {
	tm, ok := tierMultiplier[tier]
	if !ok {
		tier, tm = TierMedium, tierMultiplier[TierMedium]
	}
	if servings < 1 {
		servings = 1
	}

	est := CostEstimate{
		ByCategory: make(map[string]float64),
		ByItem:     make(map[string]float64),
		Tier:       tier,
		Servings:   servings,
	}

	for category, items := range list.ByCategory {
		base, ok := categoryBasePrice[category]
		if !ok {
			base = categoryBasePrice[CategoryOthers]
		}
		for _, it := range items {
			unitCost := base * keywordMultiplier(it.Name) * tm
			if it.HasQuantity {
				unitCost *= 1.2
			}
			cost := unitCost * float64(it.Count)
			est.ByItem[it.Name] = cost
			est.ByCategory[category] += cost
			est.Total += cost
		}
	}

	if servings > 1 {
		sm := 1 + float64(servings-1)*0.7
		est.Total *= sm
		for category := range est.ByCategory {
			est.ByCategory[category] *= sm
		}
		est.PerPerson = est.Total / float64(servings)
	}

	return est
}

func keywordMultiplier(name string) float64 {
	for _, kw := range premiumKeywords {
		if strings.Contains(name, kw) {
			return 1.5
		}
	}
	for _, kw := range commonKeywords {
		if strings.Contains(name, kw) {
			return 0.8
		}
	}
	return 1.0
}
