package shopping

import (
	"regexp"
	"strconv"
	"strings"
)

// ingredientPattern captures a leading amount (decimal, a/b fraction, or a-b
// range) followed by the rest of the line.
var ingredientPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:\s*[/-]\s*\d+(?:\.\d+)?)?)\s+(.+)$`)

// commonUnits is the whitelist of measurement tokens accepted as a unit.
var commonUnits = map[string]bool{
	"cup":    true,
	"cups":   true,
	"tbsp":   true,
	"tsp":    true,
	"g":      true,
	"kg":     true,
	"ml":     true,
	"l":      true,
	"oz":     true,
	"lb":     true,
	"lbs":    true,
	"piece":  true,
	"pieces": true,
	"pcs":    true,
	"slice":  true,
	"slices": true,
	"clove":  true,
	"cloves": true,
	"pinch":  true,
	"can":    true,
	"cans":   true,
	"bunch":  true,
	"inch":   true,
}

// ParseIngredient extracts amount, unit and name from a free-text ingredient
// line like "1.5 cups rolled oats". Ranges average ("2-3" is 2.5), fractions
// divide ("1/2" is 0.5). A token in unit position that is not a known unit
// and is longer than two characters is treated as a descriptor and folded
// into the name, with the unit defaulting to "pcs". Lines with no leading
// amount come back whole as {1, pcs, lowercased text}.
func ParseIngredient(text string) ParsedIngredient {
	trimmed := strings.TrimSpace(text)

	m := ingredientPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ParsedIngredient{Amount: 1, Unit: "pcs", Name: strings.ToLower(trimmed), Original: text}
	}

	amount := parseAmount(m[1])
	rest := strings.TrimSpace(m[2])

	unit := "pcs"
	name := rest
	if token, remainder, ok := strings.Cut(rest, " "); ok {
		lower := strings.ToLower(token)
		switch {
		case commonUnits[lower]:
			unit = lower
			name = strings.TrimSpace(remainder)
		case len(token) <= 2:
			unit = lower
			name = strings.TrimSpace(remainder)
		}
		// Longer unknown tokens ("large", "fresh") stay part of the name.
	}

	return ParsedIngredient{
		Amount:   amount,
		Unit:     unit,
		Name:     strings.ToLower(name),
		Original: text,
	}
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")

	if a, b, ok := splitPair(s, "-"); ok {
		return (a + b) / 2
	}
	if a, b, ok := splitPair(s, "/"); ok && b != 0 {
		return a / b
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return 1
}

func splitPair(s, sep string) (float64, float64, bool) {
	left, right, found := strings.Cut(s, sep)
	if !found {
		return 0, 0, false
	}
	a, errA := strconv.ParseFloat(left, 64)
	b, errB := strconv.ParseFloat(right, 64)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return a, b, true
}
