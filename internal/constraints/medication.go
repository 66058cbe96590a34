package constraints

import (
	"fmt"
	"regexp"
	"strings"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// interactionRule pairs a drug-name pattern found in the free-text
// medications field with the food keywords it interacts with.
type interactionRule struct {
	Drug    string
	Pattern *regexp.Regexp
	Foods   []string
	Code    string
	Message string
}

var interactionRules = []interactionRule{
	{
		Drug:    "statins",
		Pattern: regexp.MustCompile(`\b(atorvastatin|simvastatin|rosuvastatin|lovastatin|statin)\b`),
		Foods:   []string{"grapefruit"},
		Code:    "medication:statin:grapefruit",
		Message: "grapefruit interferes with statin metabolism",
	},
	{
		Drug:    "warfarin",
		Pattern: regexp.MustCompile(`\b(warfarin|coumadin)\b`),
		Foods:   []string{"spinach", "kale"},
		Code:    "medication:warfarin:vitamin-k",
		Message: "vitamin K rich greens reduce warfarin effectiveness",
	},
	{
		Drug:    "levothyroxine",
		Pattern: regexp.MustCompile(`\b(levothyroxine|thyroxine|eltroxin|synthroid)\b`),
		Foods:   []string{"soy", "tofu"},
		Code:    "medication:levothyroxine:soy",
		Message: "soy can impair levothyroxine absorption",
	},
}

// MedicationFindings scans the profile's free-text medications for known drug
// families and warns when the recipe contains a paired interacting food.
// One warning per matched drug+food pair; never blocks.
func MedicationFindings(rec recipe.Recipe, prof profile.Profile) []Finding {
	meds := strings.ToLower(strings.TrimSpace(prof.Medications))
	if meds == "" || len(rec.Ingredients) == 0 {
		return nil
	}

	ingredientText := strings.ToLower(strings.Join(rec.Ingredients, " "))

	var findings []Finding
	for _, rule := range interactionRules {
		if !rule.Pattern.MatchString(meds) {
			continue
		}
		for _, food := range rule.Foods {
			if strings.Contains(ingredientText, food) {
				findings = append(findings, Finding{
					Type:     "medication",
					Severity: SeverityWarn,
					Code:     rule.Code + ":" + food,
					Message:  fmt.Sprintf("contains %s: %s", food, rule.Message),
				})
			}
		}
	}
	return findings
}
