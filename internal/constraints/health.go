package constraints

import (
	"fmt"
	"strings"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// pregnancyKeywords are scanned across name + ingredients + tags, emitting
// one warning per match when the profile is pregnant or breastfeeding.
var pregnancyKeywords = []string{"sushi", "raw egg", "unpasteurized", "tuna"}

// conditionRule is a declarative health heuristic: a condition id plus the
// ingredient keywords that trigger (or, for Absence rules, fail to appear).
// Adding a condition means adding a row, not a code path.
type conditionRule struct {
	Conditions []string
	Keywords   []string
	Tags       []string
	Absence    bool
	Code       string
	Message    string
}

var conditionRules = []conditionRule{
	{
		Conditions: []string{"pcos"},
		Keywords:   []string{"sugar", "jaggery", "honey", "maple syrup", "corn syrup", "chocolate"},
		Tags:       []string{"dessert"},
		Code:       "health:pcos:sugar",
		Message:    "high sugar content may aggravate PCOS symptoms",
	},
	{
		Conditions: []string{"diabetes_type1", "diabetes_type2"},
		Keywords:   []string{"white rice", "white bread", "maida", "refined flour", "sugar", "pasta", "noodles"},
		Code:       "health:diabetes:refined-carbs",
		Message:    "refined carbohydrates can spike blood sugar",
	},
	{
		Conditions: []string{"hypertension"},
		Keywords:   []string{"salt", "soy sauce", "pickle", "papad", "cured", "bacon", "salami"},
		Code:       "health:hypertension:sodium",
		Message:    "high sodium content; consider a low-salt variation",
	},
	{
		Conditions: []string{"hypothyroidism"},
		Keywords:   []string{"cabbage", "cauliflower", "broccoli", "kale", "soy", "tofu"},
		Code:       "health:hypothyroidism:goitrogens",
		Message:    "goitrogenic foods may interfere with thyroid function when eaten raw in excess",
	},
	{
		Conditions: []string{"hyperthyroidism"},
		Keywords:   []string{"coffee", "espresso", "black tea", "green tea", "cola", "energy drink", "caffeine"},
		Code:       "health:hyperthyroidism:caffeine",
		Message:    "caffeine can worsen hyperthyroid symptoms",
	},
	{
		Conditions: []string{"anemia"},
		Keywords:   []string{"spinach", "lentils", "beans", "chickpeas", "beef", "liver", "tofu", "pumpkin seeds", "kidney beans"},
		Absence:    true,
		Code:       "health:anemia:low-iron",
		Message:    "no iron-rich ingredients; balance with iron sources elsewhere this week",
	},
}

// HealthFindings applies the condition rule battery to a recipe. Every rule
// is independent and additive; none of them ever blocks selection.
func HealthFindings(rec recipe.Recipe, prof profile.Profile) []Finding {
	var findings []Finding

	ingredientText := strings.ToLower(strings.Join(rec.Ingredients, " "))
	tagText := strings.ToLower(strings.Join(rec.Tags, " "))
	fullText := strings.ToLower(rec.Name) + " " + ingredientText + " " + tagText

	if prof.IsPregnant || prof.IsBreastfeeding {
		for _, kw := range pregnancyKeywords {
			if strings.Contains(fullText, kw) {
				findings = append(findings, Finding{
					Type:     "health",
					Severity: SeverityWarn,
					Code:     "health:pregnancy:" + strings.ReplaceAll(kw, " ", "-"),
					Message:  fmt.Sprintf("contains %s, best avoided during pregnancy or breastfeeding", kw),
				})
			}
		}
	}

	conditions := normalizeLookup(prof.HealthConditions)
	if len(conditions) == 0 {
		return findings
	}

	for _, rule := range conditionRules {
		if !hasAnyCondition(conditions, rule.Conditions) {
			continue
		}
		if rule.Absence {
			if !containsAny(ingredientText, rule.Keywords) {
				findings = append(findings, warnFinding(rule))
			}
			continue
		}
		if containsAny(ingredientText, rule.Keywords) || containsAny(tagText, rule.Tags) {
			findings = append(findings, warnFinding(rule))
		}
	}

	return findings
}

func warnFinding(rule conditionRule) Finding {
	return Finding{
		Type:     "health",
		Severity: SeverityWarn,
		Code:     rule.Code,
		Message:  rule.Message,
	}
}

func hasAnyCondition(have map[string]bool, wanted []string) bool {
	for _, c := range wanted {
		if have[c] {
			return true
		}
	}
	return false
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
