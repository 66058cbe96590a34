package planner

import (
	"fmt"
	"log"
	"math"
	"time"

	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// Portion multiplier bounds: a chosen recipe is never scaled below half or
// above triple its slot-target portion before the serving multiplier applies.
const (
	minPortion = 0.5
	maxPortion = 3.0
)

// GenerateWeeklyMealPlan assembles a 7-day plan for the profile from the
// corpus. Each meal-type collection is filtered exactly once (not per day);
// an empty filtered pool logs a warning and leaves that slot nil on every
// day rather than failing the whole plan.
//
// Generation is deterministic for a fixed profile, corpus and start date.
func GenerateWeeklyMealPlan(prof profile.Profile, corpus *recipe.Corpus, now time.Time) (*WeekPlan, error) {
	targetCalories := prof.NutritionTargets.TargetCalories
	if targetCalories <= 0 {
		return nil, fmt.Errorf("profile has no daily calorie target")
	}

	servings := prof.EffectiveServings()

	targetProteinRatio := 0.0
	if p := prof.NutritionTargets.Macros.Protein; p > 0 {
		targetProteinRatio = p * 4 / targetCalories
	}

	pools := make(map[MealSlot][]Candidate, len(MealSlots))
	for _, slot := range MealSlots {
		pool := FilterRecipes(corpus.ByMealType(MealTypeForSlot(slot)), prof)
		if len(pool) == 0 {
			log.Printf("Warning: no eligible %s recipes for user %s; slot will stay empty", slot, prof.UserID)
		}
		pools[slot] = pool
	}

	used := make(map[MealSlot]map[string]bool, len(MealSlots))
	for _, slot := range MealSlots {
		used[slot] = make(map[string]bool)
	}

	week := &WeekPlan{Days: make([]DayPlan, 0, 7)}
	for dayIndex := 0; dayIndex < 7; dayIndex++ {
		date := now.AddDate(0, 0, dayIndex)
		day := DayPlan{
			Date:    date.Format("2006-01-02"),
			Weekday: date.Weekday().String(),
		}

		for _, slot := range MealSlots {
			slotTarget := targetCalories * slotCalorieShare[slot]
			cand := findBestRecipe(pools[slot], slotTarget, used[slot], RepeatLenient, targetProteinRatio)
			if cand == nil {
				continue
			}
			day.SetSlot(slot, scaleMeal(*cand, slotTarget, servings))
			// Mark used even when the pick was itself a repeat, keeping the
			// most-recently-served recipes deprioritized on later days.
			used[slot][cand.Recipe.ID] = true
		}

		day.RecalcTotals()
		week.Days = append(week.Days, day)
	}

	return week, nil
}

// scaleMeal applies the portion transform: raw ratio to the slot target,
// rounded to the nearest 0.5 and clamped to [0.5, 3.0], then multiplied by
// the serving count. Each macro is rounded to an integer independently.
func scaleMeal(c Candidate, calorieTarget float64, servings int) *ScaledMeal {
	portion := 1.0
	if c.Recipe.Calories > 0 {
		portion = math.Round(calorieTarget/c.Recipe.Calories*2) / 2
		if portion < minPortion {
			portion = minPortion
		}
		if portion > maxPortion {
			portion = maxPortion
		}
	}

	scale := portion * float64(servings)
	return &ScaledMeal{
		RecipeID:       c.Recipe.ID,
		Name:           c.Recipe.Name,
		Calories:       int(math.Round(c.Recipe.Calories * scale)),
		Protein:        int(math.Round(c.Recipe.Protein * scale)),
		Carbs:          int(math.Round(c.Recipe.Carbs * scale)),
		Fat:            int(math.Round(c.Recipe.Fat * scale)),
		ScaledServings: scale,
		Ingredients:    c.Recipe.Ingredients,
		Warnings:       c.Warnings,
	}
}

// SwapMeal replaces one slot of a day with the given candidate, scaled by the
// serving count alone (the slot calorie portion is not recalculated on swap),
// and recomputes the day totals from scratch.
func SwapMeal(day *DayPlan, slot MealSlot, c Candidate, servings int) {
	if servings < 1 {
		servings = 1
	}

	scale := float64(servings)
	day.SetSlot(slot, &ScaledMeal{
		RecipeID:       c.Recipe.ID,
		Name:           c.Recipe.Name,
		Calories:       int(math.Round(c.Recipe.Calories * scale)),
		Protein:        int(math.Round(c.Recipe.Protein * scale)),
		Carbs:          int(math.Round(c.Recipe.Carbs * scale)),
		Fat:            int(math.Round(c.Recipe.Fat * scale)),
		ScaledServings: scale,
		Ingredients:    c.Recipe.Ingredients,
		Warnings:       c.Warnings,
	})
	day.RecalcTotals()
}
