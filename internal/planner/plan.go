package planner

import (
	"nutriplan/internal/constraints"
	"nutriplan/internal/recipe"
)

// MealSlot identifies one of the four meals in a day plan.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotSnack     MealSlot = "snack"
	SlotDinner    MealSlot = "dinner"
)

// MealSlots lists the slots in day order.
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotSnack, SlotDinner}

// slotCalorieShare is the fixed distribution of the daily calorie target.
var slotCalorieShare = map[MealSlot]float64{
	SlotBreakfast: 0.25,
	SlotLunch:     0.35,
	SlotSnack:     0.10,
	SlotDinner:    0.30,
}

// MealTypeForSlot maps a plan slot to its recipe collection.
func MealTypeForSlot(slot MealSlot) recipe.MealType {
	return recipe.MealType(slot)
}

// ScaledMeal is a recipe snapshot with macros pre-multiplied by the final
// scale. ScaledServings records that scale; macros are rounded independently,
// so they are not required to reconcile to a fixed ratio afterwards.
type ScaledMeal struct {
	RecipeID       string                `json:"recipe_id"`
	Name           string                `json:"name"`
	Calories       int                   `json:"calories"`
	Protein        int                   `json:"protein"`
	Carbs          int                   `json:"carbs"`
	Fat            int                   `json:"fat"`
	ScaledServings float64               `json:"scaled_servings"`
	Ingredients    []string              `json:"ingredients,omitempty"`
	Warnings       []constraints.Finding `json:"warnings,omitempty"`
}

// DayPlan holds the four optional meal slots for one calendar day plus the
// macro totals over the present slots.
type DayPlan struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`

	Breakfast *ScaledMeal `json:"breakfast"`
	Lunch     *ScaledMeal `json:"lunch"`
	Snack     *ScaledMeal `json:"snack"`
	Dinner    *ScaledMeal `json:"dinner"`

	TotalCalories int `json:"total_calories"`
	TotalProtein  int `json:"total_protein"`
	TotalCarbs    int `json:"total_carbs"`
	TotalFat      int `json:"total_fat"`
}

// Slot returns the meal stored in the given slot, or nil.
func (d *DayPlan) Slot(slot MealSlot) *ScaledMeal {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotSnack:
		return d.Snack
	case SlotDinner:
		return d.Dinner
	}
	return nil
}

// SetSlot stores a meal in the given slot.
func (d *DayPlan) SetSlot(slot MealSlot, meal *ScaledMeal) {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = meal
	case SlotLunch:
		d.Lunch = meal
	case SlotSnack:
		d.Snack = meal
	case SlotDinner:
		d.Dinner = meal
	}
}

// RecalcTotals recomputes the day totals from the present slots.
func (d *DayPlan) RecalcTotals() {
	d.TotalCalories, d.TotalProtein, d.TotalCarbs, d.TotalFat = 0, 0, 0, 0
	for _, slot := range MealSlots {
		meal := d.Slot(slot)
		if meal == nil {
			continue
		}
		d.TotalCalories += meal.Calories
		d.TotalProtein += meal.Protein
		d.TotalCarbs += meal.Carbs
		d.TotalFat += meal.Fat
	}
}

// WeekPlan is an ordered sequence of seven day plans.
type WeekPlan struct {
	Days []DayPlan `json:"days"`
}
