package shopping

import (
	"math"
	"testing"
)

func TestEstimateCost(t *testing.T) {
	list := GenerateShoppingList(testPlan())

	t.Run("tier multipliers are monotonic", func(t *testing.T) {
		low := EstimateCost(list, TierLow, 1)
		medium := EstimateCost(list, TierMedium, 1)
		high := EstimateCost(list, TierHigh, 1)
		if !(low.Total < medium.Total && medium.Total < high.Total) {
			t.Errorf("totals not monotonic: low=%v medium=%v high=%v", low.Total, medium.Total, high.Total)
		}
	})

	t.Run("servings scale sub-linearly", func(t *testing.T) {
		one := EstimateCost(list, TierMedium, 1)
		three := EstimateCost(list, TierMedium, 3)
		ratio := three.Total / one.Total
		if math.Abs(ratio-2.4) > 1e-9 {
			t.Errorf("servings=3 ratio = %v, want 2.4", ratio)
		}
		if one.PerPerson != 0 {
			t.Errorf("per-person should be unset for a single serving, got %v", one.PerPerson)
		}
		wantPer := three.Total / 3
		if math.Abs(three.PerPerson-wantPer) > 1e-9 {
			t.Errorf("per-person = %v, want %v", three.PerPerson, wantPer)
		}
	})

	t.Run("unknown tier falls back to medium", func(t *testing.T) {
		got := EstimateCost(list, "luxurious", 1)
		medium := EstimateCost(list, TierMedium, 1)
		if got.Total != medium.Total || got.Tier != TierMedium {
			t.Errorf("unknown tier priced as %v (%s), want medium", got.Total, got.Tier)
		}
	})

	t.Run("breakdowns reconcile with total", func(t *testing.T) {
		est := EstimateCost(list, TierMedium, 2)
		var sum float64
		for _, c := range est.ByCategory {
			sum += c
		}
		if math.Abs(sum-est.Total) > 1e-9 {
			t.Errorf("category sum %v != total %v", sum, est.Total)
		}
		if len(est.ByItem) != list.TotalItems {
			t.Errorf("by-item entries = %d, want %d", len(est.ByItem), list.TotalItems)
		}
	})

	t.Run("premium ingredient costs more than a staple", func(t *testing.T) {
		est := EstimateCost(list, TierMedium, 1)
		// paneer: proteins base 5.0 premium 1.5; oats: grains base 2.5 common 0.8.
		if est.ByItem["paneer"] <= est.ByItem["rolled oats"] {
			t.Errorf("paneer (%v) should out-price oats (%v)", est.ByItem["paneer"], est.ByItem["rolled oats"])
		}
	})
}
