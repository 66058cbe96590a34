package shopping

import "testing"

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount float64
		wantUnit   string
		wantName   string
	}{
		{"amount unit name", "1 cup rolled oats", 1, "cup", "rolled oats"},
		{"decimal amount", "0.5 cup blueberries", 0.5, "cup", "blueberries"},
		{"fraction divides", "1/2 cup milk", 0.5, "cup", "milk"},
		{"range averages", "2-3 onions", 2.5, "pcs", "onions"},
		{"spaced range", "2 - 3 tomatoes", 2.5, "pcs", "tomatoes"},
		{"descriptor folds into name", "2 large eggs", 2, "pcs", "large eggs"},
		{"short token kept as unit", "200 g paneer", 200, "g", "paneer"},
		{"amount with bare name", "2 bananas", 2, "pcs", "bananas"},
		{"no amount at all", "Salt to taste", 1, "pcs", "salt to taste"},
		{"plural unit", "2 cups cooked rice", 2, "cups", "cooked rice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseIngredient(tc.text)
			if got.Amount != tc.wantAmount {
				t.Errorf("amount = %v, want %v", got.Amount, tc.wantAmount)
			}
			if got.Unit != tc.wantUnit {
				t.Errorf("unit = %q, want %q", got.Unit, tc.wantUnit)
			}
			if got.Name != tc.wantName {
				t.Errorf("name = %q, want %q", got.Name, tc.wantName)
			}
			if got.Original != tc.text {
				t.Errorf("original = %q, want %q", got.Original, tc.text)
			}
		})
	}
}
