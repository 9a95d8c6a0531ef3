package nutrition

import (
	"testing"

	"github.com/kamilw/dietplan/internal/domain"
)

func TestCalculateMacros_Grams(t *testing.T) {
	per100 := Per100{Calories: 200, Protein: 10, Fat: 5, Carbs: 30, Fiber: 2}

	// 150 g at per-100g basis: multiplier 1.5.
	m := CalculateMacros(150, per100, 1)
	if m.Calories != 300 {
		t.Errorf("Calories = %v, want 300", m.Calories)
	}
	if m.Protein != 15 {
		t.Errorf("Protein = %v, want 15", m.Protein)
	}
	if m.Fat != 7.5 {
		t.Errorf("Fat = %v, want 7.5", m.Fat)
	}
	if m.Carbs != 45 {
		t.Errorf("Carbs = %v, want 45", m.Carbs)
	}
	if m.Fiber != 3 {
		t.Errorf("Fiber = %v, want 3", m.Fiber)
	}
}

func TestCalculateMacros_UnitWeight(t *testing.T) {
	per100 := Per100{Calories: 140, Protein: 12.5}

	// 2 units × 60 g/unit = 120 g, multiplier 1.2.
	m := CalculateMacros(2, per100, 60)
	if m.Calories != 168 {
		t.Errorf("Calories = %v, want 168", m.Calories)
	}
	if m.Protein != 15 {
		t.Errorf("Protein = %v, want 15", m.Protein)
	}
}

func TestCalculateMacros_ZeroUnitWeightTreatedAsGrams(t *testing.T) {
	per100 := Per100{Calories: 100}
	m := CalculateMacros(50, per100, 0)
	if m.Calories != 50 {
		t.Errorf("Calories = %v, want 50", m.Calories)
	}
}

func TestCalculateMacros_EmptyBasis(t *testing.T) {
	m := CalculateMacros(150, Per100{}, 1)
	if m != (Macros{}) {
		t.Errorf("CalculateMacros with zero basis = %+v, want all zeros", m)
	}
}

func TestScaleIngredientsByRatio_Identity(t *testing.T) {
	// Same target and current total must not move any quantity; regression
	// for 150 erroneously becoming 15.
	ingredients := []domain.Ingredient{{UUID: "1", Quantity: 150}}
	scaled := ScaleIngredientsByRatio(ingredients, 150, 150)
	if scaled[0].Quantity != 150 {
		t.Errorf("Quantity = %v, want 150", scaled[0].Quantity)
	}
}

func TestScaleIngredientsByRatio_Scales(t *testing.T) {
	ingredients := []domain.Ingredient{
		{UUID: "1", Name: "ryż", Quantity: 100, Unit: "g"},
		{UUID: "2", Name: "kurczak", Quantity: 150, Unit: "g"},
	}
	scaled := ScaleIngredientsByRatio(ingredients, 500, 250)

	if scaled[0].Quantity != 200 || scaled[1].Quantity != 300 {
		t.Errorf("scaled quantities = %v, %v, want 200, 300", scaled[0].Quantity, scaled[1].Quantity)
	}
	// Non-quantity fields pass through.
	if scaled[0].Name != "ryż" || scaled[0].Unit != "g" || scaled[0].UUID != "1" {
		t.Errorf("non-quantity fields changed: %+v", scaled[0])
	}
	// Input untouched.
	if ingredients[0].Quantity != 100 || ingredients[1].Quantity != 150 {
		t.Errorf("input mutated: %v, %v", ingredients[0].Quantity, ingredients[1].Quantity)
	}
}

func TestScaleIngredientsByRatio_ZeroTotals(t *testing.T) {
	ingredients := []domain.Ingredient{{UUID: "1", Quantity: 150}}

	if got := ScaleIngredientsByRatio(ingredients, 0, 150); &got[0] != &ingredients[0] {
		t.Error("target 0: want input slice returned unchanged")
	}
	if got := ScaleIngredientsByRatio(ingredients, 150, 0); &got[0] != &ingredients[0] {
		t.Error("current 0: want input slice returned unchanged")
	}
}
