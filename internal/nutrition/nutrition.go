// Package nutrition computes ingredient macros from a per-100g basis and
// rescales ingredient quantities proportionally.
package nutrition

import (
	"github.com/kamilw/dietplan/internal/domain"
	"github.com/kamilw/dietplan/internal/numeric"
)

// Per100 is the nutrition basis of a product per 100 grams.
type Per100 struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
}

// Macros holds the computed nutrition values for a concrete quantity.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
}

// CalculateMacros computes macros for quantity units of a product given its
// per-100g basis. unitWeight is grams per unit; pass 1 (or 0, treated the
// same) when the unit is already grams. Calories round to whole numbers,
// the remaining fields to one decimal.
func CalculateMacros(quantity float64, per100 Per100, unitWeight float64) Macros {
	if unitWeight <= 0 {
		unitWeight = 1
	}
	effectiveGrams := numeric.Multiply(quantity, unitWeight, 4)
	multiplier := numeric.Divide(effectiveGrams, 100, 6)

	return Macros{
		Calories: numeric.Multiply(per100.Calories, multiplier, 0),
		Protein:  numeric.Multiply(per100.Protein, multiplier, 1),
		Fat:      numeric.Multiply(per100.Fat, multiplier, 1),
		Carbs:    numeric.Multiply(per100.Carbs, multiplier, 1),
		Fiber:    numeric.Multiply(per100.Fiber, multiplier, 1),
	}
}

// ScaleIngredientsByRatio rescales every ingredient quantity by
// target/current. A zero target or current total returns the input slice
// unchanged (scaling toward or from zero would only distort quantities).
// Otherwise a new slice is returned; elements are shallow copies with only
// Quantity replaced, and the input is never mutated.
func ScaleIngredientsByRatio(ingredients []domain.Ingredient, targetTotal, currentTotal float64) []domain.Ingredient {
	if currentTotal == 0 || targetTotal == 0 {
		return ingredients
	}
	ratio := targetTotal / currentTotal
	scaled := make([]domain.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		scaled[i] = ing
		scaled[i].Quantity = numeric.Multiply(ing.Quantity, ratio, 1)
	}
	return scaled
}
