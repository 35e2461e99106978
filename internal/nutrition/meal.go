package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

// MealType buckets a meal by total calories
type MealType string

const (
	LightSnack  MealType = "light_snack"
	Snack       MealType = "snack"
	LightMeal   MealType = "light_meal"
	RegularMeal MealType = "regular_meal"
	LargeMeal   MealType = "large_meal"
)

func classifyMeal(calories float64) MealType {
	switch {
	case calories < 200:
		return LightSnack
	case calories < 400:
		return Snack
	case calories < 600:
		return LightMeal
	case calories < 800:
		return RegularMeal
	}
	return LargeMeal
}

// Ingredient is one food in a meal
type Ingredient struct {
	Name  string  `json:"name"`
	Grams float64 `json:"weight_grams"`
}

// SkippedIngredient is an ingredient left out of the totals
type SkippedIngredient struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MealAnalysis sums the ingredients of a meal
type MealAnalysis struct {
	TotalCalories   float64 `json:"total_calories"`
	TotalProtein    float64 `json:"total_protein"`
	TotalCarbs      float64 `json:"total_carbs"`
	TotalFat        float64 `json:"total_fat"`
	TotalFiber      float64 `json:"total_fiber"`
	TotalWeight     float64 `json:"total_weight_g"`
	CaloriesPer100g float64 `json:"calories_per_100g"`

	MealType        MealType            `json:"meal_type"`
	Quality         QualityAssessment   `json:"nutritional_quality"`
	Recommendations []string            `json:"dietary_recommendations"`
	Breakdown       []*NutrientResult   `json:"detailed_breakdown"`
	Skipped         []SkippedIngredient `json:"skipped"`
}

// ErrEmptyMeal is returned when no ingredient could be calculated
var ErrEmptyMeal = errors.New("no valid ingredients in meal")

// AnalyzeMeal totals the ingredients. Unknown or invalid ingredients are
// reported in Skipped rather than failing the whole meal.
func (c *Calculator) AnalyzeMeal(ingredients []Ingredient) (*MealAnalysis, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: meal has no ingredients", ErrInvalidInput)
	}

	m := &MealAnalysis{
		Breakdown: []*NutrientResult{},
		Skipped:   []SkippedIngredient{},
	}
	var calories, protein, carbs, fat, fiber, weight, vitaminC, iron float64

	for _, ing := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		r, err := c.Calculate(name, ing.Grams)
		if err != nil {
			m.Skipped = append(m.Skipped, SkippedIngredient{Name: ing.Name, Reason: err.Error()})
			continue
		}
		m.Breakdown = append(m.Breakdown, r)

		calories += r.Calories
		protein += r.Protein
		carbs += r.Carbs
		fat += r.Fat
		fiber += r.Fiber
		weight += ing.Grams
		vitaminC += r.Vitamins["vitamin_c"]
		iron += r.Minerals["iron"]
	}

	if len(m.Breakdown) == 0 {
		return nil, fmt.Errorf("%w: %d ingredient(s) skipped", ErrEmptyMeal, len(m.Skipped))
	}

	m.TotalCalories = round(calories, 1)
	m.TotalProtein = round(protein, 1)
	m.TotalCarbs = round(carbs, 1)
	m.TotalFat = round(fat, 1)
	m.TotalFiber = round(fiber, 1)
	m.TotalWeight = round(weight, 1)
	m.CaloriesPer100g = round(calories/weight*100, 1)
	m.MealType = classifyMeal(calories)
	m.Quality = assess(profile{
		calories: calories,
		protein:  protein,
		carbs:    carbs,
		fat:      fat,
		fiber:    fiber,
		vitaminC: vitaminC,
		iron:     iron,
		micros:   true,
	})
	m.Recommendations = dietaryAdvice(calories, protein, carbs, fat)
	return m, nil
}

func dietaryAdvice(calories, protein, carbs, fat float64) []string {
	recs := []string{}
	if calories > 1000 {
		recs = append(recs, "High calorie meal - consider portion control")
	}
	if calories < 300 {
		recs = append(recs, "Light meal - may need additional snacks")
	}
	if protein < 20 {
		recs = append(recs, "Consider adding more protein")
	}
	if fat > 50 {
		recs = append(recs, "High fat content - balance with vegetables")
	}
	if carbs > 100 {
		recs = append(recs, "High carb content - add protein and fiber")
	}
	return recs
}
