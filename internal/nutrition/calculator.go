package nutrition

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MaxWeightGrams guards against kilograms entered as grams
	MaxWeightGrams = 10000.0

	// calorieTolerance is the allowed Atwater deviation, in percent
	calorieTolerance = 5.0

	highCalorieWarning = 1000.0

	suggestionCount = 5
)

// NutrientResult is the nutrient content of one portion of a food. It is
// computed fresh for each request and never modified afterwards.
type NutrientResult struct {
	FoodName           string  `json:"food_name"`
	PortionGrams       float64 `json:"portion_size_g"`
	PortionDescription string  `json:"portion_description"`
	Density            float64 `json:"density"`

	Calories           float64 `json:"calories"`
	Protein            float64 `json:"protein"`
	Carbs              float64 `json:"carbs"`
	Fat                float64 `json:"fat"`
	Fiber              float64 `json:"fiber"`
	Sugar              float64 `json:"sugar"`
	SaturatedFat       float64 `json:"saturated_fat"`
	MonounsaturatedFat float64 `json:"monounsaturated_fat"`
	PolyunsaturatedFat float64 `json:"polyunsaturated_fat"`
	TransFat           float64 `json:"trans_fat"`
	Cholesterol        float64 `json:"cholesterol"`
	Sodium             float64 `json:"sodium"`
	Potassium          float64 `json:"potassium"`

	CaloriesFromProtein float64 `json:"calories_from_protein"`
	CaloriesFromCarbs   float64 `json:"calories_from_carbs"`
	CaloriesFromFat     float64 `json:"calories_from_fat"`
	DerivedCalories     float64 `json:"total_calculated_calories"`
	CalorieAccuracy     float64 `json:"calorie_accuracy"`

	Vitamins map[string]float64 `json:"vitamins"`
	Minerals map[string]float64 `json:"minerals"`

	Quality            QualityAssessment `json:"nutritional_quality"`
	ValidationErrors   []string          `json:"validation_errors"`
	CalculationQuality string            `json:"calculation_quality"`
}

// PortionCheck compares a weight with the food's typical serving
type PortionCheck struct {
	FoodName            string  `json:"food_name"`
	WeightGrams         float64 `json:"weight_g"`
	TypicalPortionGrams float64 `json:"typical_portion_g"`
	DeviationPercent    float64 `json:"deviation_percent"`
	Recommendation      string  `json:"recommendation"`
}

// PortionUpdate is the result of moving a food from one weight to another
type PortionUpdate struct {
	FoodName            string          `json:"food_name"`
	OriginalGrams       float64         `json:"original_weight_g"`
	UpdatedGrams        float64         `json:"updated_weight_g"`
	WeightChangeGrams   float64         `json:"weight_change_g"`
	WeightChangePercent float64         `json:"weight_change_percent"`
	Nutrition           *NutrientResult `json:"precise_nutrition"`
	Validation          *PortionCheck   `json:"validation"`
}

// Calculator scales the reference table to concrete portions. It has no
// state of its own beyond the shared, read-only reference.
type Calculator struct {
	ref *Reference
}

// NewCalculator creates a Calculator over ref
func NewCalculator(ref *Reference) *Calculator {
	return &Calculator{ref: ref}
}

// Foods lists the food names the calculator knows
func (c *Calculator) Foods() []string {
	return c.ref.Names()
}

func validateWeight(grams float64) error {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || grams <= 0 {
		return fmt.Errorf("%w: weight %v must be a positive number", ErrInvalidInput, grams)
	}
	if grams > MaxWeightGrams {
		return fmt.Errorf("%w: weight too large: %vg, maximum %vg allowed", ErrInvalidInput, grams, MaxWeightGrams)
	}
	return nil
}

func (c *Calculator) lookup(name string, grams float64) (Food, error) {
	if strings.TrimSpace(name) == "" {
		return Food{}, fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}
	if err := validateWeight(grams); err != nil {
		return Food{}, err
	}
	food, ok := c.ref.Lookup(name)
	if !ok {
		return Food{}, &UnknownFoodError{Food: name, Suggestions: c.ref.Sample(suggestionCount)}
	}
	return food, nil
}

// Calculate returns the nutrients in grams of the named food
func (c *Calculator) Calculate(name string, grams float64) (*NutrientResult, error) {
	food, err := c.lookup(name, grams)
	if err != nil {
		return nil, err
	}
	return compute(food, grams), nil
}

// ScalePortion recomputes a result at a new weight from the reference
// table, never from the already-rounded values in r.
func (c *Calculator) ScalePortion(r *NutrientResult, grams float64) (*NutrientResult, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no result to scale", ErrInvalidInput)
	}
	return c.Calculate(r.FoodName, grams)
}

// ValidatePortion compares grams with the food's typical portion
func (c *Calculator) ValidatePortion(name string, grams float64) (*PortionCheck, error) {
	food, err := c.lookup(name, grams)
	if err != nil {
		return nil, err
	}

	typical := food.TypicalPortionGrams
	deviation := math.Abs(grams-typical) / typical * 100

	check := &PortionCheck{
		FoodName:            name,
		WeightGrams:         round(grams, 1),
		TypicalPortionGrams: typical,
		DeviationPercent:    round(deviation, 1),
		Recommendation:      "Good portion size",
	}
	switch {
	case deviation > 50:
		check.Recommendation = "Unusually large portion - consider splitting"
	case deviation > 25:
		check.Recommendation = "Larger than typical - ensure accuracy"
	case deviation < 10:
		check.Recommendation = "Perfect portion size"
	}
	return check, nil
}

// UpdatePortion recalculates a food at a new weight and reports the change
func (c *Calculator) UpdatePortion(name string, fromGrams, toGrams float64) (*PortionUpdate, error) {
	if err := validateWeight(fromGrams); err != nil {
		return nil, fmt.Errorf("original weight: %w", err)
	}
	result, err := c.Calculate(name, toGrams)
	if err != nil {
		return nil, err
	}
	check, err := c.ValidatePortion(name, toGrams)
	if err != nil {
		return nil, err
	}

	change := toGrams - fromGrams
	return &PortionUpdate{
		FoodName:            name,
		OriginalGrams:       fromGrams,
		UpdatedGrams:        toGrams,
		WeightChangeGrams:   round(change, 1),
		WeightChangePercent: round(change/fromGrams*100, 1),
		Nutrition:           result,
		Validation:          check,
	}, nil
}

func scale(per100g, grams float64) float64 {
	return per100g * grams / 100
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func compute(f Food, grams float64) *NutrientResult {
	calories := scale(f.Calories, grams)
	protein := scale(f.Protein, grams)
	carbs := scale(f.Carbs, grams)
	fat := scale(f.Fat, grams)
	fiber := scale(f.Fiber, grams)

	fromProtein := protein * 4
	fromCarbs := carbs * 4
	fromFat := fat * 9
	derived := fromProtein + fromCarbs + fromFat

	deviation := 0.0
	if calories > 0 {
		deviation = math.Abs(calories-derived) / calories * 100
	}
	accuracy := math.Max(0, 100-deviation)

	r := &NutrientResult{
		FoodName:           f.Name,
		PortionGrams:       round(grams, 1),
		PortionDescription: f.PortionDescription,
		Density:            f.Density,

		Calories:           round(calories, 1),
		Protein:            round(protein, 1),
		Carbs:              round(carbs, 1),
		Fat:                round(fat, 1),
		Fiber:              round(fiber, 1),
		Sugar:              round(scale(f.Sugar, grams), 1),
		SaturatedFat:       round(scale(f.SaturatedFat, grams), 1),
		MonounsaturatedFat: round(scale(f.MonounsaturatedFat, grams), 1),
		PolyunsaturatedFat: round(scale(f.PolyunsaturatedFat, grams), 1),
		TransFat:           round(scale(f.TransFat, grams), 1),
		Cholesterol:        round(scale(f.Cholesterol, grams), 2),
		Sodium:             round(scale(f.Sodium, grams), 2),
		Potassium:          round(scale(f.Potassium, grams), 2),

		CaloriesFromProtein: round(fromProtein, 1),
		CaloriesFromCarbs:   round(fromCarbs, 1),
		CaloriesFromFat:     round(fromFat, 1),
		DerivedCalories:     round(derived, 1),
		CalorieAccuracy:     round(accuracy, 2),

		Vitamins: scaleVitamins(f.Vitamins, grams),
		Minerals: scaleMinerals(f.Minerals, grams),

		ValidationErrors: []string{},
	}

	if deviation > calorieTolerance {
		r.ValidationErrors = append(r.ValidationErrors, fmt.Sprintf("Calorie calculation deviation: %.1f%%", deviation))
	}
	if protein < 0 || carbs < 0 || fat < 0 || fiber < 0 {
		r.ValidationErrors = append(r.ValidationErrors, "Negative nutrient values detected")
	}
	if calories > highCalorieWarning {
		r.ValidationErrors = append(r.ValidationErrors, fmt.Sprintf("Unusually high calorie count: %.1f", calories))
	}
	r.CalculationQuality = "excellent"
	if len(r.ValidationErrors) > 0 {
		r.CalculationQuality = "needs_review"
	}

	r.Quality = Assess(r)
	return r
}

func scaleVitamins(v Vitamins, grams float64) map[string]float64 {
	return map[string]float64{
		"vitamin_c":  round(scale(v.C, grams), 2),
		"vitamin_a":  round(scale(v.A, grams), 2),
		"vitamin_e":  round(scale(v.E, grams), 2),
		"vitamin_k":  round(scale(v.K, grams), 2),
		"thiamine":   round(scale(v.Thiamine, grams), 3),
		"riboflavin": round(scale(v.Riboflavin, grams), 3),
		"niacin":     round(scale(v.Niacin, grams), 3),
		"folate":     round(scale(v.Folate, grams), 2),
	}
}

func scaleMinerals(m Minerals, grams float64) map[string]float64 {
	return map[string]float64{
		"calcium":    round(scale(m.Calcium, grams), 2),
		"iron":       round(scale(m.Iron, grams), 2),
		"magnesium":  round(scale(m.Magnesium, grams), 2),
		"phosphorus": round(scale(m.Phosphorus, grams), 2),
		"zinc":       round(scale(m.Zinc, grams), 2),
		"copper":     round(scale(m.Copper, grams), 2),
		"manganese":  round(scale(m.Manganese, grams), 2),
		"selenium":   round(scale(m.Selenium, grams), 2),
	}
}
