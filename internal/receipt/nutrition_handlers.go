package receipt

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zombor/pantry-scan/internal/nutrition"
)

type portionRequest struct {
	FoodName    string  `json:"food_name"`
	WeightGrams float64 `json:"weight_grams"`
}

type updatePortionRequest struct {
	FoodName        string  `json:"food_name"`
	OriginalWeightG float64 `json:"original_weight_g"`
	NewWeightG      float64 `json:"new_weight_g"`
}

type mealRequest struct {
	Ingredients []nutrition.Ingredient `json:"ingredients"`
}

// writeNutritionError maps calculator errors to status codes. Unknown foods
// carry a few valid names so the client can correct the request.
func writeNutritionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, nutrition.ErrUnknownFood):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:    err.Error(),
			Examples: nutrition.Suggestions(err),
		})
	case errors.Is(err, nutrition.ErrInvalidInput), errors.Is(err, nutrition.ErrEmptyMeal):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Nutrition calculation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req portionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.nutrition.Calculate(req.FoodName, req.WeightGrams)
	if err != nil {
		writeNutritionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidatePortion(w http.ResponseWriter, r *http.Request) {
	var req portionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	check, err := s.nutrition.ValidatePortion(req.FoodName, req.WeightGrams)
	if err != nil {
		writeNutritionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleUpdatePortion(w http.ResponseWriter, r *http.Request) {
	var req updatePortionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update, err := s.nutrition.UpdatePortion(req.FoodName, req.OriginalWeightG, req.NewWeightG)
	if err != nil {
		writeNutritionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleAnalyzeMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	meal, err := s.nutrition.AnalyzeMeal(req.Ingredients)
	if err != nil {
		writeNutritionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	foods := s.nutrition.Foods()
	writeJSON(w, http.StatusOK, map[string]any{
		"foods": foods,
		"count": len(foods),
	})
}
