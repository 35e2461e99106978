package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned for an empty food name or an out-of-range weight
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownFood is returned when the food is not in the reference table
	ErrUnknownFood = errors.New("unknown food")
)

// UnknownFoodError names the missing food and a few valid ones
type UnknownFoodError struct {
	Food        string
	Suggestions []string
}

func (e *UnknownFoodError) Error() string {
	return fmt.Sprintf("unknown food: %s. Available foods: %s...", e.Food, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownFoodError) Unwrap() error {
	return ErrUnknownFood
}

// Suggestions extracts example food names from an error, if it carries any
func Suggestions(err error) []string {
	var unknown *UnknownFoodError
	if errors.As(err, &unknown) {
		return unknown.Suggestions
	}
	return nil
}
