package mealplan

import "errors"

// Domain errors for meal-plan operations

var (
	ErrInvalidDay       = errors.New("day of week must be monday through sunday")
	ErrInvalidMealTime  = errors.New("meal time must be breakfast, lunch, dinner or snacks")
	ErrMissingRecipe    = errors.New("meal plan entry requires a recipe")
	ErrInvalidWeekStart = errors.New("week start must be a YYYY-MM-DD date")

	// ErrNoMeals is the defined empty-plan failure: generating a shopping
	// list for a week with no planned meals is refused, not an empty success.
	ErrNoMeals = errors.New("no meals found for this week")
)
