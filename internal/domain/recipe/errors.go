package recipe

import "errors"

// Domain errors for recipe catalog operations

var (
	ErrNameTooShort   = errors.New("recipe name must be at least 2 characters")
	ErrNameTooLong    = errors.New("recipe name must not exceed 255 characters")
	ErrRecipeNotFound = errors.New("recipe not found")
)
