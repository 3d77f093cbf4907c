package recipe

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Ingredient represents a single ingredient line on a recipe.
// Names and measures are free text as imported from the catalog source;
// no unit parsing is attempted.
type Ingredient struct {
	RecipeID uuid.UUID
	Name     string
	Measure  string
}

// Validate validates the ingredient line.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("ingredient name is required")
	}
	return nil
}
