package mealplan

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEntryValidate(t *testing.T) {
	valid := Entry{Day: Monday, Time: Dinner, RecipeID: uuid.New()}
	assert.NoError(t, valid.Validate())

	badDay := Entry{Day: "moonday", Time: Dinner, RecipeID: uuid.New()}
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidDay)

	badTime := Entry{Day: Monday, Time: "brunch", RecipeID: uuid.New()}
	assert.ErrorIs(t, badTime.Validate(), ErrInvalidMealTime)

	noRecipe := Entry{Day: Monday, Time: Dinner}
	assert.ErrorIs(t, noRecipe.Validate(), ErrMissingRecipe)
}

func TestDistinctRecipeIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	entries := []Entry{
		{Day: Monday, Time: Dinner, RecipeID: a},
		{Day: Tuesday, Time: Lunch, RecipeID: b},
		{Day: Wednesday, Time: Dinner, RecipeID: a},
	}

	ids := DistinctRecipeIDs(entries)

	assert.Equal(t, []uuid.UUID{a, b}, ids, "repeated recipes resolve once, first-seen order kept")
	assert.Empty(t, DistinctRecipeIDs(nil))
}
