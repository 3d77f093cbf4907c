package gorm

import (
	"sort"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/domain/user"
)

// UserToModel converts a domain user to its GORM model.
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ModelToUser converts a GORM model back to the domain entity.
func ModelToUser(m *UserModel) *user.User {
	return user.RehydrateUser(
		m.ID,
		m.Email,
		m.Name,
		m.PasswordHash,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
		m.LastLoginAt,
	)
}

// RecipeToModel converts a domain recipe to its GORM model, ingredient
// lines included.
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	lines := r.Ingredients()
	ingredients := make([]IngredientModel, len(lines))
	for i, ing := range lines {
		ingredients[i] = IngredientModel{
			RecipeID: r.ID(),
			Name:     ing.Name,
			Measure:  ing.Measure,
			Position: i,
		}
	}
	return &RecipeModel{
		ID:           r.ID(),
		Name:         r.Name(),
		Category:     r.Category(),
		Area:         r.Area(),
		Instructions: r.Instructions(),
		Image:        r.Image(),
		Tags:         StringSlice(r.Tags()),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
		Ingredients:  ingredients,
	}
}

// ModelToRecipe converts a GORM model back to the domain entity,
// restoring the authored ingredient order.
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	sort.SliceStable(m.Ingredients, func(i, j int) bool {
		return m.Ingredients[i].Position < m.Ingredients[j].Position
	})
	ingredients := make([]recipe.Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = recipe.Ingredient{
			RecipeID: ing.RecipeID,
			Name:     ing.Name,
			Measure:  ing.Measure,
		}
	}
	return recipe.Rehydrate(
		m.ID,
		m.Name,
		m.Category,
		m.Area,
		m.Instructions,
		m.Image,
		m.Tags,
		ingredients,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// EntryToModel converts a meal-plan entry to its GORM model.
func EntryToModel(e mealplan.Entry) *MealPlanEntryModel {
	return &MealPlanEntryModel{
		UserID:    e.UserID,
		WeekStart: e.WeekStart,
		Day:       string(e.Day),
		MealTime:  string(e.Time),
		RecipeID:  e.RecipeID,
	}
}

// ModelToEntry converts a GORM model back to a meal-plan entry.
func ModelToEntry(m *MealPlanEntryModel) mealplan.Entry {
	return mealplan.Entry{
		UserID:    m.UserID,
		WeekStart: m.WeekStart,
		Day:       mealplan.DayOfWeek(m.Day),
		Time:      mealplan.MealTime(m.MealTime),
		RecipeID:  m.RecipeID,
	}
}

// ItemToModel converts a shopping-list item to its GORM model.
func ItemToModel(item shopping.ListItem) *ShoppingListItemModel {
	return &ShoppingListItemModel{
		ID:        item.ID,
		UserID:    item.UserID,
		WeekStart: item.WeekStart,
		Name:      item.Name,
		Measure:   item.Measure,
		Category:  string(item.Category),
		IsChecked: item.IsChecked,
		RecipeID:  item.RecipeID,
	}
}

// ModelToItem converts a GORM model back to a shopping-list item.
func ModelToItem(m *ShoppingListItemModel) shopping.ListItem {
	return shopping.ListItem{
		ID:        m.ID,
		UserID:    m.UserID,
		WeekStart: m.WeekStart,
		Name:      m.Name,
		Measure:   m.Measure,
		Category:  shopping.Category(m.Category),
		IsChecked: m.IsChecked,
		RecipeID:  m.RecipeID,
	}
}
