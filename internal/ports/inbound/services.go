// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/google/uuid"
)

// Caller identifies who an operation runs for: an authenticated user or a
// guest carrying a client-generated id. Exactly one side is set.
type Caller struct {
	UserID  uuid.UUID
	GuestID string
}

// IsGuest reports whether the caller is an anonymous visitor.
func (c Caller) IsGuest() bool {
	return c.GuestID != ""
}

// ShoppingListService defines the shopping-list use cases.
type ShoppingListService interface {
	// Generate turns the caller's meal plan for the week into a fresh,
	// categorized shopping list. It fails with mealplan.ErrNoMeals when
	// the week has no planned meals.
	Generate(ctx context.Context, caller Caller, weekStart time.Time) (*GenerateResult, error)

	// GetList returns the caller's list for the week, grouped by category.
	GetList(ctx context.Context, caller Caller, weekStart time.Time) (*ShoppingListView, error)

	// ToggleItem flips one item's checked flag. For authenticated callers
	// itemID addresses a row; a row owned by someone else is a silent
	// no-op surfaced as shopping.ErrItemNotOwned. For guests the item is
	// addressed by normalized ingredient name.
	ToggleItem(ctx context.Context, caller Caller, cmd ToggleCommand) error
}

// GenerateResult reports the counts emitted on a successful generation.
type GenerateResult struct {
	WeekStart       time.Time
	MealCount       int
	IngredientCount int
}

// ToggleCommand addresses one shopping-list item.
type ToggleCommand struct {
	ItemID        uuid.UUID // authenticated path
	IngredientKey string    // guest path
	Checked       bool
}

// ShoppingListView is the presentation shape of a list: items bucketed by
// category, each bucket sorted by name.
type ShoppingListView struct {
	WeekStart  time.Time
	Categories map[string][]ShoppingItemView
	TotalItems int
}

// ShoppingItemView is one renderable shopping-list line.
type ShoppingItemView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Measure   string    `json:"measure"`
	IsChecked bool      `json:"is_checked"`
	RecipeID  uuid.UUID `json:"recipe_id"`
}

// MealPlanService defines the weekly meal-plan use cases.
type MealPlanService interface {
	// SaveWeek replaces the caller's plan for the week with the given
	// slots. Full replace, never a merge.
	SaveWeek(ctx context.Context, caller Caller, weekStart time.Time, slots []PlanSlot) error

	// GetWeek returns the caller's plan organized by day and meal time,
	// decorated with recipe details.
	GetWeek(ctx context.Context, caller Caller, weekStart time.Time) (*WeekPlanView, error)
}

// PlanSlot assigns a recipe to one slot of the week being saved.
type PlanSlot struct {
	Day      mealplan.DayOfWeek
	Time     mealplan.MealTime
	RecipeID uuid.UUID
}

// WeekPlanView maps day -> meal time -> planned meal.
type WeekPlanView struct {
	WeekStart time.Time
	Meals     map[mealplan.DayOfWeek]map[mealplan.MealTime]PlannedMealView
}

// PlannedMealView is one planned meal with its recipe details.
type PlannedMealView struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Category string    `json:"category"`
}
