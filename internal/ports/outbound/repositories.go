// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/domain/user"
	"github.com/google/uuid"
)

// MealPlanRepository persists weekly meal plans.
type MealPlanRepository interface {
	// ReplaceWeek deletes the user's entries for the week and inserts the
	// given set, atomically. Saving a plan is always a full replace.
	ReplaceWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time, entries []mealplan.Entry) error

	// FindWeek returns the user's entries for the week, possibly empty.
	FindWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]mealplan.Entry, error)
}

// RecipeRepository reads the recipe catalog. The catalog is owned by the
// import pipeline; the planner and shopping-list builder only read it.
type RecipeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// FindByIDs bulk-loads recipes with their ingredients in a single
	// round trip. Unknown ids are omitted from the result, not errors.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)

	Search(ctx context.Context, criteria SearchCriteria) ([]*recipe.Recipe, int, error)
	Create(ctx context.Context, r *recipe.Recipe) error
}

// SearchCriteria defines catalog search parameters.
type SearchCriteria struct {
	Query    string
	Category string
	Area     string
	Offset   int
	Limit    int
}

// ShoppingListRepository persists generated shopping lists.
type ShoppingListRepository interface {
	// ReplaceWeek deletes the user's items for the week and inserts the
	// given set in one transaction; on any failure the prior list
	// survives untouched. Checked state is carried over from the old
	// items by normalized ingredient name.
	ReplaceWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time, items []shopping.ListItem) error

	// FindWeek returns the user's items ordered by category then name.
	FindWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]shopping.ListItem, error)

	// SetChecked updates one item's checked flag, scoped to the owning
	// user. It reports whether a row matched; a miss is not an error.
	SetChecked(ctx context.Context, userID, itemID uuid.UUID, checked bool) (bool, error)
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// GuestStore holds meal plans, shopping lists and checked state for
// visitors without an account, keyed by a client-generated guest id.
// Writes are last-write-wins; there is no transactional guarantee.
type GuestStore interface {
	SaveMealPlan(ctx context.Context, guestID string, weekStart time.Time, entries []mealplan.Entry) error
	FindMealPlan(ctx context.Context, guestID string, weekStart time.Time) ([]mealplan.Entry, error)

	SaveList(ctx context.Context, guestID string, weekStart time.Time, items []shopping.ListItem) error
	FindList(ctx context.Context, guestID string, weekStart time.Time) ([]shopping.ListItem, error)

	// Checked state is keyed by normalized ingredient name and stored
	// apart from the list content, so it survives regeneration.
	SetChecked(ctx context.Context, guestID, ingredientKey string, checked bool) error
	CheckedKeys(ctx context.Context, guestID string) (map[string]bool, error)
}
