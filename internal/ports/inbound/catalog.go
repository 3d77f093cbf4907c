package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeService defines the recipe catalog use cases. The catalog is
// read-mostly; ImportRecipe exists for the seeding pipeline.
type RecipeService interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDetailView, error)
	SearchRecipes(ctx context.Context, query SearchQuery) (*RecipeListView, error)
	ImportRecipe(ctx context.Context, cmd ImportRecipeCommand) (*RecipeDetailView, error)
}

// SearchQuery defines catalog search parameters.
type SearchQuery struct {
	Text     string
	Category string
	Area     string
	Page     int
	PageSize int
}

// ImportRecipeCommand carries one recipe into the catalog.
type ImportRecipeCommand struct {
	Name         string
	Category     string
	Area         string
	Instructions string
	Image        string
	Tags         []string
	Ingredients  []IngredientInput
}

// IngredientInput is one ingredient line of an imported recipe.
type IngredientInput struct {
	Name    string `json:"name" validate:"required"`
	Measure string `json:"measure"`
}

// RecipeDetailView is the full presentation shape of one recipe.
type RecipeDetailView struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Area         string           `json:"area"`
	Instructions string           `json:"instructions"`
	Image        string           `json:"image"`
	Tags         []string         `json:"tags"`
	Ingredients  []IngredientView `json:"ingredients"`
}

// IngredientView is one renderable ingredient line.
type IngredientView struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// RecipeListView is a page of catalog search results.
type RecipeListView struct {
	Recipes    []RecipeSummaryView `json:"recipes"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// RecipeSummaryView is the list-row shape of a recipe.
type RecipeSummaryView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Area     string    `json:"area"`
	Image    string    `json:"image"`
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*UserView, error)

	// Authenticate verifies credentials and records the login. Bad
	// credentials and unknown emails both surface as
	// user.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*UserView, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*UserView, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string) (*UserView, error)
}

// RegisterCommand creates a new account.
type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

// UserView is the presentation shape of an account.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
