// Package recipe contains the domain model for the recipe catalog.
// The catalog is read-mostly: recipes are imported in bulk and consumed
// by the meal planner and the shopping-list builder.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Recipe represents a recipe in the catalog.
type Recipe struct {
	id           uuid.UUID
	name         string
	category     string
	area         string
	instructions string
	image        string
	tags         []string
	ingredients  []Ingredient
	createdAt    time.Time
	updatedAt    time.Time
}

// NewRecipe creates a new Recipe with validation.
func NewRecipe(name, category, area string) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Recipe{
		id:        uuid.New(),
		name:      name,
		category:  category,
		area:      area,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rehydrate reconstructs a Recipe from persisted state. It bypasses
// creation-time validation; the repository is the only intended caller.
func Rehydrate(
	id uuid.UUID,
	name, category, area, instructions, image string,
	tags []string,
	ingredients []Ingredient,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:           id,
		name:         name,
		category:     category,
		area:         area,
		instructions: instructions,
		image:        image,
		tags:         tags,
		ingredients:  ingredients,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Name returns the recipe's name.
func (r *Recipe) Name() string {
	return r.name
}

// Category returns the catalog category (e.g. "Seafood", "Dessert").
// This is unrelated to shopping.Category, which classifies ingredients.
func (r *Recipe) Category() string {
	return r.category
}

// Area returns the cuisine area (e.g. "Italian").
func (r *Recipe) Area() string {
	return r.area
}

// Instructions returns the preparation instructions.
func (r *Recipe) Instructions() string {
	return r.instructions
}

// Image returns the recipe's image URL.
func (r *Recipe) Image() string {
	return r.image
}

// Tags returns the recipe's tags.
func (r *Recipe) Tags() []string {
	return r.tags
}

// Ingredients returns the recipe's ingredient lines.
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// CreatedAt returns when the recipe was created.
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated.
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// SetInstructions updates the preparation instructions.
func (r *Recipe) SetInstructions(instructions string) {
	r.instructions = instructions
	r.updatedAt = time.Now()
}

// SetImage updates the image URL.
func (r *Recipe) SetImage(image string) {
	r.image = image
	r.updatedAt = time.Now()
}

// SetTags replaces the recipe's tags.
func (r *Recipe) SetTags(tags []string) {
	r.tags = tags
	r.updatedAt = time.Now()
}

// AddIngredient appends an ingredient line to the recipe.
func (r *Recipe) AddIngredient(ing Ingredient) error {
	if err := ing.Validate(); err != nil {
		return err
	}

	ing.RecipeID = r.id
	r.ingredients = append(r.ingredients, ing)
	r.updatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	if len(name) < 2 {
		return ErrNameTooShort
	}
	if len(name) > 255 {
		return ErrNameTooLong
	}
	return nil
}
