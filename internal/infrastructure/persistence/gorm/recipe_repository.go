package gorm

import (
	"context"
	"errors"

	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository implements outbound.RecipeRepository using GORM.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists a recipe with its ingredient lines.
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	model := RecipeToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID loads one recipe with its ingredients.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&model, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return ModelToRecipe(&model), nil
}

// FindByIDs bulk-loads recipes in one round trip. Unknown ids are simply
// absent from the result, and the requested order is preserved for the
// ids that were found.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id IN ?", ids).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[uuid.UUID]*RecipeModel, len(models))
	for i := range models {
		byID[models[i].ID] = &models[i]
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			recipes = append(recipes, ModelToRecipe(m))
		}
	}
	return recipes, nil
}

// Search pages through the catalog. Text matches against the recipe name,
// case-insensitively.
func (r *RecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if criteria.Query != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+criteria.Query+"%")
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Area != "" {
		query = query.Where("area = ?", criteria.Area)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	result := query.
		Preload("Ingredients").
		Order("name ASC").
		Offset(criteria.Offset).
		Limit(criteria.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, int(total), nil
}
