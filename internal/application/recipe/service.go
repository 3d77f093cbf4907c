// Package recipe provides the application layer for the recipe catalog.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/forkcast/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const detailCacheTTL = time.Hour

// Service implements the catalog use cases with a read-through cache on
// recipe details.
type Service struct {
	recipes outbound.RecipeRepository
	cache   outbound.CacheRepository
	logger  *zap.Logger
}

// NewService creates a new catalog service.
func NewService(recipes outbound.RecipeRepository, cache outbound.CacheRepository, logger *zap.Logger) *Service {
	return &Service{
		recipes: recipes,
		cache:   cache,
		logger:  logger.Named("recipe-service"),
	}
}

var _ inbound.RecipeService = (*Service)(nil)

// GetRecipe returns one recipe with its ingredient lines.
func (s *Service) GetRecipe(ctx context.Context, id uuid.UUID) (*inbound.RecipeDetailView, error) {
	if cached := s.getCached(ctx, id); cached != nil {
		return cached, nil
	}

	entity, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return nil, errors.NewNotFoundError("recipe")
		}
		return nil, errors.NewStorageError("find recipe", err)
	}

	view := toDetailView(entity)
	s.putCached(ctx, view)
	return view, nil
}

// SearchRecipes returns a page of catalog matches.
func (s *Service) SearchRecipes(ctx context.Context, query inbound.SearchQuery) (*inbound.RecipeListView, error) {
	if query.PageSize <= 0 || query.PageSize > 100 {
		query.PageSize = 20
	}
	if query.Page < 0 {
		query.Page = 0
	}

	criteria := outbound.SearchCriteria{
		Query:    query.Text,
		Category: query.Category,
		Area:     query.Area,
		Offset:   query.Page * query.PageSize,
		Limit:    query.PageSize,
	}

	matches, total, err := s.recipes.Search(ctx, criteria)
	if err != nil {
		return nil, errors.NewStorageError("search recipes", err)
	}

	summaries := make([]inbound.RecipeSummaryView, len(matches))
	for i, r := range matches {
		summaries[i] = inbound.RecipeSummaryView{
			ID:       r.ID(),
			Name:     r.Name(),
			Category: r.Category(),
			Area:     r.Area(),
			Image:    r.Image(),
		}
	}

	return &inbound.RecipeListView{
		Recipes:    summaries,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: (total + query.PageSize - 1) / query.PageSize,
	}, nil
}

// ImportRecipe adds one recipe to the catalog. Used by the seeding
// pipeline rather than end users.
func (s *Service) ImportRecipe(ctx context.Context, cmd inbound.ImportRecipeCommand) (*inbound.RecipeDetailView, error) {
	entity, err := recipe.NewRecipe(cmd.Name, cmd.Category, cmd.Area)
	if err != nil {
		return nil, errors.Wrap(err, "invalid recipe")
	}
	entity.SetInstructions(cmd.Instructions)
	entity.SetImage(cmd.Image)
	entity.SetTags(cmd.Tags)

	for _, ing := range cmd.Ingredients {
		if err := entity.AddIngredient(recipe.Ingredient{Name: ing.Name, Measure: ing.Measure}); err != nil {
			return nil, errors.Wrap(err, "invalid ingredient")
		}
	}

	if err := s.recipes.Create(ctx, entity); err != nil {
		return nil, errors.NewStorageError("create recipe", err)
	}

	s.logger.Info("recipe imported",
		zap.Stringer("recipe_id", entity.ID()),
		zap.String("name", entity.Name()),
	)
	return toDetailView(entity), nil
}

func toDetailView(entity *recipe.Recipe) *inbound.RecipeDetailView {
	lines := entity.Ingredients()
	ingredients := make([]inbound.IngredientView, len(lines))
	for i, ing := range lines {
		ingredients[i] = inbound.IngredientView{Name: ing.Name, Measure: ing.Measure}
	}
	return &inbound.RecipeDetailView{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Category:     entity.Category(),
		Area:         entity.Area(),
		Instructions: entity.Instructions(),
		Image:        entity.Image(),
		Tags:         entity.Tags(),
		Ingredients:  ingredients,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("recipe:%s", id)
}

// getCached returns the cached detail view, or nil on any miss or decode
// failure. The cache never makes a read fail.
func (s *Service) getCached(ctx context.Context, id uuid.UUID) *inbound.RecipeDetailView {
	raw, err := s.cache.Get(ctx, cacheKey(id))
	if err != nil {
		return nil
	}
	var view inbound.RecipeDetailView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil
	}
	return &view
}

func (s *Service) putCached(ctx context.Context, view *inbound.RecipeDetailView) {
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(view.ID), raw, detailCacheTTL); err != nil {
		s.logger.Debug("recipe cache write failed", zap.Error(err))
	}
}
