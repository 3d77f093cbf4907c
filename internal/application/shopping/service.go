// Package shopping provides the application layer for shopping-list
// generation and checked-state tracking.
package shopping

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/forkcast/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the shopping-list use cases. Authenticated callers
// work against the relational store; guests work against the guest store
// with the same aggregation pipeline.
type Service struct {
	mealPlans outbound.MealPlanRepository
	recipes   outbound.RecipeRepository
	lists     outbound.ShoppingListRepository
	guests    outbound.GuestStore
	logger    *zap.Logger
}

// NewService creates a new shopping-list service.
func NewService(
	mealPlans outbound.MealPlanRepository,
	recipes outbound.RecipeRepository,
	lists outbound.ShoppingListRepository,
	guests outbound.GuestStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		mealPlans: mealPlans,
		recipes:   recipes,
		lists:     lists,
		guests:    guests,
		logger:    logger.Named("shopping-service"),
	}
}

var _ inbound.ShoppingListService = (*Service)(nil)

// Generate runs the full pipeline for one week: resolve the meal plan,
// bulk-load the distinct recipes, aggregate and classify their
// ingredients, and replace the stored list. An empty plan is refused with
// mealplan.ErrNoMeals before anything is written.
func (s *Service) Generate(ctx context.Context, caller inbound.Caller, weekStart time.Time) (*inbound.GenerateResult, error) {
	week := mealplan.WeekStartOf(weekStart)

	if caller.IsGuest() {
		return s.generateForGuest(ctx, caller.GuestID, week)
	}

	entries, err := s.mealPlans.FindWeek(ctx, caller.UserID, week)
	if err != nil {
		return nil, errors.NewStorageError("load meal plan", err)
	}
	if len(entries) == 0 {
		return nil, errors.NewEmptyMealPlanError(mealplan.FormatWeekStart(week)).
			WithCause(mealplan.ErrNoMeals)
	}

	recipeIDs := mealplan.DistinctRecipeIDs(entries)
	recipes, err := s.recipes.FindByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, errors.NewStorageError("load recipes", err)
	}
	if missing := len(recipeIDs) - len(recipes); missing > 0 {
		// Dangling recipe references are a data-integrity warning, not a
		// reason to abort the batch.
		s.logger.Warn("meal plan references missing recipes",
			zap.Stringer("user_id", caller.UserID),
			zap.Int("missing", missing),
		)
	}

	items := shopping.BuildList(caller.UserID, week, aggregateRecipes(recipes))

	if err := s.lists.ReplaceWeek(ctx, caller.UserID, week, items); err != nil {
		return nil, errors.NewStorageError("replace shopping list", err)
	}

	s.logger.Info("shopping list generated",
		zap.Stringer("user_id", caller.UserID),
		zap.String("week_start", mealplan.FormatWeekStart(week)),
		zap.Int("meal_count", len(entries)),
		zap.Int("ingredient_count", len(items)),
	)

	return &inbound.GenerateResult{
		WeekStart:       week,
		MealCount:       len(entries),
		IngredientCount: len(items),
	}, nil
}

// generateForGuest follows the same state machine against the guest
// store: no transaction, last write wins, and recipes are resolved one by
// one since there is no relational bulk read for guests.
func (s *Service) generateForGuest(ctx context.Context, guestID string, week time.Time) (*inbound.GenerateResult, error) {
	entries, err := s.guests.FindMealPlan(ctx, guestID, week)
	if err != nil {
		return nil, errors.NewStorageError("load guest meal plan", err)
	}
	if len(entries) == 0 {
		return nil, errors.NewEmptyMealPlanError(mealplan.FormatWeekStart(week)).
			WithCause(mealplan.ErrNoMeals)
	}

	var resolved []*recipe.Recipe
	for _, id := range mealplan.DistinctRecipeIDs(entries) {
		r, err := s.recipes.FindByID(ctx, id)
		if err != nil {
			s.logger.Warn("guest meal plan references missing recipe",
				zap.String("guest_id", guestID),
				zap.Stringer("recipe_id", id),
			)
			continue
		}
		resolved = append(resolved, r)
	}

	items := shopping.BuildList(uuid.Nil, week, aggregateRecipes(resolved))

	// Name-keyed checked state outlives regeneration for guests.
	checked, err := s.guests.CheckedKeys(ctx, guestID)
	if err == nil {
		for i := range items {
			items[i].IsChecked = checked[items[i].Key()]
		}
	}

	if err := s.guests.SaveList(ctx, guestID, week, items); err != nil {
		return nil, errors.NewStorageError("save guest shopping list", err)
	}

	return &inbound.GenerateResult{
		WeekStart:       week,
		MealCount:       len(entries),
		IngredientCount: len(items),
	}, nil
}

// GetList returns the caller's list for the week grouped by category,
// each bucket sorted by name.
func (s *Service) GetList(ctx context.Context, caller inbound.Caller, weekStart time.Time) (*inbound.ShoppingListView, error) {
	week := mealplan.WeekStartOf(weekStart)

	var (
		items []shopping.ListItem
		err   error
	)
	if caller.IsGuest() {
		items, err = s.guests.FindList(ctx, caller.GuestID, week)
		if err != nil {
			return nil, errors.NewStorageError("load guest shopping list", err)
		}
		if checked, cerr := s.guests.CheckedKeys(ctx, caller.GuestID); cerr == nil {
			for i := range items {
				items[i].IsChecked = checked[items[i].Key()]
			}
		}
		shopping.SortForDisplay(items)
	} else {
		// The repository orders by category then name already.
		items, err = s.lists.FindWeek(ctx, caller.UserID, week)
		if err != nil {
			return nil, errors.NewStorageError("load shopping list", err)
		}
	}

	view := &inbound.ShoppingListView{
		WeekStart:  week,
		Categories: make(map[string][]inbound.ShoppingItemView),
		TotalItems: len(items),
	}
	for cat, bucket := range shopping.GroupByCategory(items) {
		views := make([]inbound.ShoppingItemView, 0, len(bucket))
		for _, item := range bucket {
			views = append(views, inbound.ShoppingItemView{
				ID:        item.ID,
				Name:      item.Name,
				Measure:   item.Measure,
				IsChecked: item.IsChecked,
				RecipeID:  item.RecipeID,
			})
		}
		view.Categories[string(cat)] = views
	}
	return view, nil
}

// ToggleItem flips one item's checked flag. Authenticated toggles are a
// single-row update scoped to the owning user; a miss is reported as
// shopping.ErrItemNotOwned, never as someone else's row changing.
func (s *Service) ToggleItem(ctx context.Context, caller inbound.Caller, cmd inbound.ToggleCommand) error {
	if caller.IsGuest() {
		if cmd.IngredientKey == "" {
			return errors.NewBadRequestError("ingredient key is required")
		}
		key := shopping.NormalizeKey(cmd.IngredientKey)
		if err := s.guests.SetChecked(ctx, caller.GuestID, key, cmd.Checked); err != nil {
			return errors.NewStorageError("save guest checked state", err)
		}
		return nil
	}

	affected, err := s.lists.SetChecked(ctx, caller.UserID, cmd.ItemID, cmd.Checked)
	if err != nil {
		return errors.NewStorageError("update shopping item", err)
	}
	if !affected {
		return shopping.ErrItemNotOwned
	}
	return nil
}

// aggregateRecipes flattens recipe ingredient lines in recipe order and
// merges them.
func aggregateRecipes(recipes []*recipe.Recipe) []shopping.AggregatedIngredient {
	var lines []recipe.Ingredient
	for _, r := range recipes {
		lines = append(lines, r.Ingredients()...)
	}
	return shopping.Aggregate(lines)
}
