// Package mealplan provides the application layer for building and
// reading weekly meal plans.
package mealplan

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/forkcast/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the meal-plan use cases for both authenticated users
// and guests.
type Service struct {
	mealPlans outbound.MealPlanRepository
	recipes   outbound.RecipeRepository
	guests    outbound.GuestStore
	logger    *zap.Logger
}

// NewService creates a new meal-plan service.
func NewService(
	mealPlans outbound.MealPlanRepository,
	recipes outbound.RecipeRepository,
	guests outbound.GuestStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		mealPlans: mealPlans,
		recipes:   recipes,
		guests:    guests,
		logger:    logger.Named("mealplan-service"),
	}
}

var _ inbound.MealPlanService = (*Service)(nil)

// SaveWeek validates the slots and replaces the caller's plan for the
// week. Saving is always a full replace; an empty slot list clears the
// week. A (day, meal time) slot holds one recipe, so duplicate slots in
// the payload collapse last-wins before anything is persisted.
func (s *Service) SaveWeek(ctx context.Context, caller inbound.Caller, weekStart time.Time, slots []inbound.PlanSlot) error {
	week := mealplan.WeekStartOf(weekStart)

	entries := make([]mealplan.Entry, 0, len(slots))
	bySlot := make(map[string]int, len(slots))
	for _, slot := range slots {
		entry := mealplan.Entry{
			UserID:    caller.UserID,
			WeekStart: week,
			Day:       slot.Day,
			Time:      slot.Time,
			RecipeID:  slot.RecipeID,
		}
		if err := entry.Validate(); err != nil {
			return errors.NewValidationError(err.Error()).
				WithMetadata("day", string(slot.Day)).
				WithMetadata("time", string(slot.Time))
		}
		key := string(slot.Day) + "/" + string(slot.Time)
		if at, seen := bySlot[key]; seen {
			entries[at] = entry
			continue
		}
		bySlot[key] = len(entries)
		entries = append(entries, entry)
	}

	if caller.IsGuest() {
		if err := s.guests.SaveMealPlan(ctx, caller.GuestID, week, entries); err != nil {
			return errors.NewStorageError("save guest meal plan", err)
		}
		return nil
	}

	if err := s.mealPlans.ReplaceWeek(ctx, caller.UserID, week, entries); err != nil {
		return errors.NewStorageError("replace meal plan", err)
	}

	s.logger.Info("meal plan saved",
		zap.Stringer("user_id", caller.UserID),
		zap.String("week_start", mealplan.FormatWeekStart(week)),
		zap.Int("slots", len(entries)),
	)
	return nil
}

// GetWeek returns the caller's plan for the week, decorated with recipe
// details. Slots whose recipe has vanished from the catalog are dropped
// from the view rather than failing the read.
func (s *Service) GetWeek(ctx context.Context, caller inbound.Caller, weekStart time.Time) (*inbound.WeekPlanView, error) {
	week := mealplan.WeekStartOf(weekStart)

	var (
		entries []mealplan.Entry
		err     error
	)
	if caller.IsGuest() {
		entries, err = s.guests.FindMealPlan(ctx, caller.GuestID, week)
		if err != nil {
			return nil, errors.NewStorageError("load guest meal plan", err)
		}
	} else {
		entries, err = s.mealPlans.FindWeek(ctx, caller.UserID, week)
		if err != nil {
			return nil, errors.NewStorageError("load meal plan", err)
		}
	}

	view := &inbound.WeekPlanView{
		WeekStart: week,
		Meals:     make(map[mealplan.DayOfWeek]map[mealplan.MealTime]inbound.PlannedMealView),
	}
	if len(entries) == 0 {
		return view, nil
	}

	resolved, err := s.recipes.FindByIDs(ctx, mealplan.DistinctRecipeIDs(entries))
	if err != nil {
		return nil, errors.NewStorageError("load recipes", err)
	}
	byID := make(map[string]*recipe.Recipe, len(resolved))
	for _, r := range resolved {
		byID[r.ID().String()] = r
	}

	for _, entry := range entries {
		r, ok := byID[entry.RecipeID.String()]
		if !ok {
			continue
		}
		if view.Meals[entry.Day] == nil {
			view.Meals[entry.Day] = make(map[mealplan.MealTime]inbound.PlannedMealView)
		}
		view.Meals[entry.Day][entry.Time] = inbound.PlannedMealView{
			RecipeID: r.ID(),
			Name:     r.Name(),
			Image:    r.Image(),
			Category: r.Category(),
		}
	}
	return view, nil
}
