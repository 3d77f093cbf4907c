package gorm

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlanRepository implements outbound.MealPlanRepository using GORM.
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal-plan repository.
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// ReplaceWeek swaps the user's plan for the week in one transaction.
// Saving is delete-then-insert; a failure on either side rolls back and
// leaves the previous plan intact.
func (r *MealPlanRepository) ReplaceWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time, entries []mealplan.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND week_start = ?", userID, weekStart).
			Delete(&MealPlanEntryModel{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		models := make([]*MealPlanEntryModel, len(entries))
		for i, entry := range entries {
			models[i] = EntryToModel(entry)
		}
		return tx.Create(models).Error
	})
}

// FindWeek returns the user's entries for the week in insertion order.
func (r *MealPlanRepository) FindWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]mealplan.Entry, error) {
	var models []MealPlanEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]mealplan.Entry, len(models))
	for i := range models {
		entries[i] = ModelToEntry(&models[i])
	}
	return entries, nil
}
