package gorm

import (
	"context"
	"time"

	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingListRepository implements outbound.ShoppingListRepository using GORM.
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping-list repository.
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// ReplaceWeek regenerates the user's list for the week in one
// transaction: the old items are read for their checked state, deleted,
// and the new items inserted with checked flags carried over by
// normalized ingredient name. A failure anywhere rolls the whole
// regeneration back.
func (r *ShoppingListRepository) ReplaceWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time, items []shopping.ListItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var previous []ShoppingListItemModel
		if err := tx.
			Where("user_id = ? AND week_start = ?", userID, weekStart).
			Find(&previous).Error; err != nil {
			return err
		}

		checked := make(map[string]bool, len(previous))
		for _, old := range previous {
			if old.IsChecked {
				checked[shopping.NormalizeKey(old.Name)] = true
			}
		}

		if err := tx.
			Where("user_id = ? AND week_start = ?", userID, weekStart).
			Delete(&ShoppingListItemModel{}).Error; err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		models := make([]*ShoppingListItemModel, len(items))
		for i, item := range items {
			if checked[item.Key()] {
				item.IsChecked = true
			}
			models[i] = ItemToModel(item)
		}
		return tx.Create(models).Error
	})
}

// FindWeek returns the user's items in display order: category rank,
// then name.
func (r *ShoppingListRepository) FindWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]shopping.ListItem, error) {
	var models []ShoppingListItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]shopping.ListItem, len(models))
	for i := range models {
		items[i] = ModelToItem(&models[i])
	}
	shopping.SortForDisplay(items)
	return items, nil
}

// SetChecked updates one item's checked flag, scoped to the owning user
// so one user can never flip another's rows. The ownership check is the
// WHERE clause itself; a zero row count means no such item for this user.
func (r *ShoppingListRepository) SetChecked(ctx context.Context, userID, itemID uuid.UUID, isChecked bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ShoppingListItemModel{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("is_checked", isChecked)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
