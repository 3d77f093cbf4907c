// Package gorm provides GORM model definitions and repository
// implementations backing the outbound persistence ports.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// RecipeModel represents the GORM model for catalog recipes
type RecipeModel struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name         string      `gorm:"type:varchar(255);not null;index"`
	Category     string      `gorm:"type:varchar(100);index"`
	Area         string      `gorm:"type:varchar(100);index"`
	Instructions string      `gorm:"type:text"`
	Image        string      `gorm:"type:text"`
	Tags         StringSlice `gorm:"type:json"`
	CreatedAt    time.Time   `gorm:"index"`
	UpdatedAt    time.Time

	// Relationships
	Ingredients []IngredientModel `gorm:"foreignKey:RecipeID"`
}

// IngredientModel represents one ingredient line of a recipe. Position
// preserves the authoring order.
type IngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Measure  string    `gorm:"type:varchar(100)"`
	Position int       `gorm:"default:0"`
}

// MealPlanEntryModel represents one slot of a user's weekly plan. The
// slot index is unique: a (user, week, day, meal time) cell holds at most
// one recipe.
type MealPlanEntryModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_meal_plan_slot"`
	WeekStart time.Time `gorm:"not null;uniqueIndex:idx_meal_plan_slot"`
	Day       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_meal_plan_slot"`
	MealTime  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_meal_plan_slot"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time
}

// ShoppingListItemModel represents one aggregated shopping-list line
type ShoppingListItemModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index:idx_shopping_user_week"`
	WeekStart time.Time `gorm:"not null;index:idx_shopping_user_week"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Measure   string    `gorm:"type:text"`
	Category  string    `gorm:"type:varchar(20);not null"`
	IsChecked bool      `gorm:"default:false"`
	RecipeID  uuid.UUID `gorm:"type:char(36)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for IngredientModel
func (i *IngredientModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MealPlanEntryModel
func (m *MealPlanEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingListItemModel
func (s *ShoppingListItemModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (IngredientModel) TableName() string {
	return "recipe_ingredients"
}

func (MealPlanEntryModel) TableName() string {
	return "meal_plan_entries"
}

func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}

// AllModels lists every model for migrations and test schemas.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&RecipeModel{},
		&IngredientModel{},
		&MealPlanEntryModel{},
		&ShoppingListItemModel{},
	}
}
