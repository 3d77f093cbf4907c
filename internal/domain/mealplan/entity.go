// Package mealplan contains the domain model for weekly meal plans.
// A plan is a set of slots, one recipe per (day, meal time), anchored to
// the Monday of its week. Saving a week replaces the whole set; there is
// no incremental merge.
package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// DayOfWeek identifies a day slot in a weekly plan.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Days lists the days of a plan week in order, Monday first.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// MealTime identifies a meal slot within a day.
type MealTime string

const (
	Breakfast MealTime = "breakfast"
	Lunch     MealTime = "lunch"
	Dinner    MealTime = "dinner"
	Snacks    MealTime = "snacks"
)

// MealTimes lists the meal slots of a day in order.
var MealTimes = []MealTime{Breakfast, Lunch, Dinner, Snacks}

// Entry assigns a recipe to one slot of a user's week.
type Entry struct {
	UserID    uuid.UUID
	WeekStart time.Time
	Day       DayOfWeek
	Time      MealTime
	RecipeID  uuid.UUID
}

// Validate checks that the entry references a known slot and a recipe.
func (e Entry) Validate() error {
	if !validDay(e.Day) {
		return ErrInvalidDay
	}
	if !validMealTime(e.Time) {
		return ErrInvalidMealTime
	}
	if e.RecipeID == uuid.Nil {
		return ErrMissingRecipe
	}
	return nil
}

// DistinctRecipeIDs returns the distinct recipe ids referenced by entries,
// in first-seen order. A recipe planned in several slots appears once.
func DistinctRecipeIDs(entries []Entry) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.RecipeID]; ok {
			continue
		}
		seen[e.RecipeID] = struct{}{}
		ids = append(ids, e.RecipeID)
	}
	return ids
}

func validDay(d DayOfWeek) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

func validMealTime(t MealTime) bool {
	switch t {
	case Breakfast, Lunch, Dinner, Snacks:
		return true
	}
	return false
}
