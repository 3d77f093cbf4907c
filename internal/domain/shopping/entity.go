package shopping

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListItem is one checkable line on a persisted shopping list. The whole
// set for a (user, week) is replaced on every generation; IsChecked is the
// only field mutated afterwards.
type ListItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	WeekStart time.Time
	Name      string
	Measure   string
	Category  Category
	IsChecked bool
	RecipeID  uuid.UUID
}

// Key returns the item's normalized ingredient name, used to carry checked
// state across regenerations.
func (i ListItem) Key() string {
	return NormalizeKey(i.Name)
}

// BuildList turns aggregated ingredients into list items for a (user, week),
// classifying each one. Item ids are freshly assigned.
func BuildList(userID uuid.UUID, weekStart time.Time, agg []AggregatedIngredient) []ListItem {
	items := make([]ListItem, 0, len(agg))
	for _, a := range agg {
		items = append(items, ListItem{
			ID:        uuid.New(),
			UserID:    userID,
			WeekStart: weekStart,
			Name:      a.Name,
			Measure:   a.MeasureLabel(),
			Category:  Classify(a.Name),
			RecipeID:  a.RecipeID,
		})
	}
	return items
}

// SortForDisplay orders items by category rank then name, the
// presentation order. Categories follow the classifier's declared order,
// not lexicographic order, so Produce always leads the list.
// Aggregation itself keeps insertion order; only rendering sorts.
func SortForDisplay(items []ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category.Rank() < items[j].Category.Rank()
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// GroupByCategory buckets items by category, preserving the slice order
// within each bucket.
func GroupByCategory(items []ListItem) map[Category][]ListItem {
	grouped := make(map[Category][]ListItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
