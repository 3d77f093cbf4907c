package shopping

import (
	"strings"

	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/google/uuid"
)

// AggregatedIngredient is one merged ingredient line across a week's
// recipes. Which recipe contributed which quantity is not tracked; only the
// first contributor is kept, for reference.
type AggregatedIngredient struct {
	// Key is the normalized (trimmed, lowercased) ingredient name the
	// merge is keyed on.
	Key string
	// Name is the display name, with the casing of the first occurrence.
	Name string
	// Measures holds the distinct measure strings in first-seen order.
	Measures []string
	// RecipeID is the first recipe that contributed this ingredient.
	RecipeID uuid.UUID
}

// MeasureLabel joins the distinct measures into the display string stored
// on the shopping list.
func (a AggregatedIngredient) MeasureLabel() string {
	return strings.Join(a.Measures, ", ")
}

// NormalizeKey computes the merge key for an ingredient name.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Aggregate merges ingredient lines into one entry per distinct normalized
// name, preserving input order for first occurrences. Measures are
// de-duplicated case-sensitively, keeping first-seen order; blank ingredient
// names are dropped. Output order is insertion order, not alphabetical:
// sorting by category and name happens at presentation time.
func Aggregate(items []recipe.Ingredient) []AggregatedIngredient {
	index := make(map[string]int, len(items))
	merged := make([]AggregatedIngredient, 0, len(items))

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			i = len(merged)
			index[key] = i
			merged = append(merged, AggregatedIngredient{
				Key:      key,
				Name:     name,
				RecipeID: item.RecipeID,
			})
		}

		if item.Measure == "" {
			continue
		}
		if !containsMeasure(merged[i].Measures, item.Measure) {
			merged[i].Measures = append(merged[i].Measures, item.Measure)
		}
	}

	return merged
}

func containsMeasure(measures []string, measure string) bool {
	for _, m := range measures {
		if m == measure {
			return true
		}
	}
	return false
}
