// Package shopping contains the core domain logic for shopping-list
// generation: merging ingredient lines across a week's recipes and
// classifying each merged line into a purchasing category.
package shopping

import "strings"

// Category is a purchasing category on the shopping list. Categories are a
// closed set; there is no lookup table behind them.
type Category string

const (
	CategoryProduce   Category = "Produce"
	CategoryMeat      Category = "Meat"
	CategoryDairy     Category = "Dairy"
	CategoryPantry    Category = "Pantry"
	CategoryBakery    Category = "Bakery"
	CategoryFrozen    Category = "Frozen"
	CategoryBeverages Category = "Beverages"
	CategoryOther     Category = "Other"
)

// categoryOrder is the order categories are tested in. Classification is
// first-match-wins, so this order is part of the observable contract:
// "chicken broth" is Meat (chicken) rather than Pantry (broth) only because
// Meat is tested first.
var categoryOrder = []Category{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryPantry,
	CategoryBakery,
	CategoryFrozen,
	CategoryBeverages,
}

// categoryKeywords is the canonical keyword table. Dairy deliberately has no
// bare "cream" keyword (only the compound forms), so "ice cream" falls
// through to Frozen via "ice". Pantry has no "pepper": Produce is tested
// first and owns it.
var categoryKeywords = map[Category][]string{
	CategoryProduce: {
		"vegetable", "fruit", "lettuce", "tomato", "onion", "garlic",
		"pepper", "carrot", "potato", "apple", "banana", "orange", "lemon",
		"lime", "herb", "spinach", "broccoli", "cucumber", "celery",
		"mushroom", "avocado", "zucchini", "squash", "cabbage", "kale",
	},
	CategoryMeat: {
		"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage",
		"meat", "fish", "salmon", "tuna", "shrimp", "seafood", "steak",
		"ground",
	},
	CategoryDairy: {
		"milk", "cheese", "butter", "sour cream", "heavy cream",
		"whipped cream", "yogurt", "egg", "eggs", "parmesan", "mozzarella",
		"cheddar",
	},
	CategoryPantry: {
		"flour", "sugar", "salt", "oil", "vinegar", "spice", "rice",
		"pasta", "noodle", "bean", "lentil", "canned", "sauce", "stock",
		"broth", "honey", "syrup", "soy",
	},
	CategoryBakery: {
		"bread", "roll", "bun", "bagel", "croissant", "tortilla", "pita",
	},
	CategoryFrozen: {
		"frozen", "ice",
	},
	CategoryBeverages: {
		"juice", "water", "soda", "wine", "beer", "drink", "tea", "coffee",
	},
}

// categoryRank maps each category to its display position, following
// categoryOrder. CategoryOther has no entry and sorts last.
var categoryRank = func() map[Category]int {
	rank := make(map[Category]int, len(categoryOrder))
	for i, cat := range categoryOrder {
		rank[cat] = i
	}
	return rank
}()

// Rank returns the category's display position. Unknown categories,
// including Other, sort after every known one.
func (c Category) Rank() int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(categoryRank)
}

// Classify assigns a purchasing category to an ingredient name by ordered
// keyword substring matching. It always returns a category, falling back to
// Other when nothing matches.
func Classify(ingredientName string) Category {
	name := strings.ToLower(ingredientName)

	for _, cat := range categoryOrder {
		for _, keyword := range categoryKeywords[cat] {
			if strings.Contains(name, keyword) {
				return cat
			}
		}
	}

	return CategoryOther
}
