package shopping_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appshopping "github.com/forkcast/v1/internal/application/shopping"
	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	apperrors "github.com/forkcast/v1/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockMealPlanRepository is a mock implementation of outbound.MealPlanRepository.
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) ReplaceWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time, entries []mealplan.Entry) error {
	args := m.Called(ctx, userID, weekStart, entries)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]mealplan.Entry, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mealplan.Entry), args.Error(1)
}

// MockRecipeRepository is a mock implementation of outbound.RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockShoppingListRepository is a mock implementation of outbound.ShoppingListRepository.
type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) ReplaceWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time, items []shopping.ListItem) error {
	args := m.Called(ctx, userID, weekStart, items)
	return args.Error(0)
}

func (m *MockShoppingListRepository) FindWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]shopping.ListItem, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.ListItem), args.Error(1)
}

func (m *MockShoppingListRepository) SetChecked(ctx context.Context, userID, itemID uuid.UUID, checked bool) (bool, error) {
	args := m.Called(ctx, userID, itemID, checked)
	return args.Bool(0), args.Error(1)
}

// MockGuestStore is a mock implementation of outbound.GuestStore.
type MockGuestStore struct {
	mock.Mock
}

func (m *MockGuestStore) SaveMealPlan(ctx context.Context, guestID string, weekStart time.Time, entries []mealplan.Entry) error {
	args := m.Called(ctx, guestID, weekStart, entries)
	return args.Error(0)
}

func (m *MockGuestStore) FindMealPlan(ctx context.Context, guestID string, weekStart time.Time) ([]mealplan.Entry, error) {
	args := m.Called(ctx, guestID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mealplan.Entry), args.Error(1)
}

func (m *MockGuestStore) SaveList(ctx context.Context, guestID string, weekStart time.Time, items []shopping.ListItem) error {
	args := m.Called(ctx, guestID, weekStart, items)
	return args.Error(0)
}

func (m *MockGuestStore) FindList(ctx context.Context, guestID string, weekStart time.Time) ([]shopping.ListItem, error) {
	args := m.Called(ctx, guestID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.ListItem), args.Error(1)
}

func (m *MockGuestStore) SetChecked(ctx context.Context, guestID, ingredientKey string, checked bool) error {
	args := m.Called(ctx, guestID, ingredientKey, checked)
	return args.Error(0)
}

func (m *MockGuestStore) CheckedKeys(ctx context.Context, guestID string) (map[string]bool, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// ShoppingServiceTestSuite tests the shopping-list application service.
type ShoppingServiceTestSuite struct {
	suite.Suite
	mealPlans *MockMealPlanRepository
	recipes   *MockRecipeRepository
	lists     *MockShoppingListRepository
	guests    *MockGuestStore
	service   *appshopping.Service
	ctx       context.Context
	week      time.Time
}

func (s *ShoppingServiceTestSuite) SetupTest() {
	s.mealPlans = new(MockMealPlanRepository)
	s.recipes = new(MockRecipeRepository)
	s.lists = new(MockShoppingListRepository)
	s.guests = new(MockGuestStore)
	s.service = appshopping.NewService(s.mealPlans, s.recipes, s.lists, s.guests, zap.NewNop())
	s.ctx = context.Background()
	s.week = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // a Monday
}

func TestShoppingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingServiceTestSuite))
}

func buildRecipe(t require.TestingT, name string, ingredients ...recipe.Ingredient) *recipe.Recipe {
	r, err := recipe.NewRecipe(name, "Misc", "American")
	require.NoError(t, err)
	for _, ing := range ingredients {
		require.NoError(t, r.AddIngredient(ing))
	}
	return r
}

func (s *ShoppingServiceTestSuite) TestGenerate_ShouldAggregateAcrossRecipes() {
	// Arrange
	userID := uuid.New()
	caller := inbound.Caller{UserID: userID}

	r1 := buildRecipe(s.T(), "Grilled Chicken",
		recipe.Ingredient{Name: "Chicken Breast", Measure: "2 lb"},
		recipe.Ingredient{Name: "salt", Measure: "1 tsp"},
	)
	r2 := buildRecipe(s.T(), "Chicken Soup",
		recipe.Ingredient{Name: "chicken breast", Measure: "1 lb"},
		recipe.Ingredient{Name: "Milk", Measure: "2 cups"},
	)

	entries := []mealplan.Entry{
		{UserID: userID, WeekStart: s.week, Day: mealplan.Monday, Time: mealplan.Dinner, RecipeID: r1.ID()},
		{UserID: userID, WeekStart: s.week, Day: mealplan.Tuesday, Time: mealplan.Dinner, RecipeID: r2.ID()},
	}

	s.mealPlans.On("FindWeek", s.ctx, userID, s.week).Return(entries, nil)
	s.recipes.On("FindByIDs", s.ctx, []uuid.UUID{r1.ID(), r2.ID()}).Return([]*recipe.Recipe{r1, r2}, nil)

	var stored []shopping.ListItem
	s.lists.On("ReplaceWeek", s.ctx, userID, s.week, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(3).([]shopping.ListItem)
		}).
		Return(nil)

	// Act
	result, err := s.service.Generate(s.ctx, caller, s.week)

	// Assert
	s.Require().NoError(err)
	s.Equal(2, result.MealCount)
	s.Equal(3, result.IngredientCount)
	s.Equal(s.week, result.WeekStart)

	s.Require().Len(stored, 3)
	byKey := make(map[string]shopping.ListItem, len(stored))
	for _, item := range stored {
		byKey[item.Key()] = item
	}
	s.Equal("Chicken Breast", byKey["chicken breast"].Name)
	s.Equal("2 lb, 1 lb", byKey["chicken breast"].Measure)
	s.Equal(shopping.CategoryMeat, byKey["chicken breast"].Category)
	s.Equal(shopping.CategoryPantry, byKey["salt"].Category)
	s.Equal(shopping.CategoryDairy, byKey["milk"].Category)
	s.lists.AssertExpectations(s.T())
}

func (s *ShoppingServiceTestSuite) TestGenerate_ShouldBeIdempotentForSamePlan() {
	userID := uuid.New()
	caller := inbound.Caller{UserID: userID}

	r := buildRecipe(s.T(), "Veggie Stir Fry",
		recipe.Ingredient{Name: "Broccoli", Measure: "1 head"},
		recipe.Ingredient{Name: "soy sauce", Measure: "2 tbsp"},
	)
	entries := []mealplan.Entry{
		{UserID: userID, WeekStart: s.week, Day: mealplan.Monday, Time: mealplan.Dinner, RecipeID: r.ID()},
	}

	s.mealPlans.On("FindWeek", s.ctx, userID, s.week).Return(entries, nil)
	s.recipes.On("FindByIDs", s.ctx, []uuid.UUID{r.ID()}).Return([]*recipe.Recipe{r}, nil)

	var generations [][]shopping.ListItem
	s.lists.On("ReplaceWeek", s.ctx, userID, s.week, mock.Anything).
		Run(func(args mock.Arguments) {
			generations = append(generations, args.Get(3).([]shopping.ListItem))
		}).
		Return(nil)

	first, err := s.service.Generate(s.ctx, caller, s.week)
	s.Require().NoError(err)
	second, err := s.service.Generate(s.ctx, caller, s.week)
	s.Require().NoError(err)

	s.Equal(first.IngredientCount, second.IngredientCount)
	s.Equal(first.MealCount, second.MealCount)

	// Item ids are fresh each run; the (name, category) pairs are not.
	s.Require().Len(generations, 2)
	pairs := func(items []shopping.ListItem) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.Name + "|" + string(item.Category)
		}
		return out
	}
	s.Equal(pairs(generations[0]), pairs(generations[1]))
}

func (s *ShoppingServiceTestSuite) TestGenerate_ShouldFailOnEmptyWeek() {
	userID := uuid.New()
	s.mealPlans.On("FindWeek", s.ctx, userID, s.week).Return([]mealplan.Entry{}, nil)

	result, err := s.service.Generate(s.ctx, inbound.Caller{UserID: userID}, s.week)

	s.Nil(result)
	s.ErrorIs(err, mealplan.ErrNoMeals)
	s.Equal(apperrors.CodeEmptyMealPlan, apperrors.GetCode(err))
	s.lists.AssertNotCalled(s.T(), "ReplaceWeek", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ShoppingServiceTestSuite) TestGenerate_ShouldNormalizeWeekStart() {
	userID := uuid.New()
	wednesday := s.week.AddDate(0, 0, 2)

	s.mealPlans.On("FindWeek", s.ctx, userID, s.week).Return([]mealplan.Entry{}, nil)

	_, err := s.service.Generate(s.ctx, inbound.Caller{UserID: userID}, wednesday)

	s.ErrorIs(err, mealplan.ErrNoMeals)
	s.mealPlans.AssertCalled(s.T(), "FindWeek", s.ctx, userID, s.week)
}

func (s *ShoppingServiceTestSuite) TestGenerate_ShouldDeduplicateRecipeIDs() {
	userID := uuid.New()
	r := buildRecipe(s.T(), "Pancakes",
		recipe.Ingredient{Name: "flour", Measure: "2 cups"},
	)

	entries := []mealplan.Entry{
		{UserID: userID, WeekStart: s.week, Day: mealplan.Monday, Time: mealplan.Breakfast, RecipeID: r.ID()},
		{UserID: userID, WeekStart: s.week, Day: mealplan.Saturday, Time: mealplan.Breakfast, RecipeID: r.ID()},
	}

	s.mealPlans.On("FindWeek", s.ctx, userID, s.week).Return(entries, nil)
	s.recipes.On("FindByIDs", s.ctx, []uuid.UUID{r.ID()}).Return([]*recipe.Recipe{r}, nil)
	s.lists.On("ReplaceWeek", s.ctx, userID, s.week, mock.Anything).Return(nil)

	result, err := s.service.Generate(s.ctx, inbound.Caller{UserID: userID}, s.week)

	s.Require().NoError(err)
	s.Equal(2, result.MealCount)
	s.Equal(1, result.IngredientCount)
}

func (s *ShoppingServiceTestSuite) TestGenerate_ShouldPreservePriorListOnStorageFailure() {
	userID := uuid.New()
	r := buildRecipe(s.T(), "Toast", recipe.Ingredient{Name: "bread", Measure: "2 slices"})
	entries := []mealplan.Entry{
		{UserID: userID, WeekStart: s.week, Day: mealplan.Monday, Time: mealplan.Breakfast, RecipeID: r.ID()},
	}

	s.mealPlans.On("FindWeek", s.ctx, userID, s.week).Return(entries, nil)
	s.recipes.On("FindByIDs", s.ctx, mock.Anything).Return([]*recipe.Recipe{r}, nil)
	s.lists.On("ReplaceWeek", s.ctx, userID, s.week, mock.Anything).Return(errors.New("connection reset"))

	result, err := s.service.Generate(s.ctx, inbound.Caller{UserID: userID}, s.week)

	s.Nil(result)
	s.Error(err)
}

func (s *ShoppingServiceTestSuite) TestGenerate_Guest_ShouldSkipMissingRecipes() {
	guest := inbound.Caller{GuestID: "guest-abc"}
	known := buildRecipe(s.T(), "Salad",
		recipe.Ingredient{Name: "lettuce", Measure: "1 head"},
	)
	missingID := uuid.New()

	entries := []mealplan.Entry{
		{WeekStart: s.week, Day: mealplan.Monday, Time: mealplan.Lunch, RecipeID: known.ID()},
		{WeekStart: s.week, Day: mealplan.Tuesday, Time: mealplan.Lunch, RecipeID: missingID},
	}

	s.guests.On("FindMealPlan", s.ctx, "guest-abc", s.week).Return(entries, nil)
	s.recipes.On("FindByID", s.ctx, known.ID()).Return(known, nil)
	s.recipes.On("FindByID", s.ctx, missingID).Return(nil, recipe.ErrRecipeNotFound)
	s.guests.On("CheckedKeys", s.ctx, "guest-abc").Return(map[string]bool{}, nil)
	s.guests.On("SaveList", s.ctx, "guest-abc", s.week, mock.Anything).Return(nil)

	result, err := s.service.Generate(s.ctx, guest, s.week)

	s.Require().NoError(err)
	s.Equal(2, result.MealCount)
	s.Equal(1, result.IngredientCount)
}

func (s *ShoppingServiceTestSuite) TestGenerate_Guest_ShouldCarryCheckedStateByName() {
	guest := inbound.Caller{GuestID: "guest-abc"}
	r := buildRecipe(s.T(), "Omelette",
		recipe.Ingredient{Name: "Eggs", Measure: "3"},
		recipe.Ingredient{Name: "butter", Measure: "1 tbsp"},
	)
	entries := []mealplan.Entry{
		{WeekStart: s.week, Day: mealplan.Sunday, Time: mealplan.Breakfast, RecipeID: r.ID()},
	}

	s.guests.On("FindMealPlan", s.ctx, "guest-abc", s.week).Return(entries, nil)
	s.recipes.On("FindByID", s.ctx, r.ID()).Return(r, nil)
	s.guests.On("CheckedKeys", s.ctx, "guest-abc").Return(map[string]bool{"eggs": true}, nil)

	var stored []shopping.ListItem
	s.guests.On("SaveList", s.ctx, "guest-abc", s.week, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(3).([]shopping.ListItem)
		}).
		Return(nil)

	_, err := s.service.Generate(s.ctx, guest, s.week)

	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	for _, item := range stored {
		if item.Key() == "eggs" {
			s.True(item.IsChecked)
		} else {
			s.False(item.IsChecked)
		}
	}
}

func (s *ShoppingServiceTestSuite) TestGetList_ShouldGroupByCategory() {
	userID := uuid.New()
	items := []shopping.ListItem{
		{ID: uuid.New(), UserID: userID, WeekStart: s.week, Name: "Apple", Measure: "3", Category: shopping.CategoryProduce},
		{ID: uuid.New(), UserID: userID, WeekStart: s.week, Name: "banana", Measure: "6", Category: shopping.CategoryProduce},
		{ID: uuid.New(), UserID: userID, WeekStart: s.week, Name: "flour", Measure: "1 bag", Category: shopping.CategoryPantry, IsChecked: true},
	}
	s.lists.On("FindWeek", s.ctx, userID, s.week).Return(items, nil)

	view, err := s.service.GetList(s.ctx, inbound.Caller{UserID: userID}, s.week)

	s.Require().NoError(err)
	s.Equal(3, view.TotalItems)
	s.Len(view.Categories, 2)
	s.Len(view.Categories["Produce"], 2)
	s.Require().Len(view.Categories["Pantry"], 1)
	s.True(view.Categories["Pantry"][0].IsChecked)
}

func (s *ShoppingServiceTestSuite) TestGetList_Guest_ShouldMergeCheckedState() {
	guest := inbound.Caller{GuestID: "g1"}
	items := []shopping.ListItem{
		{WeekStart: s.week, Name: "Milk", Measure: "1 gal", Category: shopping.CategoryDairy},
		{WeekStart: s.week, Name: "rice", Measure: "2 cups", Category: shopping.CategoryPantry},
	}
	s.guests.On("FindList", s.ctx, "g1", s.week).Return(items, nil)
	s.guests.On("CheckedKeys", s.ctx, "g1").Return(map[string]bool{"milk": true}, nil)

	view, err := s.service.GetList(s.ctx, guest, s.week)

	s.Require().NoError(err)
	s.Require().Len(view.Categories["Dairy"], 1)
	s.True(view.Categories["Dairy"][0].IsChecked)
	s.Require().Len(view.Categories["Pantry"], 1)
	s.False(view.Categories["Pantry"][0].IsChecked)
}

func (s *ShoppingServiceTestSuite) TestToggleItem_ShouldUpdateOwnedRow() {
	userID := uuid.New()
	itemID := uuid.New()
	s.lists.On("SetChecked", s.ctx, userID, itemID, true).Return(true, nil)

	err := s.service.ToggleItem(s.ctx, inbound.Caller{UserID: userID}, inbound.ToggleCommand{ItemID: itemID, Checked: true})

	s.NoError(err)
}

func (s *ShoppingServiceTestSuite) TestToggleItem_ShouldRejectForeignRow() {
	userID := uuid.New()
	itemID := uuid.New()
	s.lists.On("SetChecked", s.ctx, userID, itemID, true).Return(false, nil)

	err := s.service.ToggleItem(s.ctx, inbound.Caller{UserID: userID}, inbound.ToggleCommand{ItemID: itemID, Checked: true})

	s.ErrorIs(err, shopping.ErrItemNotOwned)
}

func (s *ShoppingServiceTestSuite) TestToggleItem_Guest_ShouldNormalizeKey() {
	guest := inbound.Caller{GuestID: "g1"}
	s.guests.On("SetChecked", s.ctx, "g1", "chicken breast", true).Return(nil)

	err := s.service.ToggleItem(s.ctx, guest, inbound.ToggleCommand{IngredientKey: "  Chicken Breast ", Checked: true})

	s.NoError(err)
	s.guests.AssertExpectations(s.T())
}

func (s *ShoppingServiceTestSuite) TestToggleItem_Guest_ShouldRequireKey() {
	err := s.service.ToggleItem(s.ctx, inbound.Caller{GuestID: "g1"}, inbound.ToggleCommand{Checked: true})

	s.Error(err)
}

func TestGetList_EmptyWeek(t *testing.T) {
	mealPlans := new(MockMealPlanRepository)
	recipes := new(MockRecipeRepository)
	lists := new(MockShoppingListRepository)
	guests := new(MockGuestStore)
	svc := appshopping.NewService(mealPlans, recipes, lists, guests, zap.NewNop())

	userID := uuid.New()
	week := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	lists.On("FindWeek", mock.Anything, userID, week).Return([]shopping.ListItem{}, nil)

	view, err := svc.GetList(context.Background(), inbound.Caller{UserID: userID}, week)

	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalItems)
	assert.Empty(t, view.Categories)
}
