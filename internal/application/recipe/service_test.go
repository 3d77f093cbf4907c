package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/forkcast/v1/internal/domain/recipe"
	"github.com/forkcast/v1/internal/infrastructure/persistence/memory"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockRecipeRepository is a mock implementation of outbound.RecipeRepository
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
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// RecipeServiceTestSuite tests the catalog service
type RecipeServiceTestSuite struct {
	suite.Suite
	repo    *MockRecipeRepository
	service *Service
	ctx     context.Context
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.repo = new(MockRecipeRepository)
	suite.service = NewService(suite.repo, memory.NewCacheRepository(), zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *RecipeServiceTestSuite) buildRecipe(name string) *recipe.Recipe {
	entity, err := recipe.NewRecipe(name, "Chicken", "Indian")
	suite.Require().NoError(err)
	suite.Require().NoError(entity.AddIngredient(recipe.Ingredient{Name: "chicken breast", Measure: "2 lb"}))
	return entity
}

func (suite *RecipeServiceTestSuite) TestGetRecipe_ShouldReturnDetailView() {
	// Arrange
	entity := suite.buildRecipe("Chicken Curry")
	suite.repo.On("FindByID", suite.ctx, entity.ID()).Return(entity, nil)

	// Act
	view, err := suite.service.GetRecipe(suite.ctx, entity.ID())

	// Assert
	suite.Require().NoError(err)
	suite.Equal("Chicken Curry", view.Name)
	suite.Require().Len(view.Ingredients, 1)
	suite.Equal("chicken breast", view.Ingredients[0].Name)
}

func (suite *RecipeServiceTestSuite) TestGetRecipe_ShouldServeSecondReadFromCache() {
	// Arrange
	entity := suite.buildRecipe("Chicken Curry")
	suite.repo.On("FindByID", suite.ctx, entity.ID()).Return(entity, nil).Once()

	// Act
	first, err := suite.service.GetRecipe(suite.ctx, entity.ID())
	suite.Require().NoError(err)
	second, err := suite.service.GetRecipe(suite.ctx, entity.ID())

	// Assert
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
	suite.Equal(first.Name, second.Name)
	suite.repo.AssertNumberOfCalls(suite.T(), "FindByID", 1)
}

func (suite *RecipeServiceTestSuite) TestGetRecipe_ShouldReturnNotFoundForUnknownID() {
	// Arrange
	unknown := uuid.New()
	suite.repo.On("FindByID", suite.ctx, unknown).Return(nil, recipe.ErrRecipeNotFound)

	// Act
	view, err := suite.service.GetRecipe(suite.ctx, unknown)

	// Assert
	suite.Error(err)
	suite.Nil(view)
}

func (suite *RecipeServiceTestSuite) TestSearchRecipes_ShouldApplyPagingDefaults() {
	// Arrange
	suite.repo.On("Search", suite.ctx, outbound.SearchCriteria{
		Query: "chicken",
		Limit: 20,
	}).Return([]*recipe.Recipe{suite.buildRecipe("Chicken Curry")}, 1, nil)

	// Act
	list, err := suite.service.SearchRecipes(suite.ctx, inbound.SearchQuery{Text: "chicken"})

	// Assert
	suite.Require().NoError(err)
	suite.Equal(1, list.Total)
	suite.Equal(20, list.PageSize)
	suite.Equal(1, list.TotalPages)
	suite.Require().Len(list.Recipes, 1)
	suite.Equal("Chicken Curry", list.Recipes[0].Name)
}

func (suite *RecipeServiceTestSuite) TestSearchRecipes_ShouldCapPageSize() {
	// Arrange
	suite.repo.On("Search", suite.ctx, mock.MatchedBy(func(c outbound.SearchCriteria) bool {
		return c.Limit == 20
	})).Return([]*recipe.Recipe{}, 0, nil)

	// Act
	_, err := suite.service.SearchRecipes(suite.ctx, inbound.SearchQuery{PageSize: 500})

	// Assert
	suite.NoError(err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *RecipeServiceTestSuite) TestSearchRecipes_ShouldPropagateStorageFailure() {
	// Arrange
	suite.repo.On("Search", suite.ctx, mock.Anything).Return(nil, 0, errors.New("connection reset"))

	// Act
	list, err := suite.service.SearchRecipes(suite.ctx, inbound.SearchQuery{Text: "beef"})

	// Assert
	suite.Error(err)
	suite.Nil(list)
}

func (suite *RecipeServiceTestSuite) TestImportRecipe_ShouldPersistRecipeWithIngredients() {
	// Arrange
	var created *recipe.Recipe
	suite.repo.On("Create", suite.ctx, mock.AnythingOfType("*recipe.Recipe")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*recipe.Recipe)
		}).
		Return(nil)

	// Act
	view, err := suite.service.ImportRecipe(suite.ctx, inbound.ImportRecipeCommand{
		Name:     "Beef Wellington",
		Category: "Beef",
		Area:     "British",
		Tags:     []string{"dinner"},
		Ingredients: []inbound.IngredientInput{
			{Name: "beef fillet", Measure: "1 kg"},
			{Name: "puff pastry", Measure: "500 g"},
		},
	})

	// Assert
	suite.Require().NoError(err)
	suite.Equal("Beef Wellington", view.Name)
	suite.Require().NotNil(created)
	suite.Len(created.Ingredients(), 2)
}

func (suite *RecipeServiceTestSuite) TestImportRecipe_ShouldRejectEmptyName() {
	// Act
	view, err := suite.service.ImportRecipe(suite.ctx, inbound.ImportRecipeCommand{
		Name: "",
	})

	// Assert
	suite.Error(err)
	suite.Nil(view)
	suite.repo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
