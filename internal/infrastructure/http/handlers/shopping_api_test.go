package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/infrastructure/http/middleware"
	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockShoppingListService is a mock implementation of inbound.ShoppingListService
type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) Generate(ctx context.Context, caller inbound.Caller, weekStart time.Time) (*inbound.GenerateResult, error) {
	args := m.Called(ctx, caller, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GenerateResult), args.Error(1)
}

func (m *MockShoppingListService) GetList(ctx context.Context, caller inbound.Caller, weekStart time.Time) (*inbound.ShoppingListView, error) {
	args := m.Called(ctx, caller, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ShoppingListView), args.Error(1)
}

func (m *MockShoppingListService) ToggleItem(ctx context.Context, caller inbound.Caller, cmd inbound.ToggleCommand) error {
	args := m.Called(ctx, caller, cmd)
	return args.Error(0)
}

// ShoppingAPITestSuite tests the shopping-list handlers over httptest
type ShoppingAPITestSuite struct {
	suite.Suite
	service  *MockShoppingListService
	handlers *ShoppingAPIHandlers
	caller   inbound.Caller
	week     time.Time
}

func (suite *ShoppingAPITestSuite) SetupTest() {
	suite.service = new(MockShoppingListService)
	suite.handlers = NewShoppingAPIHandlers(suite.service, monitoring.NewMetricsCollector(zap.NewNop()), zap.NewNop())
	suite.caller = inbound.Caller{UserID: uuid.New()}
	suite.week = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ShoppingAPITestSuite) request(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithCaller(req.Context(), suite.caller))
}

func (suite *ShoppingAPITestSuite) TestGenerate_ShouldReturnCounts() {
	// Arrange
	suite.service.On("Generate", mock.Anything, suite.caller, suite.week).Return(&inbound.GenerateResult{
		WeekStart:       suite.week,
		MealCount:       4,
		IngredientCount: 12,
	}, nil)
	req := suite.request(http.MethodPost, "/api/v1/shopping-list/generate?week_start=2026-08-31", "")
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.Generate(rec, req)

	// Assert
	suite.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    GenerateResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("2026-08-31", resp.Data.WeekStart)
	suite.Equal(4, resp.Data.MealCount)
	suite.Equal(12, resp.Data.IngredientCount)
	suite.service.AssertExpectations(suite.T())
}

func (suite *ShoppingAPITestSuite) TestGenerate_ShouldRejectEmptyWeek() {
	// Arrange
	suite.service.On("Generate", mock.Anything, suite.caller, suite.week).Return(nil, mealplan.ErrNoMeals)
	req := suite.request(http.MethodPost, "/api/v1/shopping-list/generate?week_start=2026-08-31", "")
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.Generate(rec, req)

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)

	var resp APIResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("No meals found for this week", resp.Error)
}

func (suite *ShoppingAPITestSuite) TestGenerate_ShouldRejectMalformedWeekStart() {
	// Arrange
	req := suite.request(http.MethodPost, "/api/v1/shopping-list/generate?week_start=not-a-date", "")
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.Generate(rec, req)

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.service.AssertNotCalled(suite.T(), "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShoppingAPITestSuite) TestGetList_ShouldGroupByCategory() {
	// Arrange
	itemID := uuid.New()
	suite.service.On("GetList", mock.Anything, suite.caller, suite.week).Return(&inbound.ShoppingListView{
		WeekStart: suite.week,
		Categories: map[string][]inbound.ShoppingItemView{
			"Dairy": {{ID: itemID, Name: "milk", Measure: "2 cups", IsChecked: true}},
		},
		TotalItems: 1,
	}, nil)
	req := suite.request(http.MethodGet, "/api/v1/shopping-list?week_start=2026-08-31", "")
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.GetList(rec, req)

	// Assert
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"shopping_list"`)

	var resp struct {
		Success bool                 `json:"success"`
		Data    ShoppingListResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(1, resp.Data.TotalItems)
	suite.Require().Len(resp.Data.Categories["Dairy"], 1)
	suite.Equal("milk", resp.Data.Categories["Dairy"][0].Name)
	suite.True(resp.Data.Categories["Dairy"][0].IsChecked)
}

func (suite *ShoppingAPITestSuite) TestToggleItem_ShouldUpdateOwnedItem() {
	// Arrange
	itemID := uuid.New()
	suite.service.On("ToggleItem", mock.Anything, suite.caller, inbound.ToggleCommand{
		ItemID:  itemID,
		Checked: true,
	}).Return(nil)
	body := `{"item_id":"` + itemID.String() + `","checked":true}`
	req := suite.request(http.MethodPost, "/api/v1/shopping-list/items", body)
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.ToggleItem(rec, req)

	// Assert
	suite.Equal(http.StatusOK, rec.Code)
	suite.service.AssertExpectations(suite.T())
}

func (suite *ShoppingAPITestSuite) TestToggleItem_ShouldReturnNotFoundForForeignItem() {
	// Arrange
	itemID := uuid.New()
	suite.service.On("ToggleItem", mock.Anything, suite.caller, mock.Anything).Return(shopping.ErrItemNotOwned)
	body := `{"item_id":"` + itemID.String() + `","checked":true}`
	req := suite.request(http.MethodPost, "/api/v1/shopping-list/items", body)
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.ToggleItem(rec, req)

	// Assert
	suite.Equal(http.StatusNotFound, rec.Code)

	var resp APIResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("Item not found", resp.Error)
}

func (suite *ShoppingAPITestSuite) TestToggleItem_ShouldRequireItemIDForAccountHolders() {
	// Arrange
	req := suite.request(http.MethodPost, "/api/v1/shopping-list/items", `{"checked":true}`)
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.ToggleItem(rec, req)

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.service.AssertNotCalled(suite.T(), "ToggleItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShoppingAPITestSuite) TestToggleItem_ShouldAcceptIngredientKeyForGuests() {
	// Arrange
	guest := inbound.Caller{GuestID: "guest-abc"}
	suite.service.On("ToggleItem", mock.Anything, guest, inbound.ToggleCommand{
		IngredientKey: "chicken breast",
		Checked:       true,
	}).Return(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/items",
		strings.NewReader(`{"ingredient_key":"chicken breast","checked":true}`))
	req = req.WithContext(middleware.WithCaller(req.Context(), guest))
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.ToggleItem(rec, req)

	// Assert
	suite.Equal(http.StatusOK, rec.Code)
	suite.service.AssertExpectations(suite.T())
}

func (suite *ShoppingAPITestSuite) TestGenerate_ShouldRejectMissingCaller() {
	// Arrange
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/generate", nil)
	rec := httptest.NewRecorder()

	// Act
	suite.handlers.Generate(rec, req)

	// Assert
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func TestShoppingAPITestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingAPITestSuite))
}
