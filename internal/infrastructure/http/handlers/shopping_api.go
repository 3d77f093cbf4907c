package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/infrastructure/http/middleware"
	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	"github.com/forkcast/v1/internal/ports/inbound"
	apperrors "github.com/forkcast/v1/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShoppingAPIHandlers handles shopping-list API requests
type ShoppingAPIHandlers struct {
	shoppingService inbound.ShoppingListService
	metrics         *monitoring.MetricsCollector
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewShoppingAPIHandlers creates a new shopping-list API handlers instance
func NewShoppingAPIHandlers(
	shoppingService inbound.ShoppingListService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *ShoppingAPIHandlers {
	return &ShoppingAPIHandlers{
		shoppingService: shoppingService,
		metrics:         metrics,
		validate:        validator.New(),
		logger:          logger,
	}
}

// GenerateResponse is the payload of a successful generation.
type GenerateResponse struct {
	WeekStart       string `json:"week_start"`
	MealCount       int    `json:"meal_count"`
	IngredientCount int    `json:"ingredient_count"`
}

// ToggleRequest addresses one item. Authenticated clients send item_id;
// guests send ingredient_key.
type ToggleRequest struct {
	ItemID        string `json:"item_id"`
	IngredientKey string `json:"ingredient_key"`
	Checked       bool   `json:"checked"`
}

// ShoppingListResponse is the payload of a list read. The grouped items
// travel under "shopping_list", the key clients already consume.
type ShoppingListResponse struct {
	WeekStart  string                                `json:"week_start"`
	Categories map[string][]inbound.ShoppingItemView `json:"shopping_list"`
	TotalItems int                                   `json:"total_items"`
}

// Generate handles POST /api/v1/shopping-list/generate
func (h *ShoppingAPIHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	weekStart, err := parseWeekStart(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid week_start date")
		return
	}

	result, err := h.shoppingService.Generate(r.Context(), caller, weekStart)
	if err != nil {
		h.metrics.RecordListGenerationFailed(string(apperrors.GetCode(err)))
		writeServiceError(w, h.logger, err)
		return
	}
	h.metrics.RecordListGenerated(result.IngredientCount)

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: GenerateResponse{
			WeekStart:       mealplan.FormatWeekStart(result.WeekStart),
			MealCount:       result.MealCount,
			IngredientCount: result.IngredientCount,
		},
		Message: "Shopping list generated successfully",
	})
}

// GetList handles GET /api/v1/shopping-list
func (h *ShoppingAPIHandlers) GetList(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	weekStart, err := parseWeekStart(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid week_start date")
		return
	}

	view, err := h.shoppingService.GetList(r.Context(), caller, weekStart)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: ShoppingListResponse{
			WeekStart:  mealplan.FormatWeekStart(view.WeekStart),
			Categories: view.Categories,
			TotalItems: view.TotalItems,
		},
	})
}

// ToggleItem handles POST /api/v1/shopping-list/items
func (h *ShoppingAPIHandlers) ToggleItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	cmd := inbound.ToggleCommand{
		IngredientKey: req.IngredientKey,
		Checked:       req.Checked,
	}
	if req.ItemID != "" {
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid item_id")
			return
		}
		cmd.ItemID = itemID
	} else if !caller.IsGuest() {
		writeError(w, h.logger, http.StatusBadRequest, "item_id is required")
		return
	}

	if err := h.shoppingService.ToggleItem(r.Context(), caller, cmd); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.metrics.RecordItemToggled()

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Item updated successfully",
	})
}
