package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/infrastructure/http/middleware"
	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MealPlanAPIHandlers handles meal-plan API requests
type MealPlanAPIHandlers struct {
	mealPlanService inbound.MealPlanService
	metrics         *monitoring.MetricsCollector
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewMealPlanAPIHandlers creates a new meal-plan API handlers instance
func NewMealPlanAPIHandlers(
	mealPlanService inbound.MealPlanService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *MealPlanAPIHandlers {
	return &MealPlanAPIHandlers{
		mealPlanService: mealPlanService,
		metrics:         metrics,
		validate:        validator.New(),
		logger:          logger,
	}
}

// SaveWeekRequest replaces a week's plan.
type SaveWeekRequest struct {
	WeekStart string        `json:"week_start" validate:"required"`
	Slots     []SlotRequest `json:"slots" validate:"dive"`
}

// SlotRequest assigns one recipe to a day and meal time.
type SlotRequest struct {
	Day      string `json:"day" validate:"required"`
	Time     string `json:"time" validate:"required"`
	RecipeID string `json:"recipe_id" validate:"required,uuid4"`
}

// WeekPlanResponse is the payload of a plan read.
type WeekPlanResponse struct {
	WeekStart string                                                            `json:"week_start"`
	Meals     map[mealplan.DayOfWeek]map[mealplan.MealTime]inbound.PlannedMealView `json:"meals"`
}

// SaveWeek handles POST /api/v1/mealplan
func (h *MealPlanAPIHandlers) SaveWeek(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req SaveWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	weekStart, err := mealplan.ParseWeekStart(req.WeekStart)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid week_start date")
		return
	}

	slots := make([]inbound.PlanSlot, len(req.Slots))
	for i, slot := range req.Slots {
		recipeID, err := uuid.Parse(slot.RecipeID)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid recipe_id")
			return
		}
		slots[i] = inbound.PlanSlot{
			Day:      mealplan.DayOfWeek(slot.Day),
			Time:     mealplan.MealTime(slot.Time),
			RecipeID: recipeID,
		}
	}

	if err := h.mealPlanService.SaveWeek(r.Context(), caller, weekStart, slots); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.metrics.RecordMealPlanSaved()

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Meal plan saved successfully",
	})
}

// GetWeek handles GET /api/v1/mealplan
func (h *MealPlanAPIHandlers) GetWeek(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.mealPlanService.GetWeek(r.Context(), caller, weekStart)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: WeekPlanResponse{
			WeekStart: mealplan.FormatWeekStart(view.WeekStart),
			Meals:     view.Meals,
		},
	})
}
