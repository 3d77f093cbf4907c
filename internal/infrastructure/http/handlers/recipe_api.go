package handlers

import (
	"net/http"
	"strconv"

	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeAPIHandlers handles recipe catalog API requests
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		logger:        logger,
	}
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	view, err := h.recipeService.GetRecipe(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    view,
	})
}

// SearchRecipes handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	query := inbound.SearchQuery{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Area:     r.URL.Query().Get("area"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		query.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		query.PageSize = size
	}

	list, err := h.recipeService.SearchRecipes(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
	})
}
