// Package apiserver provides the JSON API HTTP server.
package apiserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forkcast/v1/internal/infrastructure/config"
	"github.com/forkcast/v1/internal/infrastructure/http/handlers"
	"github.com/forkcast/v1/internal/infrastructure/http/middleware"
	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	"github.com/forkcast/v1/internal/infrastructure/security"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// APIServer serves the JSON API.
type APIServer struct {
	config          *config.Config
	logger          *zap.Logger
	server          *http.Server
	router          *chi.Mux
	recipeService   inbound.RecipeService
	userService     inbound.UserService
	mealPlanService inbound.MealPlanService
	shoppingService inbound.ShoppingListService
	authService     *security.AuthService
	metrics         *monitoring.MetricsCollector
	health          *healthcheck.HealthCheck
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	recipeService inbound.RecipeService,
	userService inbound.UserService,
	mealPlanService inbound.MealPlanService,
	shoppingService inbound.ShoppingListService,
	authService *security.AuthService,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *APIServer {
	server := &APIServer{
		config:          cfg,
		logger:          log,
		recipeService:   recipeService,
		userService:     userService,
		mealPlanService: mealPlanService,
		shoppingService: shoppingService,
		authService:     authService,
		metrics:         metrics,
		health:          health,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	r.Handle("/health", s.health.Handler())
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.logger)
	authH := handlers.NewAuthAPIHandlers(s.userService, s.authService, s.metrics, s.logger)
	mealPlanH := handlers.NewMealPlanAPIHandlers(s.mealPlanService, s.metrics, s.logger)
	shoppingH := handlers.NewShoppingAPIHandlers(s.shoppingService, s.metrics, s.logger)

	// Authentication routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/refresh", authH.RefreshToken)

		// Protected auth routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthenticateAPI(s.authService))
			r.Post("/logout", authH.Logout)
			r.Get("/profile", authH.GetProfile)
			r.Put("/profile", authH.UpdateProfile)
		})
	})

	// Recipe catalog, public
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeH.SearchRecipes)
		r.Get("/{id}", recipeH.GetRecipe)
	})

	// Planner and shopping list, shared by account holders and guests
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identify(s.authService))

		r.Route("/mealplan", func(r chi.Router) {
			r.Post("/", mealPlanH.SaveWeek)
			r.Get("/", mealPlanH.GetWeek)
		})

		r.Route("/shopping-list", func(r chi.Router) {
			r.Post("/generate", shoppingH.Generate)
			r.Get("/", shoppingH.GetList)
			r.Post("/items", shoppingH.ToggleItem)
		})
	})
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}
