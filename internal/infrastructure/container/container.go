// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	mealplanapp "github.com/forkcast/v1/internal/application/mealplan"
	recipeapp "github.com/forkcast/v1/internal/application/recipe"
	shoppingapp "github.com/forkcast/v1/internal/application/shopping"
	userapp "github.com/forkcast/v1/internal/application/user"
	"github.com/forkcast/v1/internal/infrastructure/cache"
	"github.com/forkcast/v1/internal/infrastructure/config"
	"github.com/forkcast/v1/internal/infrastructure/http/apiserver"
	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/forkcast/v1/internal/infrastructure/persistence/gorm"
	"github.com/forkcast/v1/internal/infrastructure/persistence/migrations"
	redisRepo "github.com/forkcast/v1/internal/infrastructure/persistence/redis"
	"github.com/forkcast/v1/internal/infrastructure/security"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/internal/ports/outbound"
	"github.com/forkcast/v1/pkg/healthcheck"
	"github.com/forkcast/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	SecurityModule,
	MonitoringModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the Postgres connection and runs migrations
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
			Logger: gormLogger.Default.LogMode(logLevel),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		if cfg.Database.AutoMigrate {
			migrator, err := migrations.New(sqlDB, log)
			if err != nil {
				return nil, fmt.Errorf("failed to create migrator: %w", err)
			}
			if err := migrator.Up(); err != nil {
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		log.Info("Connected to Postgres database",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database),
		)

		return db, nil
	},
)

// CacheModule provides Redis-backed caching and guest storage
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*cache.RedisClient, error) {
		return cache.NewRedisClient(&cfg.Redis, log)
	},
	func(redisClient *cache.RedisClient, log *zap.Logger) outbound.CacheRepository {
		return redisRepo.NewCacheRepository(redisClient, log)
	},
	func(cfg *config.Config, redisClient *cache.RedisClient, log *zap.Logger) outbound.GuestStore {
		return redisRepo.NewGuestStore(redisClient, cfg.Redis.GuestTTL, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewUserRepository,
	gormRepo.NewMealPlanRepository,
	gormRepo.NewShoppingListRepository,
)

// SecurityModule provides authentication services
var SecurityModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, redisClient *cache.RedisClient) *security.AuthService {
		return security.NewAuthService(cfg, log, redisClient.Client())
	},
)

// MonitoringModule provides metrics collection and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, redisClient *cache.RedisClient) (*healthcheck.HealthCheck, error) {
		hc := healthcheck.New(cfg.App.Name, cfg.App.Version, log)

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database handle: %w", err)
		}
		hc.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
		hc.Register("redis", healthcheck.NewRedisChecker(redisClient.Client()))

		return hc, nil
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		recipeapp.NewService,
		fx.As(new(inbound.RecipeService)),
	),
	fx.Annotate(
		userapp.NewService,
		fx.As(new(inbound.UserService)),
	),
	fx.Annotate(
		mealplanapp.NewService,
		fx.As(new(inbound.MealPlanService)),
	),
	fx.Annotate(
		shoppingapp.NewService,
		fx.As(new(inbound.ShoppingListService)),
	),
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *cache.RedisClient,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Forkcast application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Forkcast application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
