// Package main loads recipes into the catalog from a JSON file.
// Intended for initial catalog population and local development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	recipeapp "github.com/forkcast/v1/internal/application/recipe"
	"github.com/forkcast/v1/internal/infrastructure/cache"
	"github.com/forkcast/v1/internal/infrastructure/config"
	gormRepo "github.com/forkcast/v1/internal/infrastructure/persistence/gorm"
	redisRepo "github.com/forkcast/v1/internal/infrastructure/persistence/redis"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/forkcast/v1/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type seedIngredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

type seedRecipe struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Area         string           `json:"area"`
	Instructions string           `json:"instructions"`
	Image        string           `json:"image"`
	Tags         []string         `json:"tags"`
	Ingredients  []seedIngredient `json:"ingredients"`
}

func main() {
	var (
		configPath = flag.String("config", "", "Configuration file path")
		inputPath  = flag.String("file", "recipes.json", "JSON file with recipes to load")
	)
	flag.Parse()

	if err := run(*configPath, *inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, inputPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	var recipes []seedRecipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	service := recipeapp.NewService(
		gormRepo.NewRecipeRepository(db),
		redisRepo.NewCacheRepository(redisClient, log),
		log,
	)

	ctx := context.Background()
	loaded := 0
	for _, r := range recipes {
		cmd := inbound.ImportRecipeCommand{
			Name:         r.Name,
			Category:     r.Category,
			Area:         r.Area,
			Instructions: r.Instructions,
			Image:        r.Image,
			Tags:         r.Tags,
		}
		for _, ing := range r.Ingredients {
			cmd.Ingredients = append(cmd.Ingredients, inbound.IngredientInput{
				Name:    ing.Name,
				Measure: ing.Measure,
			})
		}

		if _, err := service.ImportRecipe(ctx, cmd); err != nil {
			log.Warn("Skipping recipe",
				zap.String("name", r.Name),
				zap.Error(err),
			)
			continue
		}
		loaded++
	}

	log.Info("Catalog seeded",
		zap.Int("loaded", loaded),
		zap.Int("total", len(recipes)),
	)
	return nil
}
