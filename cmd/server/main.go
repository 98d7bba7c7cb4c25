package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platewise/backend/config"
	httpDelivery "github.com/platewise/backend/internal/delivery/http"
	"github.com/platewise/backend/internal/infrastructure/cache"
	"github.com/platewise/backend/internal/infrastructure/openfoodfacts"
	"github.com/platewise/backend/internal/infrastructure/recipes"
	"github.com/platewise/backend/internal/logging"
	"github.com/platewise/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache_type", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Dur("recipe_ttl", cfg.Cache.RecipeTTL).
		Msg("starting Platewise backend v1.0.0")

	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval, logger)
	defer memoryCache.Close()

	offClient := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		RequestsPerMinute: cfg.RateLimit.OpenFoodFacts,
	}, logger)

	recipeClient := recipes.NewClient(recipes.Config{
		BaseURL:           cfg.Recipes.BaseURL,
		APIKey:            cfg.Recipes.APIKey,
		Timeout:           cfg.Recipes.Timeout,
		RequestsPerMinute: cfg.RateLimit.Recipes,
	}, logger)

	if cfg.Server.Environment == "development" {
		offClient.SetDebug(true)
		recipeClient.SetDebug(true)
		logger.Debug().Msg("upstream client debug mode enabled")
	}

	if cfg.Recipes.APIKey == "" {
		logger.Warn().Str("base_url", cfg.Recipes.BaseURL).Msg("recipe API key not configured, recipe lookups will fail")
	}

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Products: usecase.NewProductService(memoryCache, offClient,
			usecase.ProductServiceConfig{CacheTTL: cfg.Cache.TTL}, logger),
		Recipes: usecase.NewRecipeService(memoryCache, recipeClient,
			usecase.RecipeServiceConfig{RecipeTTL: cfg.Cache.RecipeTTL}, logger),
		Normalizer: usecase.NewNormalizationService(nil),
		Intake:     usecase.NewIntakeService(memoryCache, logger),
		Bookmarks:  usecase.NewBookmarkService(memoryCache, logger),
	}, logger)

	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
