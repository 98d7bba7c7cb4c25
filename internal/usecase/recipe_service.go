package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/nutrition"
)

const (
	recipeKeyPrefix     = "recipe:"
	recipeListKeyPrefix = "recipes:"
)

// RecipeServiceConfig holds configuration for the recipe service
type RecipeServiceConfig struct {
	RecipeTTL time.Duration
}

// RecipeService resolves catalog recipes to normalized per-serving nutrients
type RecipeService struct {
	cache     domain.CacheRepository
	client    domain.RecipeClient
	recipeTTL time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRecipeService creates a new recipe service with dependencies
func NewRecipeService(
	cache domain.CacheRepository,
	client domain.RecipeClient,
	config RecipeServiceConfig,
	logger zerolog.Logger,
) *RecipeService {
	recipeTTL := config.RecipeTTL
	if recipeTTL == 0 {
		recipeTTL = 24 * time.Hour
	}

	return &RecipeService{
		cache:     cache,
		client:    client,
		recipeTTL: recipeTTL,
		logger:    logger.With().Str("component", "recipe_service").Logger(),
		now:       time.Now,
	}
}

// GetRecipe returns a recipe's normalized nutrients. A cached copy older
// than the recipe TTL is refetched even if the cache still holds it.
func (s *RecipeService) GetRecipe(ctx context.Context, id int) (*domain.NormalizedFood, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: recipe id must be positive", domain.ErrInvalidRequest)
	}

	key := recipeKeyPrefix + strconv.Itoa(id)
	cached, err := loadCached[domain.NormalizedFood](ctx, s.cache, key)
	switch {
	case err == nil && s.fresh(cached.CachedAt):
		cached.Cached = true
		return cached, nil
	case err == nil:
		s.logger.Debug().Int("recipe_id", id).Msg("cached recipe is stale")
	case !isMiss(err):
		s.logger.Warn().Err(err).Int("recipe_id", id).Msg("cache read failed")
	}

	recipe, err := s.client.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	food := FoodFromRecipe(recipe)
	if food.Reference == "" || food.Reference == "0" {
		food.Reference = strconv.Itoa(id)
	}
	cachedAt := s.now().UTC()
	food.CachedAt = &cachedAt

	if err := s.cache.Set(ctx, key, food, s.recipeTTL); err != nil {
		s.logger.Warn().Err(err).Int("recipe_id", id).Msg("cache write failed")
	}

	return food, nil
}

// SearchRecipes passes a free-text search through to the catalog
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, number int) (*domain.RecipeSearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	return s.client.SearchRecipes(ctx, query, number)
}

// Categories lists the preset browse categories
func (s *RecipeService) Categories() []domain.RecipeCategory {
	return domain.RecipeCategories()
}

// Browse returns the recipes of a preset category. Unknown categories
// browse the default one. A cached list is served while it is fresh and
// not empty.
func (s *RecipeService) Browse(ctx context.Context, categoryKey string) (*domain.RecipeList, error) {
	category, _ := domain.LookupRecipeCategory(categoryKey)
	key := recipeListKeyPrefix + category.Key

	cached, err := loadCached[domain.RecipeList](ctx, s.cache, key)
	switch {
	case err == nil && len(cached.Recipes) > 0 && s.fresh(cached.CachedAt):
		cached.Cached = true
		return cached, nil
	case err == nil:
		s.logger.Debug().Str("category", category.Key).Msg("cached recipe list is stale")
	case !isMiss(err):
		s.logger.Warn().Err(err).Str("category", category.Key).Msg("cache read failed")
	}

	recipes, err := s.client.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	cachedAt := s.now().UTC()
	list := &domain.RecipeList{
		Category: category.Key,
		Recipes:  recipes,
		CachedAt: &cachedAt,
	}
	if err := s.cache.Set(ctx, key, list, s.recipeTTL); err != nil {
		s.logger.Warn().Err(err).Str("category", category.Key).Msg("cache write failed")
	}
	return list, nil
}

// ClearCaches drops every cached recipe and category list and returns how
// many entries were removed
func (s *RecipeService) ClearCaches(ctx context.Context) (int, error) {
	removed := 0
	for _, prefix := range []string{recipeKeyPrefix, recipeListKeyPrefix} {
		keys, err := s.cache.Keys(ctx, prefix)
		if err != nil {
			return removed, err
		}
		for _, key := range keys {
			if err := s.cache.Delete(ctx, key); err != nil {
				return removed, err
			}
			removed++
		}
	}
	s.logger.Info().Int("removed", removed).Msg("recipe caches cleared")
	return removed, nil
}

func (s *RecipeService) fresh(cachedAt *time.Time) bool {
	if cachedAt == nil {
		return false
	}
	return s.now().Sub(*cachedAt) < s.recipeTTL
}

// FoodFromRecipe normalizes a catalog recipe
func FoodFromRecipe(recipe *domain.Recipe) *domain.NormalizedFood {
	food := &domain.NormalizedFood{
		Source:    domain.SourceRecipe,
		Name:      recipe.Title,
		Nutrients: nutrition.FromRecipe(recipe),
	}
	if recipe.ID != 0 {
		food.Reference = strconv.Itoa(recipe.ID)
	}
	if recipe.Servings > 0 {
		food.Serving = fmt.Sprintf("1 of %d servings", recipe.Servings)
	}
	return food
}
