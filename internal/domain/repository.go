package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ProductClient defines the interface for the barcode lookup API (OpenFoodFacts)
type ProductClient interface {
	GetProduct(ctx context.Context, barcode string) (*OFFProduct, error)
}

// RecipeClient defines the interface for the recipe catalog API
type RecipeClient interface {
	GetRecipe(ctx context.Context, id int) (*Recipe, error)
	SearchRecipes(ctx context.Context, query string, number int) (*RecipeSearchResponse, error)
	ListByCategory(ctx context.Context, category RecipeCategory) ([]Recipe, error)
}
