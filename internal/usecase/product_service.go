package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/nutrition"
)

const (
	// MaxBatchBarcodes bounds a single batch lookup
	MaxBatchBarcodes = 20

	batchConcurrency = 4
	productKeyPrefix = "product:"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL time.Duration
}

// ProductService looks up barcodes on OpenFoodFacts and normalizes them,
// caching the normalized result
type ProductService struct {
	cache    domain.CacheRepository
	client   domain.ProductClient
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	client domain.ProductClient,
	config ProductServiceConfig,
	logger zerolog.Logger,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour
	}

	return &ProductService{
		cache:    cache,
		client:   client,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "product_service").Logger(),
		now:      time.Now,
	}
}

// Lookup resolves a barcode to its normalized per-serving nutrients.
// Flow: check cache -> fetch product -> normalize -> cache -> return
func (s *ProductService) Lookup(ctx context.Context, barcode string) (*domain.NormalizedFood, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", domain.ErrInvalidRequest)
	}

	key := productKeyPrefix + barcode
	cached, err := loadCached[domain.NormalizedFood](ctx, s.cache, key)
	if err == nil {
		cached.Cached = true
		return cached, nil
	}
	if !isMiss(err) {
		s.logger.Warn().Err(err).Str("barcode", barcode).Msg("cache read failed")
	}

	product, err := s.client.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	food := FoodFromProduct(product)
	if food.Reference == "" {
		food.Reference = barcode
	}
	cachedAt := s.now().UTC()
	food.CachedAt = &cachedAt

	if err := s.cache.Set(ctx, key, food, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("barcode", barcode).Msg("cache write failed")
	}

	return food, nil
}

// BatchResult is the outcome of one barcode in a batch lookup
type BatchResult struct {
	Barcode string                 `json:"barcode"`
	Food    *domain.NormalizedFood `json:"food,omitempty"`
	Error   string                 `json:"error,omitempty"`
	err     error
}

// Err returns the lookup error for this barcode, if any
func (r BatchResult) Err() error {
	return r.err
}

// LookupBatch resolves up to MaxBatchBarcodes barcodes concurrently. Results
// keep the input order; a failed barcode carries its error instead of
// failing the batch.
func (s *ProductService) LookupBatch(ctx context.Context, barcodes []string) ([]BatchResult, error) {
	if len(barcodes) == 0 {
		return nil, fmt.Errorf("%w: at least one barcode is required", domain.ErrInvalidRequest)
	}
	if len(barcodes) > MaxBatchBarcodes {
		return nil, fmt.Errorf("%w: at most %d barcodes per batch, got %d",
			domain.ErrInvalidRequest, MaxBatchBarcodes, len(barcodes))
	}

	results := make([]BatchResult, len(barcodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, barcode := range barcodes {
		g.Go(func() error {
			food, err := s.Lookup(gctx, barcode)
			results[i] = BatchResult{Barcode: barcode, Food: food, err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FoodFromProduct normalizes an OpenFoodFacts product
func FoodFromProduct(product *domain.OFFProduct) *domain.NormalizedFood {
	return &domain.NormalizedFood{
		Source:    domain.SourceBarcode,
		Reference: product.Code,
		Name:      product.ProductName,
		Brand:     product.Brands,
		Serving:   product.ServingSize,
		Nutrients: nutrition.FromOpenFoodFacts(product),
	}
}
