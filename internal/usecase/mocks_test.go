package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/platewise/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string]interface{}
	getError  error
	setError  error
	getCalled bool
	setCalled bool
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled = true
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// MockProductClient is a mock implementation of domain.ProductClient
type MockProductClient struct {
	mu       sync.Mutex
	products map[string]*domain.OFFProduct
	err      error
	calls    int
	inFlight int
	maxSeen  int
	delay    time.Duration
}

func NewMockProductClient() *MockProductClient {
	return &MockProductClient{products: make(map[string]*domain.OFFProduct)}
}

func (m *MockProductClient) GetProduct(ctx context.Context, barcode string) (*domain.OFFProduct, error) {
	m.mu.Lock()
	m.calls++
	m.inFlight++
	if m.inFlight > m.maxSeen {
		m.maxSeen = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	product, ok := m.products[barcode]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// MockRecipeClient is a mock implementation of domain.RecipeClient
type MockRecipeClient struct {
	recipes      map[int]*domain.Recipe
	searchResult *domain.RecipeSearchResponse
	err          error
	calls        int
	lastQuery    string
	lastNumber   int

	lists        map[string][]domain.Recipe
	listCalls    int
	lastCategory domain.RecipeCategory
}

func NewMockRecipeClient() *MockRecipeClient {
	return &MockRecipeClient{recipes: make(map[int]*domain.Recipe)}
}

func (m *MockRecipeClient) GetRecipe(ctx context.Context, id int) (*domain.Recipe, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	recipe, ok := m.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func (m *MockRecipeClient) SearchRecipes(ctx context.Context, query string, number int) (*domain.RecipeSearchResponse, error) {
	m.lastQuery = query
	m.lastNumber = number
	if m.err != nil {
		return nil, m.err
	}
	return m.searchResult, nil
}

func (m *MockRecipeClient) ListByCategory(ctx context.Context, category domain.RecipeCategory) ([]domain.Recipe, error) {
	m.listCalls++
	m.lastCategory = category
	if m.err != nil {
		return nil, m.err
	}
	return m.lists[category.Key], nil
}

func nutellaProduct() *domain.OFFProduct {
	return &domain.OFFProduct{
		Code:        "3017620422003",
		ProductName: "Nutella",
		Brands:      "Ferrero",
		ServingSize: "15 g",
		Nutriments: map[string]any{
			"energy-kcal_100g": 539.0,
			"fat_100g":         30.9,
			"sugars_100g":      56.3,
			"salt_100g":        0.107,
		},
	}
}
