// Package recipes is a client for the Spoonacular recipe catalog.
package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/infrastructure/upstream"
)

const (
	defaultSearchResults = 10
	maxSearchResults     = 50
	categoryResults      = 20
)

// Config holds recipe API settings
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client handles communication with the recipe catalog API
type Client struct {
	requester *upstream.Requester
	baseURL   string
	apiKey    string
	logger    zerolog.Logger
}

// NewClient creates a new recipe API client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "recipes").Logger()
	return &Client{
		requester: upstream.NewRequester(upstream.Config{
			Name:              "recipes",
			Timeout:           cfg.Timeout,
			RequestsPerMinute: cfg.RequestsPerMinute,
		}, logger),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// SetDebug enables request-level debug logging
func (c *Client) SetDebug(debug bool) {
	c.requester.SetDebug(debug)
}

// GetRecipe fetches a recipe with its per-serving nutrition
func (c *Client) GetRecipe(ctx context.Context, id int) (*domain.Recipe, error) {
	if c.apiKey == "" {
		return nil, domain.ErrUpstreamNotConfigured
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: recipe id %d", domain.ErrInvalidRequest, id)
	}

	params := url.Values{}
	params.Add("includeNutrition", "true")
	params.Add("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s/recipes/%d/information?%s", c.baseURL, id, params.Encode())

	body, err := c.requester.Get(ctx, reqURL)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	var recipe domain.Recipe
	if err := json.Unmarshal(body, &recipe); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if recipe.ID == 0 {
		recipe.ID = id
	}
	return &recipe, nil
}

// SearchRecipes searches the catalog by free text. number is clamped to [1, 50]
// and defaults to 10.
func (c *Client) SearchRecipes(ctx context.Context, query string, number int) (*domain.RecipeSearchResponse, error) {
	if c.apiKey == "" {
		return nil, domain.ErrUpstreamNotConfigured
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidRequest)
	}
	if number <= 0 {
		number = defaultSearchResults
	}
	if number > maxSearchResults {
		number = maxSearchResults
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("number", strconv.Itoa(number))
	params.Add("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s/recipes/complexSearch?%s", c.baseURL, params.Encode())

	body, err := c.requester.Get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp domain.RecipeSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().Str("query", query).Int("results", len(resp.Results)).Msg("recipe search")
	return &resp, nil
}

// ListByCategory fetches recipes matching a preset category, with their
// information and nutrition
func (c *Client) ListByCategory(ctx context.Context, category domain.RecipeCategory) ([]domain.Recipe, error) {
	if c.apiKey == "" {
		return nil, domain.ErrUpstreamNotConfigured
	}
	if category.Param == "" {
		category = domain.DefaultRecipeCategory
	}

	params := url.Values{}
	params.Add("number", strconv.Itoa(categoryResults))
	params.Add("addRecipeInformation", "true")
	params.Add("includeNutrition", "true")
	params.Add(category.Param, category.Value)
	params.Add("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s/recipes/complexSearch?%s", c.baseURL, params.Encode())

	body, err := c.requester.Get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp domain.RecipeListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Results == nil {
		resp.Results = []domain.Recipe{}
	}

	c.logger.Debug().Str("category", category.Key).Int("results", len(resp.Results)).Msg("recipe category")
	return resp.Results, nil
}
