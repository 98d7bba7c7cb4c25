package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode is unknown to OpenFoodFacts
	ErrProductNotFound = errors.New("product not found")

	// ErrRecipeNotFound is returned when the recipe catalog has no recipe for an ID
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrUpstreamFailure is returned when a remote nutrition API request fails
	ErrUpstreamFailure = errors.New("upstream API request failed")

	// ErrUpstreamNotConfigured is returned when a remote API has no credentials configured
	ErrUpstreamNotConfigured = errors.New("upstream API not configured")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
