package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/infrastructure/upstream"
)

// productFields limits the product payload to what the normalizer reads
const productFields = "code,product_name,brands,serving_size,nutriments"

var barcodePattern = regexp.MustCompile(`^\d{6,14}$`)

// Config holds OpenFoodFacts client settings
type Config struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client handles communication with the OpenFoodFacts product API
type Client struct {
	requester *upstream.Requester
	baseURL   string
	logger    zerolog.Logger
}

// NewClient creates a new OpenFoodFacts API client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "openfoodfacts").Logger()
	return &Client{
		requester: upstream.NewRequester(upstream.Config{
			Name:              "openfoodfacts",
			UserAgent:         cfg.UserAgent,
			Timeout:           cfg.Timeout,
			RequestsPerMinute: cfg.RequestsPerMinute,
		}, logger),
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// SetDebug enables request-level debug logging
func (c *Client) SetDebug(debug bool) {
	c.requester.SetDebug(debug)
}

// ValidBarcode reports whether code looks like an EAN/UPC barcode
func ValidBarcode(code string) bool {
	return barcodePattern.MatchString(code)
}

// GetProduct fetches a product by barcode
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.OFFProduct, error) {
	if !ValidBarcode(barcode) {
		return nil, fmt.Errorf("%w: barcode %q", domain.ErrInvalidRequest, barcode)
	}

	params := url.Values{}
	params.Add("fields", productFields)
	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json?%s", c.baseURL, barcode, params.Encode())

	body, err := c.requester.Get(ctx, reqURL)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	var resp domain.OFFProductResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.Status != 1 || resp.Product == nil {
		c.logger.Debug().Str("barcode", barcode).Str("status", resp.StatusVerbose).Msg("product not found")
		return nil, domain.ErrProductNotFound
	}

	product := resp.Product
	if product.Code == "" {
		product.Code = barcode
	}
	c.logger.Debug().Str("barcode", barcode).Str("name", product.ProductName).Msg("product fetched")
	return product, nil
}
