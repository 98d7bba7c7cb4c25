package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, UserAgent: "Platewise-Test/1.0", Timeout: 5 * time.Second}, zerolog.Nop())
}

func TestGetProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003.json", r.URL.Path)
		assert.Equal(t, productFields, r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "3017620422003",
			"status": 1,
			"product": {
				"product_name": "Nutella",
				"brands": "Ferrero",
				"serving_size": "15 g",
				"nutriments": {"energy-kcal_100g": 539, "sugars_100g": 56.3, "salt_100g": 0.107}
			}
		}`))
	}))
	defer server.Close()

	product, err := newTestClient(server.URL).GetProduct(context.Background(), "3017620422003")

	require.NoError(t, err)
	assert.Equal(t, "Nutella", product.ProductName)
	assert.Equal(t, "Ferrero", product.Brands)
	assert.Equal(t, "15 g", product.ServingSize)
	assert.Equal(t, "3017620422003", product.Code)
	assert.Equal(t, 539.0, product.Nutriments["energy-kcal_100g"])
}

func TestGetProduct_StatusZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0000000000000","status":0,"status_verbose":"product not found"}`))
	}))
	defer server.Close()

	product, err := newTestClient(server.URL).GetProduct(context.Background(), "0000000000000")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "12345678")

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProduct_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not valid json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "12345678")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestGetProduct_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "12345678")

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestGetProduct_InvalidBarcode(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	for _, code := range []string{"", "abc", "123", "12345678901234567", "1234/5678"} {
		_, err := client.GetProduct(context.Background(), code)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "barcode %q", code)
	}
}
