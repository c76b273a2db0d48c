package catalogapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shoplite/shoplite-backend/pkg/config"
	"github.com/shoplite/shoplite-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(config.CatalogConfig{
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestListProducts(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Equal(t, "20", r.URL.Query().Get("skip"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{"id": 21, "title": "iPhone 9", "price": 549, "rating": 4.69, "category": "smartphones"},
				{"id": 22, "title": "Perfume Oil", "price": 13, "rating": 4.26, "category": "fragrances"}
			],
			"total": 100, "skip": 20, "limit": 10
		}`))
	}))

	page, err := client.ListProducts(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	require.Equal(t, 100, page.Total)
	require.Equal(t, int64(21), page.Products[0].ID)
	require.Equal(t, "549", page.Products[0].Price.String())
}

func TestSearchProducts(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/search", r.URL.Path)
		require.Equal(t, "laptop", r.URL.Query().Get("q"))
		w.Write([]byte(`{"products": [{"id": 7, "title": "Samsung Galaxy Book", "price": 1499}], "total": 1}`))
	}))

	page, err := client.SearchProducts(context.Background(), "laptop")
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, 1, page.Total)
}

func TestGetProduct(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/5", r.URL.Path)
		w.Write([]byte(`{"id": 5, "title": "Huawei P30", "price": 499, "category": "smartphones"}`))
	}))

	product, err := client.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "Huawei P30", product.Title)
}

func TestGetProductNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Product with id '999' not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), 999)
	require.Error(t, err)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestUpstreamFailureIsDependencyError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.ListProducts(context.Background(), 10, 0)
	require.Error(t, err)
	require.Equal(t, errors.CodeDependency, errors.As(err).Code())
}

func TestMalformedBodyIsDependencyError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"products": [`))
	}))

	_, err := client.ListProducts(context.Background(), 10, 0)
	require.Error(t, err)
	require.Equal(t, errors.CodeDependency, errors.As(err).Code())
}

func TestEmptyListingNormalizesProducts(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"total": 0, "skip": 0, "limit": 10}`))
	}))

	page, err := client.ListProducts(context.Background(), 10, 0)
	require.NoError(t, err)
	require.NotNil(t, page.Products)
	require.Empty(t, page.Products)
}
