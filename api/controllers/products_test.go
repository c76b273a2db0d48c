package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	catalogsvc "github.com/shoplite/shoplite-backend/internal/catalog"
	"github.com/shoplite/shoplite-backend/pkg/catalogapi"
	"github.com/shoplite/shoplite-backend/pkg/config"
)

type stubUpstreamClient struct {
	page      *catalogapi.ProductPage
	product   *catalogapi.Product
	err       error
	lastLimit int
	lastSkip  int
	lastQuery string
	lastID    int64
}

func (s *stubUpstreamClient) ListProducts(ctx context.Context, limit, skip int) (*catalogapi.ProductPage, error) {
	s.lastLimit = limit
	s.lastSkip = skip
	return s.page, s.err
}

func (s *stubUpstreamClient) SearchProducts(ctx context.Context, q string) (*catalogapi.ProductPage, error) {
	s.lastQuery = q
	return s.page, s.err
}

func (s *stubUpstreamClient) GetProduct(ctx context.Context, id int64) (*catalogapi.Product, error) {
	s.lastID = id
	return s.product, s.err
}

func newCatalogService(t *testing.T, upstream *stubUpstreamClient) *catalogsvc.Service {
	t.Helper()
	svc, err := catalogsvc.NewService(upstream, config.CatalogConfig{PageSize: 10}, config.FeatureFlagsConfig{ResetPageOnFilterChange: true})
	if err != nil {
		t.Fatalf("build catalog service: %v", err)
	}
	return svc
}

func TestProductsBrowse(t *testing.T) {
	upstream := &stubUpstreamClient{
		page: &catalogapi.ProductPage{
			Products: []catalogapi.Product{
				{ID: 1, Title: "iPhone 9", Category: "smartphones", Price: decimal.NewFromInt(549)},
				{ID: 2, Title: "Perfume Oil", Category: "fragrances", Price: decimal.NewFromInt(13)},
			},
			Total: 100,
		},
	}
	handler := ProductsBrowse(newCatalogService(t, upstream), nil)

	req := httptest.NewRequest(http.MethodGet, "/products?page=3&sort=cheap", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if upstream.lastLimit != 10 || upstream.lastSkip != 20 {
		t.Fatalf("expected limit 10 skip 20, got %d/%d", upstream.lastLimit, upstream.lastSkip)
	}

	var envelope struct {
		Data struct {
			Total int `json:"total"`
			Page  struct {
				Current int   `json:"current"`
				Window  []int `json:"window"`
			} `json:"page"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 100 {
		t.Fatalf("expected total 100 got %d", envelope.Data.Total)
	}
	if envelope.Data.Page.Current != 3 {
		t.Fatalf("expected page 3 got %d", envelope.Data.Page.Current)
	}
}

func TestProductsBrowseKeywordUsesSearch(t *testing.T) {
	upstream := &stubUpstreamClient{
		page: &catalogapi.ProductPage{Products: []catalogapi.Product{}, Total: 4},
	}
	handler := ProductsBrowse(newCatalogService(t, upstream), nil)

	req := httptest.NewRequest(http.MethodGet, "/products?keyword=Watch", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if upstream.lastQuery != "Watch" {
		t.Fatalf("expected search query Watch got %q", upstream.lastQuery)
	}
}

func TestProductsBrowseRejectsBadPage(t *testing.T) {
	upstream := &stubUpstreamClient{page: &catalogapi.ProductPage{}}
	handler := ProductsBrowse(newCatalogService(t, upstream), nil)

	req := httptest.NewRequest(http.MethodGet, "/products?page=zero", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductsBrowseRejectsBadPrice(t *testing.T) {
	upstream := &stubUpstreamClient{page: &catalogapi.ProductPage{}}
	handler := ProductsBrowse(newCatalogService(t, upstream), nil)

	req := httptest.NewRequest(http.MethodGet, "/products?min_price=cheap", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestProductsGet(t *testing.T) {
	upstream := &stubUpstreamClient{
		product: &catalogapi.Product{ID: 42, Title: "Leather Wallet", Price: decimal.NewFromInt(57)},
	}
	handler := ProductsGet(newCatalogService(t, upstream), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/42", nil), "productId", "42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if upstream.lastID != 42 {
		t.Fatalf("expected id 42 got %d", upstream.lastID)
	}
}

func TestProductsGetRejectsBadID(t *testing.T) {
	upstream := &stubUpstreamClient{}
	handler := ProductsGet(newCatalogService(t, upstream), nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/nope", nil), "productId", "nope")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if upstream.lastID != 0 {
		t.Fatal("upstream should not be reached")
	}
}

func TestCatalogCategories(t *testing.T) {
	upstream := &stubUpstreamClient{
		page: &catalogapi.ProductPage{
			Products: []catalogapi.Product{
				{ID: 1, Category: "smartphones"},
				{ID: 2, Category: "fragrances"},
				{ID: 3, Category: "smartphones"},
			},
			Total: 3,
		},
	}
	handler := CatalogCategories(newCatalogService(t, upstream), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			Categories []string `json:"categories"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Categories) != 2 {
		t.Fatalf("expected 2 categories got %v", envelope.Data.Categories)
	}
}

func TestCatalogKeywords(t *testing.T) {
	upstream := &stubUpstreamClient{}
	handler := CatalogKeywords(newCatalogService(t, upstream), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/keywords", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			Keywords []string `json:"keywords"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Keywords) == 0 {
		t.Fatal("expected fixed keyword list")
	}
}
