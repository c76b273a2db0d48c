package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	authsvc "github.com/shoplite/shoplite-backend/internal/auth"
	cartsvc "github.com/shoplite/shoplite-backend/internal/cart"
	catalogsvc "github.com/shoplite/shoplite-backend/internal/catalog"
	ordersvc "github.com/shoplite/shoplite-backend/internal/orders"
	pkgAuth "github.com/shoplite/shoplite-backend/pkg/auth"
	"github.com/shoplite/shoplite-backend/pkg/auth/session"
	"github.com/shoplite/shoplite-backend/pkg/catalogapi"
	"github.com/shoplite/shoplite-backend/pkg/config"
	"github.com/shoplite/shoplite-backend/pkg/logger"
	"github.com/shoplite/shoplite-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{ ok bool }

func (s stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.ok, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.RefreshResponse, error) {
	return &authsvc.RefreshResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, userID uuid.UUID) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{Items: []cartsvc.Line{}, Subtotal: decimal.Zero}, nil
}

func (stubCartService) Add(ctx context.Context, userID uuid.UUID, snapshot cartsvc.ProductSnapshot, qty int) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{Items: []cartsvc.Line{}, Subtotal: decimal.Zero}, nil
}

func (stubCartService) SetQuantity(ctx context.Context, userID uuid.UUID, productID int64, qty int) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{Items: []cartsvc.Line{}, Subtotal: decimal.Zero}, nil
}

func (stubCartService) Remove(ctx context.Context, userID uuid.UUID, productID int64) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{Items: []cartsvc.Line{}, Subtotal: decimal.Zero}, nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{Items: []cartsvc.Line{}, Subtotal: decimal.Zero}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Checkout(ctx context.Context, userID uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: uuid.New()}, nil
}

func (stubOrdersService) List(ctx context.Context, userID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func (stubOrdersService) Get(ctx context.Context, userID, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

type stubUpstream struct{}

func (stubUpstream) ListProducts(ctx context.Context, limit, skip int) (*catalogapi.ProductPage, error) {
	return &catalogapi.ProductPage{Products: []catalogapi.Product{}, Total: 0}, nil
}

func (stubUpstream) SearchProducts(ctx context.Context, q string) (*catalogapi.ProductPage, error) {
	return &catalogapi.ProductPage{Products: []catalogapi.Product{}, Total: 0}, nil
}

func (stubUpstream) GetProduct(ctx context.Context, id int64) (*catalogapi.Product, error) {
	return &catalogapi.Product{ID: id}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
		Catalog: config.CatalogConfig{PageSize: 10},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	catalogService, err := catalogsvc.NewService(stubUpstream{}, cfg.Catalog, cfg.FeatureFlags)
	if err != nil {
		t.Fatalf("build catalog service: %v", err)
	}
	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             stubPinger{},
		Redis:          nil,
		SessionChecker: stubSessionChecker{ok: true},
		Registry:       registry,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		AuthService:    stubAuthService{},
		CatalogService: catalogService,
		CartService:    stubCartService{},
		OrdersService:  stubOrdersService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(t, testConfig())
	for _, target := range []string{
		"/api/v1/products",
		"/api/v1/catalog/keywords",
		"/api/v1/cart",
		"/api/v1/orders",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token got %d", target, resp.Code)
		}
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/keywords", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLogoutRequiresToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestUnmatchedRouteReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected code %q", payload.Error.Code)
	}
}

func TestCartRoutesWired(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	token := buildToken(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart fetch got %d: %s", resp.Code, resp.Body.String())
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/7", nil)
	del.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, del)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart item delete got %d: %s", resp.Code, resp.Body.String())
	}
}
