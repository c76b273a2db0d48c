package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoplite/shoplite-backend/api/controllers"
	"github.com/shoplite/shoplite-backend/api/middleware"
	"github.com/shoplite/shoplite-backend/api/responses"
	authsvc "github.com/shoplite/shoplite-backend/internal/auth"
	cartsvc "github.com/shoplite/shoplite-backend/internal/cart"
	catalogsvc "github.com/shoplite/shoplite-backend/internal/catalog"
	ordersvc "github.com/shoplite/shoplite-backend/internal/orders"
	"github.com/shoplite/shoplite-backend/pkg/auth/session"
	"github.com/shoplite/shoplite-backend/pkg/config"
	"github.com/shoplite/shoplite-backend/pkg/db"
	"github.com/shoplite/shoplite-backend/pkg/errors"
	"github.com/shoplite/shoplite-backend/pkg/logger"
	"github.com/shoplite/shoplite-backend/pkg/metrics"
	"github.com/shoplite/shoplite-backend/pkg/redis"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics
	AuthService    authsvc.Service
	CatalogService *catalogsvc.Service
	CartService    cartsvc.Service
	OrdersService  ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, errors.New(errors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, errors.New(errors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	// Inline group: middleware runs only for matched routes, so unknown
	// /api/v1 paths still reach the 404 envelope unauthenticated.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/api/v1/products", controllers.ProductsBrowse(deps.CatalogService, logg))
		r.Get("/api/v1/products/{productId}", controllers.ProductsGet(deps.CatalogService, logg))

		r.Get("/api/v1/catalog/categories", controllers.CatalogCategories(deps.CatalogService, logg))
		r.Get("/api/v1/catalog/keywords", controllers.CatalogKeywords(deps.CatalogService, logg))

		r.Get("/api/v1/cart", controllers.CartGet(deps.CartService, logg))
		r.Post("/api/v1/cart/items", controllers.CartAddItem(deps.CartService, logg))
		r.Put("/api/v1/cart/items/{productId}", controllers.CartSetQuantity(deps.CartService, logg))
		r.Delete("/api/v1/cart/items/{productId}", controllers.CartRemoveItem(deps.CartService, logg))
		r.Delete("/api/v1/cart", controllers.CartClear(deps.CartService, logg))

		r.Post("/api/v1/checkout", controllers.Checkout(deps.OrdersService, logg))

		r.Get("/api/v1/orders", controllers.OrdersList(deps.OrdersService, logg))
		r.Get("/api/v1/orders/{orderId}", controllers.OrdersGet(deps.OrdersService, logg))
	})

	return r
}
