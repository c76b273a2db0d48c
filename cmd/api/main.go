package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/shoplite/shoplite-backend/api/routes"
	authsvc "github.com/shoplite/shoplite-backend/internal/auth"
	cartsvc "github.com/shoplite/shoplite-backend/internal/cart"
	catalogsvc "github.com/shoplite/shoplite-backend/internal/catalog"
	ordersvc "github.com/shoplite/shoplite-backend/internal/orders"
	"github.com/shoplite/shoplite-backend/internal/users"
	"github.com/shoplite/shoplite-backend/pkg/auth/session"
	"github.com/shoplite/shoplite-backend/pkg/catalogapi"
	"github.com/shoplite/shoplite-backend/pkg/config"
	"github.com/shoplite/shoplite-backend/pkg/db"
	"github.com/shoplite/shoplite-backend/pkg/logger"
	"github.com/shoplite/shoplite-backend/pkg/metrics"
	"github.com/shoplite/shoplite-backend/pkg/migrate"
	"github.com/shoplite/shoplite-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

// listenAddr prefers the platform-injected PORT over the configured one.
func listenAddr(cfg *config.Config) string {
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	return ":" + port
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Append(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogClient, err := catalogapi.New(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(catalogClient, cfg.Catalog, cfg.FeatureFlags)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(ordersvc.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		SessionChecker: sessionManager,
		Registry:       registry,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		AuthService:    authService,
		CatalogService: catalogService,
		CartService:    cartService,
		OrdersService:  ordersService,
	})

	addr := listenAddr(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server shutting down gracefully")
}
