package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greenplace-be/internal/cart"
	"greenplace-be/internal/catalog"
	"greenplace-be/internal/category"
	"greenplace-be/internal/config"
	"greenplace-be/internal/db"
	"greenplace-be/internal/handler"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/metrics"
	"greenplace-be/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	newCartStore    = openCartStore
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(cfg)
	defer database.Close()

	store, closeStore, err := newCartStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newServer(ctx, cfg, database, store, reg)

	logger.L().Info("server running",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, router)
}

// openCartStore uses Redis when REDIS_URL is set and process memory otherwise.
func openCartStore(ctx context.Context, cfg *config.Config) (cart.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.L().Warn("REDIS_URL not set, carts are kept in memory")
		return cart.NewMemoryStore(), func() {}, nil
	}

	store, err := cart.NewRedisStore(ctx, cfg.RedisURL, cfg.CartTTL)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// newServer wires repositories, services and the router.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB, store cart.Store, reg *prometheus.Registry) http.Handler {
	m := metrics.New(reg)

	catalogSvc := catalog.NewService(catalog.NewRepository(database), m)
	lookupSvc := category.NewService(category.NewRepository(database), cfg.LookupCacheTTL)
	cartSvc := cart.NewService(store, catalogSvc, cart.Options{
		ExchangeRate: cfg.ExchangeRate,
		StoreName:    cfg.StoreName,
		Phone:        cfg.WhatsAppPhone,
	}, m)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx, time.Minute)

	return handler.NewRouter(handler.New(catalogSvc, lookupSvc, cartSvc), handler.RouterOptions{
		CORSOrigin:    cfg.CORSAllowedOrigin,
		SessionMaxAge: cfg.CartTTL,
		SecureCookies: cfg.IsProduction(),
		Limiter:       limiter,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
