package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	yakshopserver "github.com/Apurer/go-gin-yakshop/go"

	herdrediscache "github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/cache/redis"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/herdfile"
	herdmemory "github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/memory"
	herdobs "github.com/Apurer/go-gin-yakshop/internal/domains/herd/adapters/observability"
	herdapp "github.com/Apurer/go-gin-yakshop/internal/domains/herd/application"
	herdports "github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"

	ordersmemory "github.com/Apurer/go-gin-yakshop/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-yakshop/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-yakshop/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-yakshop/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"

	"github.com/Apurer/go-gin-yakshop/internal/http/middleware"
	platformobservability "github.com/Apurer/go-gin-yakshop/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-yakshop/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-yakshop/internal/platform/redis"
)

const serviceName = "yakshop-api"

// Run boots the YakShop HTTP API with observability, caches, and repositories
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		LogFormat:   cfg.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	router, cleanup, err := NewRouter(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to build YakShop API", slog.String("error", err.Error()))
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("YakShop API listening", slog.String("addr", srv.Addr), slog.String("herd", cfg.HerdPath))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("YakShop API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	}
	logger.Info("YakShop API stopped")
	return nil
}

// NewRouter loads the herd and wires services, adapters and middleware into a
// gin engine. The returned cleanup releases external connections.
func NewRouter(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*gin.Engine, func(), error) {
	logger := effectiveLogger(instruments)
	if strings.TrimSpace(cfg.HerdPath) == "" {
		return nil, func() {}, errors.New("herd file path is required (HERD_PATH or first argument)")
	}

	cache, cleanupCache := buildSnapshotCache(ctx, cfg, logger)
	coreHerdService, err := herdapp.Load(ctx, herdfile.NewSource(cfg.HerdPath),
		herdapp.WithCache(cache),
		herdapp.WithMaxDays(cfg.MaxDays),
		herdapp.WithLogger(logger),
	)
	if err != nil {
		cleanupCache()
		return nil, func() {}, fmt.Errorf("load herd %s: %w", cfg.HerdPath, err)
	}
	logger.Info("herd loaded", slog.String("path", cfg.HerdPath), slog.String("fingerprint", coreHerdService.Fingerprint()))
	herdService := herdobs.New(
		coreHerdService,
		herdobs.WithLogger(logger),
		herdobs.WithTracer(instruments.Tracer("internal.herd.application")),
		herdobs.WithMeter(instruments.Meter("internal.herd.application")),
	)

	orderRepo, idempotency, cleanupRepo := buildOrderStores(ctx, cfg, logger)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, herdService, ordersapp.WithIdempotencyStore(idempotency)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		middleware.AttachRequestContext(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	handlers := yakshopserver.ApiHandleFunctions{
		HerdAPI:  yakshopserver.NewHerdAPI(herdService),
		OrderAPI: yakshopserver.NewOrderAPI(orderService),
	}
	router := yakshopserver.NewRouterWithGinEngine(engine, handlers)

	cleanup := func() {
		cleanupRepo()
		cleanupCache()
	}
	return router, cleanup, nil
}

func buildSnapshotCache(ctx context.Context, cfg Config, logger *slog.Logger) (herdports.SnapshotCache, func()) {
	rdb, cleanup := platformredis.ConnectOptional(ctx, cfg.RedisAddr, logger)
	if rdb == nil {
		return herdmemory.NewCache(herdmemory.DefaultCapacity), cleanup
	}
	logger.Info("snapshot cache configured with redis", slog.Duration("ttl", cfg.CacheTTL))
	return herdrediscache.NewCache(rdb, herdrediscache.WithTTL(cfg.CacheTTL)), cleanup
}

func buildOrderStores(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, ordersports.IdempotencyStore, func()) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore(), cleanup
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), orderspostgres.NewIdempotencyStore(db), cleanup
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
