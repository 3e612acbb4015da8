package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/handlers"
	"github.com/gogotex/modelgate/internal/access"
	"github.com/gogotex/modelgate/internal/clients"
	"github.com/gogotex/modelgate/internal/config"
	"github.com/gogotex/modelgate/internal/tokens"
	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/gogotex/modelgate/pkg/metrics"
	"github.com/gogotex/modelgate/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetOutputFile(cfg.Log.File, cfg.Log.MaxSizeMB)
	logger.Infof("config loaded: backend=%s redis=%v rate_limit=%v", cfg.Storage.Backend, cfg.Redis.Host != "", cfg.RateLimit.Enabled)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := clients.Load(cfg.RegistryFile)
	if err != nil {
		logger.Fatalf("failed to load client registry: %v", err)
	}
	logger.Infof("client registry: %d clients", registry.Len())

	rdb := openRedis(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	be, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s storage: %v", cfg.Storage.Backend, err)
	}
	defer be.close(context.Background())
	be.withCache(rdb, cfg)
	assets, configs := be.services(cfg)

	checks := be.checks
	if rdb != nil {
		checks = append(checks, handlers.NamedCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := handlers.NewRouter(handlers.RouterDeps{
		Issuer:           access.NewValidator(registry, cfg.JWT.Secret, access.WithTTL(cfg.JWT.TokenTTL)),
		Verifier:         tokens.NewVerifier(cfg.JWT.Secret),
		Assets:           assets,
		Configs:          configs,
		Checks:           checks,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		RateLimit:        rateLimiter(cfg, rdb),
		Metrics:          promhttp.Handler(),
	})

	serve(ctx, cfg.Addr(), cfg, r)
}

// rateLimiter returns nil when rate limiting is disabled.
func rateLimiter(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.UseRedis && rdb != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		logger.Infof("rate limiter: redis rps=%.2f burst=%d window=%s", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		return middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
	}
	logger.Infof("rate limiter: memory rps=%.2f burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// serve runs h on addr until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, addr string, cfg *config.Config, h http.Handler) {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Errorf("graceful shutdown: %v", err)
		}
	}
}
