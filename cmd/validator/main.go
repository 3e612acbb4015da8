// Command validator runs only the token exchange, for deployments that keep
// resource storage behind a separate gateway.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogotex/modelgate/handlers"
	"github.com/gogotex/modelgate/internal/access"
	"github.com/gogotex/modelgate/internal/clients"
	"github.com/gogotex/modelgate/internal/config"
	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/gogotex/modelgate/pkg/metrics"
	"github.com/gogotex/modelgate/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadValidatorConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetOutputFile(cfg.Log.File, cfg.Log.MaxSizeMB)

	registry, err := clients.Load(cfg.RegistryFile)
	if err != nil {
		logger.Fatalf("failed to load client registry: %v", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	deps := handlers.RouterDeps{
		Issuer:           access.NewValidator(registry, cfg.JWT.Secret, access.WithTTL(cfg.JWT.TokenTTL)),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Metrics:          promhttp.Handler(),
	}
	if cfg.RateLimit.Enabled {
		deps.RateLimit = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	srv := &http.Server{
		Addr:         cfg.ValidatorAddr(),
		Handler:      handlers.NewValidatorRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("validator listening on %s (%d clients)", srv.Addr, registry.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown: %v", err)
	}
}
