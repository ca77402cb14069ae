// Command employeegw serves the employee API in front of the remote
// employee service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/employeegw/api"
	"github.com/byte4ever/employeegw/config"
	"github.com/byte4ever/employeegw/logger"
	"github.com/byte4ever/employeegw/observability"
	"github.com/byte4ever/employeegw/orchestrator"
	"github.com/byte4ever/employeegw/resilience"
	"github.com/byte4ever/employeegw/upstream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "employeegw: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	shutdownOTel, err := observability.InitOTel(ctx, log, cfg.Otel)
	if err != nil {
		return err
	}

	handler, err := buildHandler(cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Upstream.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "upstream", cfg.Upstream.BaseURL)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)

		err := srv.Shutdown(shutdownCtx)
		if otelErr := shutdownOTel(shutdownCtx); otelErr != nil {
			log.Warn("otel shutdown failed", "error", otelErr)
		}

		return err
	})

	return g.Wait()
}

// buildHandler wires the upstream gateway, the orchestrator and the
// router from the process configuration.
func buildHandler(cfg *config.Config, log *logger.Logger) (http.Handler, error) {
	var rcfg *resilience.Config

	if cfg.ResilienceConfig != "" {
		loaded, err := resilience.LoadConfig(cfg.ResilienceConfig)
		if err != nil {
			return nil, err
		}

		rcfg = loaded
		log.Info("resilience config loaded", "path", cfg.ResilienceConfig, "policies", len(rcfg.Policies))
	}

	client := upstream.NewClient(&http.Client{Timeout: cfg.Upstream.Timeout}, upstream.DefaultClassifier)
	gw := upstream.NewGateway(cfg.Upstream.BaseURL, client)

	reg := resilience.NewRegistry()

	orc, err := orchestrator.New(gw,
		orchestrator.WithConfig(rcfg),
		orchestrator.WithRegistry(reg),
		orchestrator.WithLogger(log.With("component", "orchestrator")),
	)
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.RouterConfig{
		Service:     orc,
		Registry:    reg,
		Logger:      log.With("component", "http"),
		ServiceName: cfg.Otel.ServiceName,
	}), nil
}
