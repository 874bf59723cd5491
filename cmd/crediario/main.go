package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"

	"crediario/internal/amqp"
	"crediario/internal/cache"
	"crediario/internal/cli"
	"crediario/internal/config"
	apphttp "crediario/internal/http"
	"crediario/internal/log"
)

const cacheCleanupInterval = time.Minute

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	if err := run(logger, cfg); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(logger *log.Logger, cfg *config.Config) error {
	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStart()

	ledger, err := cli.OpenLedger(startCtx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Error("Failed to close backend", log.FieldError, err)
		}
	}()

	caches := cache.NewManager(logger)
	srv := apphttp.NewServer(":"+cfg.Port, ledger.Store, apphttp.Options{
		Logger:             logger,
		Pinger:             ledger.Backend.Backend,
		Caches:             caches,
		Location:           ledger.Location,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ReportCacheSize:    cfg.ReportCacheSize,
		ReportCacheTTL:     cfg.ReportCacheTTL,
	})

	var forwarder *amqp.Forwarder
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(startCtx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		forwarder = amqp.NewForwarder(client, logger, cfg.AMQPBufferSize)
		detach := forwarder.Attach(ledger.Store.Bus())
		defer detach()
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting crediario server",
			"port", cfg.Port,
			log.FieldBackend, cfg.DataBackend,
			"timezone", ledger.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		caches.Run(gctx, cacheCleanupInterval)
		return nil
	})
	if forwarder != nil {
		g.Go(func() error {
			return forwarder.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	cli.WaitForShutdown(ctx, done)
	return nil
}
