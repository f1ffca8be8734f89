package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"injury-estimator/internal/analytics"
	"injury-estimator/internal/config"
	"injury-estimator/internal/engine"
	"injury-estimator/internal/factors"
	"injury-estimator/internal/format"
	"injury-estimator/internal/handler"
	"injury-estimator/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	registry, err := factors.Load(cfg.Factors.Dir)
	if err != nil {
		return fmt.Errorf("load factor tables: %w", err)
	}

	formatter, err := format.New(cfg.Formatting.Locale, cfg.Formatting.Currency)
	if err != nil {
		return fmt.Errorf("create formatter: %w", err)
	}

	eng := engine.New(registry, formatter, log, cfg.Validation.Strict)
	h := handler.New(eng, analytics.NewTracker(registry, log), log, cfg.Server.EnableMetrics)

	server := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               cfg.App.Name,
		ReadTimeout:        config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:       config.GetDuration(cfg.Server.WriteTimeout),
		MaxRequestBodySize: cfg.Server.MaxBodySize,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Injury estimator starting", map[string]interface{}{
			"port":        cfg.Server.Port,
			"case_types":  len(registry.Tables()),
			"strict":      cfg.Validation.Strict,
			"environment": cfg.App.Environment,
		})
		errCh <- server.ListenAndServe(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
