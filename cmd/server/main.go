package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/portoo/portoo-backend/internal/config"
	"github.com/portoo/portoo-backend/internal/infrastructure/container"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "portoo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependency injection container
	app, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Error closing application", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(app.Server.Start)
	g.Go(func() error {
		<-gctx.Done()
		// the parent context is already cancelled here
		return app.Server.Shutdown(context.Background())
	})

	log.Info("Server started", "addr", app.Server.Addr(), "env", cfg.Server.Env)

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server exited properly")
	return nil
}
