// Package server boots the storefront: config, logging, database, cache,
// storage, then the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamestorehq/gamestore/config"
	"github.com/gamestorehq/gamestore/internal/kernel"
	"github.com/gamestorehq/gamestore/pkg/cache"
	"github.com/gamestorehq/gamestore/pkg/database"
	"github.com/gamestorehq/gamestore/pkg/logger"
	"github.com/gamestorehq/gamestore/pkg/payments"
	"github.com/gamestorehq/gamestore/pkg/storage"
)

const shutdownGrace = 10 * time.Second

// Start runs the HTTP server until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Setup()
	defer logger.Close()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// the cache is an accelerator, not a dependency
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	gateway := payments.NewStripeGateway(config.StripeSecretKey())

	handler, err := kernel.NewHandler(database.DB, gateway)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gamestore listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}
