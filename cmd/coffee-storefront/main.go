// Package main boots the Coffee Storefront Simulator HTTP server.
package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/cart"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/config"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/forms"
	httpapi "github.com/fairyhunter13/coffee-storefront-simulator/internal/http"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/notify"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/obs"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/store"
	"github.com/fairyhunter13/coffee-storefront-simulator/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_error", "error", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("service_starting", "store_driver", cfg.StoreDriver)

	backend, closer, err := openBackend(cfg)
	if err != nil {
		obs.Logger.Error("store_open_error", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			obs.Logger.Error("store_close_error", "error", err)
		}
	}()

	keys := store.NewKeys(cfg.KeyPrefix)
	center := notify.NewCenter(cfg.NotificationTTL, cfg.NotificationLimit)
	mgr := cart.New(backend, keys)
	fs := forms.New(backend, keys, mgr, forms.WithNotifier(func(msg string) { center.Push(msg) }))

	app := httpapi.NewApp(cfg, mgr, fs, center)
	mgr.Render()
	handler := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped", "cart_renders", app.Renders())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openBackend returns the configured store backend and what to close on exit.
func openBackend(cfg config.Config) (store.Backend, io.Closer, error) {
	if cfg.StoreDriver == config.DriverSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		obs.Logger.Info("store_opened", "path", cfg.SQLitePath)
		return db, db, nil
	}
	return store.NewMemory(), nopCloser{}, nil
}
