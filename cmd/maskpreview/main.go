package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/maskpreview/internal/adapter/driven/catalog"
	httphandler "github.com/ericfisherdev/maskpreview/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/maskpreview/internal/adapter/driving/web"
	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire the catalog loader and the process-wide store.
	loader := catalog.NewLoader(cfg.CatalogOrigin, cfg.BasePath)
	catalogSvc := application.NewCatalogService(loader, logger)
	store := application.NewMaskStore()

	slog.Info("config loaded",
		"mode", cfg.Mode,
		"base_path", cfg.BasePath,
		"listen_addr", cfg.ListenAddr,
		"catalog_url", loader.URL(),
	)

	// 4. Register API and GUI routes on one mux.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(store, catalogSvc, logger)
	httphandler.RegisterAPIRoutes(mux, apiHandler, cfg.BasePath)

	webHandler := webhandler.NewHandler(store, catalogSvc, cfg.BasePath, logger)
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("maskpreview started", "url", "http://"+cfg.ListenAddr+cfg.BasePath)

	// 5. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 6. Graceful shutdown with 10s timeout. SSE streams end with ctx.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
