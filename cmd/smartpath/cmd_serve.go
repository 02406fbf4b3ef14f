package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/natevvv/smartpath-rail/pkg/routing"
	"github.com/natevvv/smartpath-rail/pkg/server/openapi_server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the route API over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	network, err := loadNetwork()
	if err != nil {
		return err
	}

	logger := slog.Default()
	router := routing.NewRouter(network, routing.WithWorkers(cfg.Routing.Workers), routing.WithLogger(logger))
	service := openapi_server.NewDefaultApiService(network, router,
		openapi_server.WithRouteCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
		openapi_server.WithServiceLogger(logger))
	apiRouter := openapi_server.NewRouter(openapi_server.NewDefaultApiController(service))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", openapi_server.RequestIDHeader},
		ExposedHeaders: []string{openapi_server.RequestIDHeader},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler.Handler(apiRouter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
