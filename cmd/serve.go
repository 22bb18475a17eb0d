package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-review/internal/provider/geolocation"
	"restaurant-review/internal/wire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("bootstrap", false, "create missing tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	withBootstrap, _ := cmd.Flags().GetBool("bootstrap")

	rt, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	logger := rt.logger
	logger.Info("Starting application",
		zap.String("app", rt.config.App.Name),
		zap.String("port", rt.config.App.Port),
		zap.String("store", rt.config.Store.Driver),
		zap.Bool("debug", rt.config.App.Debug),
	)

	if withBootstrap {
		if err := rt.repo.Bootstrap(cmd.Context()); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}

	if rt.config.Geolocation.APIKey == "" {
		logger.Warn("GEO_API_KEY is empty; restaurant lookups will fail")
	}
	geo := geolocation.NewGoogleClient(rt.config.Geolocation, logger)

	app := wire.Wiring(rt.repo, geo, rt.config, logger)

	return APIServer(cmd.Context(), app.Router, rt.config.App.Port, logger)
}

// APIServer serves router on port until ctx is cancelled or the process
// receives SIGINT or SIGTERM.
func APIServer(ctx context.Context, router http.Handler, port string, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
