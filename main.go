package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/novastore-api/initializers"
	"github.com/Kariqs/novastore-api/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "novastore",
	Short:         "Nova Store storefront API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var syncDbCmd = &cobra.Command{
	Use:   "sync-db",
	Short: "Migrate SQL tables or create MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, cfg *initializers.Config, db *initializers.Database) error {
			return initializers.SyncDatabase(ctx, db)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store default branding, home settings and the admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, cfg *initializers.Config, db *initializers.Database) error {
			return initializers.Seed(ctx, cfg, db.Stores)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, syncDbCmd, seedCmd)
}

func withDatabase(ctx context.Context, fn func(context.Context, *initializers.Config, *initializers.Database) error) error {
	cfg, err := initializers.LoadEnv()
	if err != nil {
		return err
	}
	initializers.NewLogger(cfg)

	db, err := initializers.ConnectToDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	return fn(ctx, cfg, db)
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := initializers.LoadEnv()
	if err != nil {
		return err
	}
	logger := initializers.NewLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := initializers.ConnectToDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	if err := initializers.SyncDatabase(ctx, db); err != nil {
		return err
	}
	if db.Driver == "memory" {
		if err := initializers.Seed(ctx, cfg, db.Stores); err != nil {
			return err
		}
	}

	controller, err := initializers.NewController(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer controller.Cache.Close()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewServer(controller, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.AppEnv, "db", db.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
