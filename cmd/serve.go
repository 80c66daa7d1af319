package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/blog-api/config"
	"github.com/snap-point/blog-api/repositories"
	"github.com/snap-point/blog-api/routes"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	// Serve flags
	migrateOnStart bool
	inMemory       bool
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on $PORT.

Examples:
  blog serve              # Serve against an existing schema
  blog serve --migrate    # Migrate the schema first, then serve
  blog serve --in-memory  # Keep users in process memory, no database`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Run schema migration before serving")
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false, "Serve from an in-memory user store instead of PostgreSQL")
	serveCmd.MarkFlagsMutuallyExclusive("migrate", "in-memory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if inMemory {
		cfg := config.LoadEnv()
		log.Println("Using in-memory user store; data is lost on exit")
		return serve(ctx, cfg, repositories.NewInMemoryUserRepository())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if migrateOnStart {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	return serve(ctx, cfg, repositories.NewUserRepository(db))
}

func serve(ctx context.Context, cfg *config.Config, userRepo repositories.UserRepository) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(userRepo),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
