package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/config"
	"github.com/Shivanand-hulikatti/eventos/internal/database"
	"github.com/Shivanand-hulikatti/eventos/internal/handler"
	"github.com/Shivanand-hulikatti/eventos/internal/repository"
	"github.com/Shivanand-hulikatti/eventos/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The store backend is chosen with STORE_DRIVER (postgres, mongo, memory).
The server shuts down gracefully on SIGINT/SIGTERM.

Examples:
  eventos serve
  eventos serve --host 127.0.0.1 --port 3000
  STORE_DRIVER=memory eventos serve --log-format console`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().
		Str("environment", cfg.Environment).
		Str("store", cfg.Store.Driver).
		Msg("starting events server")

	// ── 1. Connect to the store ───────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repo, closeStore, err := openRepository(connectCtx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	eventSvc := service.NewEventService(repo, logger)
	eventHandler := handler.NewEventHandler(eventSvc)
	router := handler.NewRouter(cfg, logger, eventHandler)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("prefix", cfg.Server.RoutePrefix).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openRepository connects the configured backend and returns it with a
// function releasing its resources.
func openRepository(ctx context.Context, cfg config.Config, logger zerolog.Logger) (repository.EventRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		logger.Info().Msg("connected to PostgreSQL")
		return repository.NewPostgresEventRepository(pool), pool.Close, nil

	case config.DriverMongo:
		client, coll, err := database.NewMongoCollection(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
			}
		}
		return repository.NewMongoEventRepository(coll), closeFn, nil

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		return repository.NewMemoryEventRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
