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

	"github.com/spf13/cobra"

	"github.com/spendlog/server/internal/api"
	"github.com/spendlog/server/internal/config"
	"github.com/spendlog/server/internal/domain/records"
	"github.com/spendlog/server/internal/metrics"
	"github.com/spendlog/server/internal/notify"
	"github.com/spendlog/server/internal/storage/postgres"
)

var (
	// Server flags (override config/env)
	serverHost   string
	serverPort   int
	migrateFirst bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the spendlog HTTP server",
	Long: `Start the spendlog HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (and a .env file if present)
- Connect to PostgreSQL and optionally RabbitMQ
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  spendlog serve

  # Start on a specific host and port
  spendlog serve --host 127.0.0.1 --port 9090

  # Apply pending migrations before serving
  spendlog serve --migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
	serveCmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending database migrations before serving")
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
	logger.Info().Msg("starting spendlog server")

	metrics.Init(Version, GitCommit, BuildDate)

	if migrateFirst {
		if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
		logger.Info().Msg("migrations applied")
	}

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewPool(poolCtx, cfg.Database.URL, cfg.Database.MaxConnections)
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return fmt.Errorf("repository init failed: %w", err)
	}

	// Pool stats are scraped every 15 seconds.
	dbCollector := metrics.NewDBCollector(pool)
	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	go dbCollector.Start(collectorCtx, 15*time.Second)
	defer collectorCancel()

	var publisher records.EventPublisher
	if cfg.AMQP.URL != "" {
		client, err := notify.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, logger)
		if err != nil {
			return fmt.Errorf("AMQP connection failed: %w", err)
		}
		defer client.Close()
		publisher = client
		logger.Info().Str("exchange", cfg.AMQP.Exchange).Str("queue", cfg.AMQP.Queue).Msg("record event publisher enabled")
	} else {
		logger.Info().Msg("AMQP_URL not set, record event publishing disabled")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, logger, pool, repo, publisher),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
