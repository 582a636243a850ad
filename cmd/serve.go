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

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/killallgit/stationcast/api"
	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/services/workers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the stationcast API server with the configured settings.

Besides the HTTP API the server runs the download workers and the
scheduler that reconciles finished downloads with the episode registry.
Use --no-workers when a separate "stationcast worker" process handles
downloads.

Example:
  stationcast serve
  stationcast serve --port 9090
  stationcast serve --host 0.0.0.0 --port 8080 --no-workers`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	serveCmd.Flags().Bool("no-workers", false, "do not run download workers in this process")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	noWorkers, _ := cmd.Flags().GetBool("no-workers")

	if cfg.Environment == "production" || cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, db)
	if err != nil {
		db.Close()
		return err
	}
	defer a.close()

	var pool *workers.WorkerPool
	if !noWorkers {
		pool = a.newWorkerPool(cfg.Processing.Workers)
		if err := pool.Start(ctx); err != nil {
			return err
		}
		defer pool.Stop()
	}

	scheduler, err := startScheduler(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer scheduler.Stop()

	server := api.NewServer(cfg.Server)
	server.SetDependencies(&types.Dependencies{
		DB:             db,
		Podcasts:       a.podcasts,
		Episodes:       a.episodes,
		Media:          a.media,
		Reconciler:     a.reconciler,
		JobService:     a.jobs,
		WorkerPool:     pool,
		APIKey:         cfg.Station.APIKey,
		Version:        Version,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})
	if err := server.Initialize(); err != nil {
		return err
	}

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] stationcast %s listening on %s", Version, server.Addr())

	var runErr error
	select {
	case <-stop:
		log.Printf("[INFO] shutting down server")
	case runErr = <-serverErr:
		log.Printf("[ERROR] %v", runErr)
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] server forced to shutdown: %v", err)
		return err
	}

	log.Printf("[INFO] server gracefully stopped")
	return runErr
}
