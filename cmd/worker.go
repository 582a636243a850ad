package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"
)

// workerCmd runs download workers without the HTTP API
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run download workers",
	Long: `Run a pool of download workers without the HTTP API.

Workers claim queued episode downloads, fetch the enclosure and upload it
to the station media library named in the job. Finished jobs are picked
up by the completion tracker of the "serve" process.

Example:
  stationcast worker
  stationcast worker --count 4`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Int("count", 0, "number of workers (overrides config)")
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	count := cfg.Processing.Workers
	if n, _ := cmd.Flags().GetInt("count"); n > 0 {
		count = n
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, db)
	if err != nil {
		db.Close()
		return err
	}
	defer a.close()

	pool := a.newWorkerPool(count)
	if err := pool.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Printf("[INFO] stopping %d worker(s)", pool.Size())
	pool.Stop()
	return nil
}
