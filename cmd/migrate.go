package cmd

import (
	"fmt"
	"strconv"

	log "github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/killallgit/stationcast/internal/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for stationcast.

Migrations are embedded in the binary. "serve" and "worker" apply pending
migrations on startup, these subcommands exist for manual control.

Available subcommands:
  up      - Apply all pending migrations
  down    - Rollback applied migrations
  status  - Show current migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

// migrateDownCmd rolls back migrations
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the last migration",
	Long: `Rollback applied migrations, the most recent first.

Use --steps to roll back more than one migration.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to rollback")
}

// withMigrator opens the configured database and hands a migrator to fn.
// A lock file next to the database keeps two migrate runs apart.
func withMigrator(cmd *cobra.Command, fn func(*database.Migrator) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return err
	}
	defer db.Close()

	lock := flock.New(cfg.Database.Path + ".migrate.lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another migration is running on %s", cfg.Database.Path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Printf("[WARN] release migration lock: %v", err)
		}
	}()

	mg, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	return fn(mg)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	return withMigrator(cmd, func(mg *database.Migrator) error {
		if err := mg.Up(); err != nil {
			return err
		}
		version, _, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database schema at version %d\n", version)
		return nil
	})
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	return withMigrator(cmd, func(mg *database.Migrator) error {
		if err := mg.Down(steps); err != nil {
			return err
		}
		version, _, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s), schema at version %d\n", steps, version)
		return nil
	})
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	return withMigrator(cmd, func(mg *database.Migrator) error {
		statuses, err := mg.Status()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(statuses))
		for _, s := range statuses {
			state := "pending"
			switch {
			case s.Dirty:
				state = "dirty"
			case s.Applied:
				state = "applied"
			}
			rows = append(rows, []string{strconv.FormatUint(uint64(s.Version), 10), s.Name, state})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Version", "Name", "State"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft},
		))
		return nil
	})
}
