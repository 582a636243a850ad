package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/killallgit/stationcast/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stationcast",
	Short: "Podcast ingestion and publishing for the station",
	Long: `stationcast - podcast ingestion and publishing for the station

Imports episodes from podcast feeds into the station media library and
publishes library files as the station's own podcast.

Features:
  • Feed subscriptions with per-episode ingestion status
  • Asynchronous episode downloads through a persisted job queue
  • Completion tracking that attaches or discards downloaded files
  • Media library on the filesystem or S3-compatible storage`,
	SilenceUsage:     true,
	PersistentPreRun: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info)")
	rootCmd.PersistentFlags().Bool("log-caller", false, "include caller file and function in log lines")
}

// setupLogging applies the logging flags
func setupLogging(cmd *cobra.Command, _ []string) {
	level, _ := cmd.Flags().GetString("log-level")
	caller, _ := cmd.Flags().GetBool("log-caller")
	applyLogging(level, caller)
}

// applyLogging configures the global lgr logger
func applyLogging(level string, caller bool) {
	opts := []log.Option{log.Msec, log.LevelBraces}
	switch strings.ToLower(level) {
	case "trace":
		opts = append(opts, log.Trace)
	case "debug":
		opts = append(opts, log.Debug)
	}
	if caller {
		opts = append(opts, log.CallerFile, log.CallerFunc)
	}
	log.Setup(opts...)
}

// loadConfig loads the configuration when a command needs it. Logging
// settings from the config apply unless the flags were given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	level, caller := cfg.Logging.Level, cfg.Logging.Caller
	if flags := cmd.Flags(); flags.Changed("log-level") || flags.Changed("log-caller") {
		level, _ = flags.GetString("log-level")
		caller, _ = flags.GetBool("log-caller")
	}
	applyLogging(level, caller)

	return cfg, nil
}
