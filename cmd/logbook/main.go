// Package main provides the logbook CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/logbook/internal/sqlite"
	"github.com/mesh-intelligence/logbook/internal/tools"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// verbose enables debug logging.
	verbose bool

	// Initialized on startup, shared by all subcommands.
	logger   *zap.Logger
	store    *sqlite.Store
	registry *tools.Registry
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logbook",
	Short: "Logbook is a schema-evolving personal data store",
	Long: `Logbook stores personal tracking data (workouts, meals, mood, anything)
in user-defined tables that can grow and change over time. It exposes the
same tool surface an AI agent would use: list, create, edit, insert, query.`,
	PersistentPreRunE: initLogbook,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogbook()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: .logbook.yaml or ~/.logbook/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(seedCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("logbook v0.1.0")
	},
}

// initLogbook loads config, builds the logger, and opens the store.
func initLogbook(cmd *cobra.Command, args []string) error {
	// Version needs no database.
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = buildLogger(verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	store, err = sqlite.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	registry = tools.NewRegistry(store, logger)
	return nil
}

// closeLogbook closes the store and flushes the logger.
func closeLogbook() error {
	if store != nil {
		if err := store.Close(); err != nil {
			return err
		}
	}
	if logger != nil {
		// Sync can fail on stderr; nothing useful to do about it.
		_ = logger.Sync()
	}
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
