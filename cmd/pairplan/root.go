// Root command for the pairplan CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pairplan/pairplan/internal/config"
	"github.com/pairplan/pairplan/internal/engine"
	"github.com/pairplan/pairplan/internal/notify"
	"github.com/pairplan/pairplan/internal/paths"
	"github.com/pairplan/pairplan/internal/registry"
	"github.com/pairplan/pairplan/internal/store"
)

const appVersion = "0.1.0"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir  string
	flagDataDir    string
	flagJSON       bool
	flagPassphrase string
)

// Shared state initialized by PersistentPreRunE.
var (
	appConfig *config.Config
	backend   store.Store
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "pairplan",
	Short:   "Pairplan is a shared planning tool for two people",
	Long: `Pairplan tracks activity proposals between two partners through a
simple lifecycle: one partner proposes, the other approves, then a date is
agreed. Data lives in a shared spreadsheet when configured, with local and
in-memory fallbacks so the tool always starts.`,
	Version: appVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version has no backend and no gate.
		if cmd.Name() == "version" {
			return nil
		}

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		appConfig, err = config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if flagPassphrase != appConfig.SharedPassphrase() {
			fmt.Fprintln(os.Stderr, "pairplan: wrong passphrase")
			os.Exit(exitUserError)
		}

		dataDir, err := paths.ResolveDataDir(flagDataDir, appConfig.DataDir)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		appConfig.DataDir = dataDir

		backend = store.Open(appConfig, logger)
		switch backend.Mode() {
		case store.ModeSQLite:
			fmt.Fprintln(os.Stderr, "notice: remote spreadsheet unavailable, using local data")
		case store.ModeMemory:
			fmt.Fprintln(os.Stderr, "notice: running on in-memory demo data, changes are not persisted")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if backend != nil {
			return backend.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: OS config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "local data directory for the SQLite fallback")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVarP(&flagPassphrase, "passphrase", "p", "", "shared passphrase")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(exportCmd)
}

// newEngine builds the lifecycle engine over the selected backend.
func newEngine() engine.Engine {
	n := notify.NewPush(appConfig.Notify.Token, appConfig.Notify.Recipient)
	return engine.New(backend, n, appConfig.Users, appConfig.AppURL, logger)
}

// newRegistry builds the category registry over the selected backend.
func newRegistry() registry.Registry {
	return registry.New(backend)
}
