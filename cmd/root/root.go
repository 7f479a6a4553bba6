// Package root contains the root command for the application
package root

import (
	"ptofunds/reconcile/internal/config"
	"ptofunds/reconcile/internal/csvio"
	"ptofunds/reconcile/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Conf is the application configuration loaded before any command runs
	Conf *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "reconcile",
		Short: "Match imported bank transactions against submitted expenses.",
		Long: `reconcile scores each imported bank transaction against the pool of
submitted expense records, suggests the most likely matches with a confidence
breakdown, and applies the ones confident enough to skip human review.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to reconcile!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			conf, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Conf = conf

			Log = logging.NewLogrusAdapter(conf.Log.Level, conf.Log.Format)
			csvio.SetLogger(Log)
			csvio.SetDelimiter([]rune(conf.CSV.Delimiter)[0])
		},
	}
)
