// Package match implements the batch reconciliation command.
package match

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ptofunds/reconcile/cmd/root"
	"ptofunds/reconcile/internal/config"
	"ptofunds/reconcile/internal/csvio"
	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/matcher"
	"ptofunds/reconcile/internal/report"
	"ptofunds/reconcile/internal/store"
)

// Options holds the flag values for one invocation.
type Options struct {
	BankFile         string
	ExpenseFile      string
	OutputFile       string
	ReportFile       string
	ReportFormat     string
	ApplyAuto        bool
	ResolveConflicts bool
}

var opts Options

// Cmd represents the match command
var Cmd = &cobra.Command{
	Use:   "match",
	Short: "Match a batch of bank transactions against the expense pool",
	Long: `Match reads a canonical bank transaction CSV and an expense pool CSV,
scores every pair, and writes a review sheet with the ranked suggestions.
With --auto, matches above the auto-match threshold are applied; with
--resolve-conflicts, each expense is awarded to at most one transaction
before auto-matching.`,
	Run: matchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.BankFile, "bank", "b", "", "Bank transaction CSV file")
	Cmd.Flags().StringVarP(&opts.ExpenseFile, "expenses", "e", "", "Expense pool CSV file")
	Cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "matches.csv", "Review sheet output file")
	Cmd.Flags().StringVarP(&opts.ReportFile, "report", "r", "", "Run report output file (optional)")
	Cmd.Flags().StringVarP(&opts.ReportFormat, "format", "f", "json", "Run report format (json or yaml)")
	Cmd.Flags().BoolVarP(&opts.ApplyAuto, "auto", "a", false, "Apply auto-matches above the threshold")
	Cmd.Flags().BoolVar(&opts.ResolveConflicts, "resolve-conflicts", false, "Award each expense to at most one transaction")
	_ = Cmd.MarkFlagRequired("bank")
	_ = Cmd.MarkFlagRequired("expenses")
}

func matchFunc(cmd *cobra.Command, args []string) {
	if err := Run(opts, root.Conf, root.Log); err != nil {
		root.Log.Fatalf("Match run failed: %v", err)
	}
}

// Run executes one batch reconciliation with the given options.
func Run(opts Options, conf *config.Config, log logging.Logger) error {
	cfg := conf.MatcherConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid matcher configuration: %w", err)
	}

	txs, err := csvio.ReadBankTransactions(opts.BankFile)
	if err != nil {
		return fmt.Errorf("error reading bank transactions: %w", err)
	}

	expenses, err := csvio.ReadExpenses(opts.ExpenseFile)
	if err != nil {
		return fmt.Errorf("error reading expenses: %w", err)
	}

	aliases := store.NewAliasStore(conf.Aliases.File, cfg.FuzzyThreshold, log)
	if err := aliases.Load(); err != nil {
		log.WithError(err).Warn("Failed to load vendor aliases, continuing without them")
	}

	engine := matcher.NewEngine(cfg, log).WithAliases(aliases)
	results := engine.FindMatches(txs, expenses)

	if opts.ResolveConflicts {
		results = matcher.ResolveConflicts(results)
	}
	if opts.ApplyAuto {
		engine.PerformAutoMatching(results)
	}

	stats := matcher.ComputeStats(results)
	log.WithFields(
		logging.Field{Key: "total", Value: stats.Total},
		logging.Field{Key: "with_suggestions", Value: stats.WithSuggestions},
		logging.Field{Key: "auto_matched", Value: stats.AutoMatched},
		logging.Field{Key: "no_matches", Value: stats.NoMatches},
	).Info("Matching run complete")

	if err := csvio.WriteResults(results, opts.OutputFile); err != nil {
		return fmt.Errorf("error writing review sheet: %w", err)
	}

	if opts.ReportFile != "" {
		run := report.NewRun(results, stats)
		data, err := report.NewGenerator(log).Generate(run, opts.ReportFormat)
		if err != nil {
			return fmt.Errorf("error generating report: %w", err)
		}
		if err := os.WriteFile(opts.ReportFile, data, 0600); err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
		log.WithFields(
			logging.Field{Key: logging.FieldRunID, Value: run.RunID},
			logging.Field{Key: logging.FieldOutputFile, Value: opts.ReportFile},
		).Info("Wrote run report")
	}

	return nil
}
