// Package score implements ad-hoc scoring of a single pair from flags.
package score

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ptofunds/reconcile/cmd/root"
	"ptofunds/reconcile/internal/matcher"
	"ptofunds/reconcile/internal/models"
)

var (
	bankAmount  string
	bankDesc    string
	bankDate    string
	expAmount   string
	expVendor   string
	expDesc     string
	expDate     string
)

// Cmd represents the score command
var Cmd = &cobra.Command{
	Use:   "score",
	Short: "Score one bank transaction against one expense",
	Long: `Score computes the confidence and per-dimension breakdown for a single
(bank transaction, expense) pair supplied via flags. Useful for tuning
weights and understanding why a pair did or did not match.`,
	Run: scoreFunc,
}

func init() {
	Cmd.Flags().StringVar(&bankAmount, "bank-amount", "", "Bank transaction amount")
	Cmd.Flags().StringVar(&bankDesc, "bank-desc", "", "Bank transaction description")
	Cmd.Flags().StringVar(&bankDate, "bank-date", "", "Bank transaction date")
	Cmd.Flags().StringVar(&expAmount, "amount", "", "Expense amount")
	Cmd.Flags().StringVar(&expVendor, "vendor", "", "Expense vendor name")
	Cmd.Flags().StringVar(&expDesc, "desc", "", "Expense description (optional)")
	Cmd.Flags().StringVar(&expDate, "date", "", "Expense date")
	_ = Cmd.MarkFlagRequired("bank-amount")
	_ = Cmd.MarkFlagRequired("amount")
}

func scoreFunc(cmd *cobra.Command, args []string) {
	tx := models.BankTransaction{
		ID:          "adhoc",
		Amount:      models.ParseAmount(bankAmount),
		Description: bankDesc,
		Date:        models.ParseDate(bankDate),
	}
	expense := models.ExpenseRecord{
		ID:          "adhoc",
		Amount:      models.ParseAmount(expAmount),
		Vendor:      expVendor,
		Description: expDesc,
		Date:        models.ParseDate(expDate),
	}

	cfg := root.Conf.MatcherConfig()
	candidate := matcher.Score(&tx, &expense, cfg)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "confidence: %.4f\n", candidate.Confidence)
	for _, dim := range []string{
		models.DimensionAmount,
		models.DimensionDescription,
		models.DimensionDate,
		models.DimensionVendor,
	} {
		fmt.Fprintf(out, "  %-12s %.4f\n", dim+":", candidate.Breakdown[dim])
	}
	fmt.Fprintf(out, "reasons: %s\n", strings.Join(candidate.Reasons, "; "))
	if candidate.Confidence >= cfg.AutoMatchThreshold {
		fmt.Fprintln(out, "decision: auto-match")
	} else if candidate.Confidence >= cfg.SuggestThreshold {
		fmt.Fprintln(out, "decision: suggest for review")
	} else {
		fmt.Fprintln(out, "decision: below suggestion threshold")
	}
}
