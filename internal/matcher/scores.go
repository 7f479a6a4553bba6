package matcher

import (
	"strings"

	"github.com/shopspring/decimal"

	"ptofunds/reconcile/internal/models"
	"ptofunds/reconcile/internal/normalize"
	"ptofunds/reconcile/internal/strsim"
)

// The four dimension scorers are pure, total functions over their declared
// domains, each returning a score in [0,1]. Missing or malformed fields
// degrade the affected dimension to 0.0; they never abort the pair.

// amountScore compares two amounts. Within the tolerance it is an exact
// match; beyond that a step function on the percentage difference applies.
// The steps (not a smooth curve) map directly onto the human-auditable
// reasons attached to each candidate.
func amountScore(bankAmount, expenseAmount decimal.Decimal, cfg Config) float64 {
	bank := bankAmount.Abs()
	expense := expenseAmount.Abs()

	diff := bank.Sub(expense).Abs()
	if diff.LessThanOrEqual(cfg.AmountTolerance) {
		return 1.0
	}

	larger := bank
	if expense.GreaterThan(larger) {
		larger = expense
	}
	if larger.IsZero() {
		return 0.0
	}

	percentDiff, _ := diff.Div(larger).Float64()
	switch {
	case percentDiff <= 0.01:
		return 0.95
	case percentDiff <= 0.05:
		return 0.85
	case percentDiff <= 0.10:
		return 0.70
	case percentDiff <= 0.20:
		return 0.50
	default:
		return 0.0
	}
}

// dateScore is a non-increasing step function of the absolute day gap.
// A missing date on either side scores 0.0.
func dateScore(bankDate, expenseDate models.Date, cfg Config) float64 {
	gap, ok := bankDate.DaysApart(expenseDate)
	if !ok {
		return 0.0
	}

	switch {
	case gap == 0:
		return 1.0
	case gap <= 1:
		return 0.9
	case gap <= 3:
		return 0.8
	case gap <= 7:
		return 0.6
	case gap <= 14:
		return 0.4
	case gap <= cfg.DateWindowDays:
		return 0.2
	default:
		return 0.0
	}
}

// vendorScore checks whether the expense vendor appears in the bank
// description. A full substring hit scores 1.0; otherwise the score is the
// fraction of significant vendor words individually present.
func vendorScore(bankDescription, vendor string) float64 {
	if strings.TrimSpace(vendor) == "" {
		return 0.0
	}

	description := normalize.Clean(bankDescription)
	cleanVendor := normalize.Clean(vendor)
	if cleanVendor == "" || description == "" {
		return 0.0
	}

	if strings.Contains(description, cleanVendor) {
		return 1.0
	}

	words := normalize.SignificantTokens(vendor)
	if len(words) == 0 {
		return 0.0
	}

	present := 0
	for _, word := range words {
		if strings.Contains(description, word) {
			present++
		}
	}
	return float64(present) / float64(len(words))
}

// descriptionScore compares the bank description against the expense's
// description, falling back to the vendor name when none was submitted.
func descriptionScore(bankDescription string, expense *models.ExpenseRecord) float64 {
	text := expense.ComparableText()
	if strings.TrimSpace(bankDescription) == "" || strings.TrimSpace(text) == "" {
		return 0.0
	}
	return strsim.Similarity(bankDescription, text)
}
