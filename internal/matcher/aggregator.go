package matcher

import (
	"sort"

	"ptofunds/reconcile/internal/models"
)

// Score computes the weighted confidence for one (transaction, expense) pair
// along with the per-dimension breakdown and human-readable reasons.
func Score(tx *models.BankTransaction, expense *models.ExpenseRecord, cfg Config) models.MatchCandidate {
	breakdown := map[string]float64{
		models.DimensionAmount:      amountScore(tx.Amount, expense.Amount, cfg),
		models.DimensionDescription: descriptionScore(tx.Description, expense),
		models.DimensionDate:        dateScore(tx.Date, expense.Date, cfg),
		models.DimensionVendor:      vendorScore(tx.Description, expense.Vendor),
	}

	total := breakdown[models.DimensionAmount]*cfg.Weights.Amount +
		breakdown[models.DimensionDescription]*cfg.Weights.Description +
		breakdown[models.DimensionDate]*cfg.Weights.Date +
		breakdown[models.DimensionVendor]*cfg.Weights.Vendor

	total = clamp(total, 0.0, 1.0)

	return models.MatchCandidate{
		Expense:    expense,
		Confidence: total,
		Breakdown:  breakdown,
		Reasons:    matchReasons(breakdown),
	}
}

// matchReasons translates the score breakdown into the audit trail shown to
// reviewers. Bands mirror the amount/date step functions so a reason can
// always be traced back to a concrete threshold.
func matchReasons(breakdown map[string]float64) []string {
	var reasons []string

	switch amount := breakdown[models.DimensionAmount]; {
	case amount >= 0.95:
		reasons = append(reasons, "Exact amount match")
	case amount >= 0.80:
		reasons = append(reasons, "Very close amount")
	case amount >= 0.60:
		reasons = append(reasons, "Similar amount")
	}

	switch description := breakdown[models.DimensionDescription]; {
	case description >= 0.8:
		reasons = append(reasons, "Strong description match")
	case description >= 0.6:
		reasons = append(reasons, "Similar description")
	}

	switch date := breakdown[models.DimensionDate]; {
	case date >= 0.9:
		reasons = append(reasons, "Same/next day")
	case date >= 0.6:
		reasons = append(reasons, "Within a week")
	}

	if breakdown[models.DimensionVendor] >= 0.8 {
		reasons = append(reasons, "Vendor name match")
	}

	// A returned candidate never carries an empty reason list.
	if len(reasons) == 0 {
		reasons = append(reasons, "Potential match")
	}

	return reasons
}

// SuggestionsFor scores every expense in the candidate pool against one
// transaction, retains those at or above the suggestion threshold, and
// returns them sorted by descending confidence. Ties break on expense ID so
// repeated runs over identical inputs produce identical ordering.
//
// The pool may be the full expense set or an already-bounded candidate slice;
// the matcher itself performs no pruning beyond the threshold.
func SuggestionsFor(tx *models.BankTransaction, pool []models.ExpenseRecord, cfg Config) []models.MatchCandidate {
	var candidates []models.MatchCandidate
	for i := range pool {
		candidate := Score(tx, &pool[i], cfg)
		if candidate.Confidence >= cfg.SuggestThreshold {
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].Expense.ID < candidates[j].Expense.ID
	})

	return candidates
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
