package matcher

import (
	"sort"

	"ptofunds/reconcile/internal/models"
)

// ComputeStats summarizes a batch of match results.
//
// Confidence bands are fixed at 0.8/0.6. Under the default suggest threshold
// of 0.6 the low band cannot be populated, because no retained candidate
// scores below it; the band only fills when SuggestThreshold is lowered.
func ComputeStats(results []*models.MatchResult) models.Stats {
	stats := models.Stats{Total: len(results)}

	for _, r := range results {
		best := r.Best()
		if best == nil {
			stats.NoMatches++
			continue
		}

		stats.WithSuggestions++
		if r.AutoMatch {
			stats.AutoMatched++
		}

		switch {
		case best.Confidence >= 0.8:
			stats.HighConfidence++
		case best.Confidence >= 0.6:
			stats.MediumConfidence++
		default:
			stats.LowConfidence++
		}
	}

	return stats
}

// ResolveConflicts awards each expense to at most one bank transaction,
// greedily by descending best-candidate confidence. Losing results keep
// their candidate lists for review but lose their auto-match decision.
//
// This is an explicit post-processing stage: FindMatches never enforces
// cross-result uniqueness on its own.
func ResolveConflicts(results []*models.MatchResult) []*models.MatchResult {
	ordered := make([]*models.MatchResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		bi, bj := ordered[i].Best(), ordered[j].Best()
		switch {
		case bi == nil:
			return false
		case bj == nil:
			return true
		case bi.Confidence != bj.Confidence:
			return bi.Confidence > bj.Confidence
		default:
			return ordered[i].Transaction.ID < ordered[j].Transaction.ID
		}
	})

	claimed := make(map[string]string) // expense ID -> winning transaction ID
	for _, r := range ordered {
		best := r.Best()
		if best == nil {
			continue
		}
		if _, taken := claimed[best.Expense.ID]; taken {
			r.AutoMatch = false
			continue
		}
		claimed[best.Expense.ID] = r.Transaction.ID
	}

	return results
}
