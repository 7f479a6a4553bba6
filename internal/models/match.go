package models

// Score dimension keys used in a candidate's breakdown map.
const (
	DimensionAmount      = "amount"
	DimensionDescription = "description"
	DimensionDate        = "date"
	DimensionVendor      = "vendor"
)

// MatchCandidate is one expense proposed as the counterpart of a bank
// transaction, with the weighted confidence and its per-dimension breakdown.
type MatchCandidate struct {
	Expense    *ExpenseRecord     `json:"expense"`
	Confidence float64            `json:"confidence"` // Always in [0,1]
	Breakdown  map[string]float64 `json:"breakdown"`
	Reasons    []string           `json:"reasons"`
}

// MatchResult holds the ranked candidates for one bank transaction.
//
// Candidates and AutoMatch are computed once by the matcher and not revisited.
// IsMatched and MatchedExpense are set only by a later confirmation step
// (human review or auto-match application), never during scoring.
type MatchResult struct {
	Transaction    *BankTransaction `json:"transaction"`
	Candidates     []MatchCandidate `json:"candidates"` // Sorted non-increasing by confidence
	AutoMatch      bool             `json:"auto_match"`
	IsMatched      bool             `json:"is_matched"`
	MatchedExpense *ExpenseRecord   `json:"matched_expense,omitempty"`
}

// Best returns the highest-confidence candidate, or nil when there are none.
func (r *MatchResult) Best() *MatchCandidate {
	if len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}

// Stats summarizes one matching run over a batch of results.
type Stats struct {
	Total            int `json:"total" yaml:"total"`
	WithSuggestions  int `json:"with_suggestions" yaml:"with_suggestions"`
	AutoMatched      int `json:"auto_matched" yaml:"auto_matched"`
	HighConfidence   int `json:"high_confidence" yaml:"high_confidence"`     // best >= 0.8
	MediumConfidence int `json:"medium_confidence" yaml:"medium_confidence"` // 0.6 <= best < 0.8
	LowConfidence    int `json:"low_confidence" yaml:"low_confidence"`       // best < 0.6
	NoMatches        int `json:"no_matches" yaml:"no_matches"`
}
